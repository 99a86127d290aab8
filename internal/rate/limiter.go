package rate

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter *rate.Limiter
	last    time.Time
}

// LimiterMap provides per-client token buckets with idle eviction.
type LimiterMap struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	every    rate.Limit
	burst    int
	ttl      time.Duration
	stopOnce sync.Once
	stopCh   chan struct{}
}

const defaultTTL = 5 * time.Minute

// NewLimiterMap allows rpm requests per minute per client with the given
// burst. Clients idle for longer than ttl (five minutes if ttl is not
// positive) are forgotten by a background reaper; call Stop to end it.
func NewLimiterMap(rpm, burst int, ttl time.Duration) *LimiterMap {
	if rpm <= 0 {
		rpm = 1
	}
	if burst <= 0 {
		burst = 1
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	lm := &LimiterMap{
		visitors: make(map[string]*visitor),
		every:    rate.Every(time.Minute / time.Duration(rpm)),
		burst:    burst,
		ttl:      ttl,
		stopCh:   make(chan struct{}),
	}
	go lm.reaper()
	return lm
}

func (l *LimiterMap) reaper() {
	t := time.NewTicker(l.ttl)
	defer t.Stop()
	for {
		select {
		case <-l.stopCh:
			return
		case now := <-t.C:
			l.evictIdle(now)
		}
	}
}

func (l *LimiterMap) evictIdle(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, v := range l.visitors {
		if now.Sub(v.last) > l.ttl {
			delete(l.visitors, key)
		}
	}
}

// Stop stops the cleanup goroutine. Safe to call more than once.
func (l *LimiterMap) Stop() { l.stopOnce.Do(func() { close(l.stopCh) }) }

// Allow reports whether a request from key may proceed now.
func (l *LimiterMap) Allow(key string) bool {
	l.mu.Lock()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.every, l.burst)}
		l.visitors[key] = v
	}
	v.last = time.Now()
	l.mu.Unlock()
	return v.limiter.Allow()
}

// Len returns the number of tracked clients.
func (l *LimiterMap) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// IPFromRequest extracts the client IP, preferring the first
// X-Forwarded-For hop.
func IPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
