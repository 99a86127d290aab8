package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/example/monelog/internal/cache"
	"github.com/example/monelog/internal/metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SessionsCollection holds one document per issued session token.
const SessionsCollection = "sessions"

var ErrMissingToken = errors.New("missing session token")

// SessionValidator validates session tokens and optionally provides a health ping.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (bool, error)
	Ping(ctx context.Context) error
}

// SessionCreator provisions session tokens for the admin handler.
// Implemented by SessionStore.
type SessionCreator interface {
	Create(ctx context.Context, token string, active bool, owner string) error
}

// SessionStore is the authentication-session handle. Lookups go through a
// TTL cache; concurrent misses for one token share a single query. Expired
// cache entries are purged in the background until Close is called.
type SessionStore struct {
	coll     *mongo.Collection
	cache    *cache.Cache[bool]
	stopOnce sync.Once
	stopCh   chan struct{}
}

type sessionDoc struct {
	Token     string    `bson:"token"`
	Active    bool      `bson:"active"`
	Owner     string    `bson:"owner,omitempty"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewSessionStore sets up the collection and unique index on token.
func NewSessionStore(ctx context.Context, db *mongo.Database, ttl time.Duration) (*SessionStore, error) {
	coll := db.Collection(SessionsCollection)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "token", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}
	return newSessionStore(coll, ttl), nil
}

func newSessionStore(coll *mongo.Collection, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = time.Minute
	}
	s := &SessionStore{coll: coll, cache: cache.New[bool](ttl), stopCh: make(chan struct{})}
	go s.reaper(ttl)
	return s
}

func (s *SessionStore) reaper(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-s.stopCh:
			return
		case <-t.C:
			s.cache.Purge()
		}
	}
}

// Close stops the cache reaper. Safe to call more than once.
func (s *SessionStore) Close() {
	if s.stopCh == nil {
		return
	}
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// Validate reports whether token names an active session. Unknown tokens
// are cached as inactive so repeated misses do not reach the database.
func (s *SessionStore) Validate(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, ErrMissingToken
	}
	active, src, err := s.cache.GetOrFetch(ctx, token, func(ctx context.Context) (bool, error) {
		var doc sessionDoc
		err := s.coll.FindOne(ctx, bson.D{{Key: "token", Value: token}}).Decode(&doc)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return doc.Active, nil
	})
	if err != nil {
		metrics.SessionLookups.WithLabelValues("db", "error").Inc()
		return false, err
	}
	metrics.SessionLookups.WithLabelValues(string(src), result(active)).Inc()
	return active, nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}

// Create inserts or updates a session entry. Not part of SessionValidator,
// but available for provisioning.
func (s *SessionStore) Create(ctx context.Context, token string, active bool, owner string) error {
	if token == "" {
		return ErrMissingToken
	}
	_, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "token", Value: token}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "active", Value: active},
			{Key: "owner", Value: owner},
			{Key: "updated_at", Value: time.Now().UTC()},
		}}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}
	s.cache.Set(token, active)
	return nil
}

// Revoke marks token inactive. Revoking an unknown token is not an error.
func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return ErrMissingToken
	}
	_, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "token", Value: token}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "active", Value: false},
			{Key: "updated_at", Value: time.Now().UTC()},
		}}},
	)
	if err != nil {
		return err
	}
	s.cache.Set(token, false)
	return nil
}

// NewToken returns a random 32-byte hex token.
func NewToken() (string, error) {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}

// HashPrefix returns the first 8 hex chars of SHA-256(token) for logging.
func HashPrefix(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])[:8]
}

func result(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}
