package auth

import (
	"slices"
	"sort"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleProviderID identifies the federated provider in session documents and logs.
const GoogleProviderID = "google.com"

var defaultScopes = []string{"openid", "email", "profile"}

// GoogleProvider is the federated sign-in provider handle. It carries the
// OAuth client settings, requested scopes and extra authorization parameters;
// completing a sign-in is left to the caller.
type GoogleProvider struct {
	mu     sync.RWMutex
	cfg    oauth2.Config
	params map[string]string
}

func NewGoogleProvider(clientID, clientSecret, redirectURL string) *GoogleProvider {
	return &GoogleProvider{
		cfg: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       slices.Clone(defaultScopes),
		},
		params: make(map[string]string),
	}
}

func (p *GoogleProvider) ProviderID() string { return GoogleProviderID }

// AddScope requests an additional OAuth scope. Duplicates are ignored.
func (p *GoogleProvider) AddScope(scope string) *GoogleProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	if scope != "" && !slices.Contains(p.cfg.Scopes, scope) {
		p.cfg.Scopes = append(p.cfg.Scopes, scope)
	}
	return p
}

// SetCustomParameters replaces the extra authorization URL parameters,
// e.g. {"prompt": "select_account"}.
func (p *GoogleProvider) SetCustomParameters(params map[string]string) *GoogleProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.params = make(map[string]string, len(params))
	for k, v := range params {
		p.params[k] = v
	}
	return p
}

func (p *GoogleProvider) Scopes() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.cfg.Scopes)
}

// Config returns a copy of the OAuth client configuration.
func (p *GoogleProvider) Config() oauth2.Config {
	p.mu.RLock()
	defer p.mu.RUnlock()
	c := p.cfg
	c.Scopes = slices.Clone(p.cfg.Scopes)
	return c
}

// AuthCodeURL builds the consent page URL for state.
func (p *GoogleProvider) AuthCodeURL(state string) string {
	p.mu.RLock()
	keys := make([]string, 0, len(p.params))
	for k := range p.params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	opts := make([]oauth2.AuthCodeOption, 0, len(keys))
	for _, k := range keys {
		opts = append(opts, oauth2.SetAuthURLParam(k, p.params[k]))
	}
	p.mu.RUnlock()

	cfg := p.Config()
	return cfg.AuthCodeURL(state, opts...)
}
