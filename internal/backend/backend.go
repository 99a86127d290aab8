// Package backend connects to the hosted auth/database backend.
//
// Init takes an explicit Config and returns independent handles: the
// authentication-session store, the Google sign-in provider and the
// persistence store. Nothing is kept in package state, so tests and
// multiple tenants can hold separate backends side by side.
package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/monelog/internal/auth"
	"github.com/example/monelog/internal/config"
	"github.com/example/monelog/internal/store"
	"github.com/rs/zerolog"
)

var (
	ErrMissingProjectID = errors.New("backend: missing project id")
	ErrMissingMongoURI  = errors.New("backend: missing mongo uri")
)

const defaultSessionCacheTTL = 60 * time.Second

// Config identifies the backend project. The identifier fields are opaque
// and passed through untouched.
type Config struct {
	APIKey            string
	AuthDomain        string
	ProjectID         string
	StorageBucket     string
	MessagingSenderID string
	AppID             string

	MongoURI string
	// Database defaults to ProjectID.
	Database        string
	SessionCacheTTL time.Duration

	OAuthClientID     string
	OAuthClientSecret string
	OAuthRedirectURL  string
}

// FromConfig maps the service configuration onto a backend Config.
func FromConfig(c config.Config) Config {
	return Config{
		APIKey:            c.APIKey,
		AuthDomain:        c.AuthDomain,
		ProjectID:         c.ProjectID,
		StorageBucket:     c.StorageBucket,
		MessagingSenderID: c.MessagingSenderID,
		AppID:             c.AppID,
		MongoURI:          c.MongoURI,
		Database:          c.MongoDB,
		SessionCacheTTL:   c.SessionCacheTTL,
		OAuthClientID:     c.OAuthClientID,
		OAuthClientSecret: c.OAuthClientSecret,
		OAuthRedirectURL:  c.OAuthRedirectURL,
	}
}

// Validate checks required fields.
func (c Config) Validate() error {
	if c.ProjectID == "" {
		return ErrMissingProjectID
	}
	if c.MongoURI == "" {
		return ErrMissingMongoURI
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Database == "" {
		c.Database = c.ProjectID
	}
	if c.SessionCacheTTL <= 0 {
		c.SessionCacheTTL = defaultSessionCacheTTL
	}
	return c
}

// Handles are the capabilities exposed by an initialized backend.
type Handles struct {
	Config   Config
	Auth     *auth.SessionStore
	Provider *auth.GoogleProvider
	Store    *store.Store
}

// Init connects the persistence store and builds the auth handles on top
// of it. ctx bounds connection and index setup.
func Init(ctx context.Context, cfg Config, log zerolog.Logger) (*Handles, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	st, err := store.Open(ctx, cfg.MongoURI, cfg.Database)
	if err != nil {
		return nil, err
	}

	sessions, err := auth.NewSessionStore(ctx, st.Database(), cfg.SessionCacheTTL)
	if err != nil {
		_ = st.Close(context.Background())
		return nil, fmt.Errorf("backend: session store: %w", err)
	}

	provider := auth.NewGoogleProvider(cfg.OAuthClientID, cfg.OAuthClientSecret, cfg.OAuthRedirectURL)

	log.Info().
		Str("event", "backend_init").
		Str("project", cfg.ProjectID).
		Str("db", cfg.Database).
		Str("auth_domain", cfg.AuthDomain).
		Str("app", cfg.AppID).
		Msg("backend initialized")

	return &Handles{Config: cfg, Auth: sessions, Provider: provider, Store: st}, nil
}

// Close stops the session cache reaper and releases the persistence store.
// The auth handles share it and must not be used afterwards.
func (h *Handles) Close(ctx context.Context) error {
	if h.Auth != nil {
		h.Auth.Close()
	}
	return h.Store.Close(ctx)
}
