package backend

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/example/monelog/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	require.ErrorIs(t, Config{MongoURI: "mongodb://x"}.Validate(), ErrMissingProjectID)
	require.ErrorIs(t, Config{ProjectID: "p"}.Validate(), ErrMissingMongoURI)
	require.NoError(t, Config{ProjectID: "p", MongoURI: "mongodb://x"}.Validate())
}

func TestConfig_Defaults(t *testing.T) {
	c := Config{ProjectID: "vue-monelog", MongoURI: "mongodb://x"}.withDefaults()
	require.Equal(t, "vue-monelog", c.Database)
	require.Equal(t, defaultSessionCacheTTL, c.SessionCacheTTL)

	c = Config{ProjectID: "p", Database: "other", SessionCacheTTL: time.Second}.withDefaults()
	require.Equal(t, "other", c.Database)
	require.Equal(t, time.Second, c.SessionCacheTTL)
}

func TestFromConfig(t *testing.T) {
	c := FromConfig(config.Config{
		ProjectID:     "vue-monelog",
		AuthDomain:    "vue-monelog.example.com",
		StorageBucket: "bucket",
		AppID:         "app",
		MongoURI:      "mongodb://db",
		MongoDB:       "ledger",
		OAuthClientID: "client",
	})
	require.Equal(t, "vue-monelog", c.ProjectID)
	require.Equal(t, "vue-monelog.example.com", c.AuthDomain)
	require.Equal(t, "ledger", c.Database)
	require.Equal(t, "client", c.OAuthClientID)
}

func TestInit_InvalidConfig(t *testing.T) {
	_, err := Init(context.Background(), Config{}, zerolog.Nop())
	require.True(t, errors.Is(err, ErrMissingProjectID))
}

func TestInit_ReturnsIndependentHandles(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("skipping: MONGO_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg := Config{ProjectID: "monelog_test", MongoURI: uri, OAuthClientID: "client"}
	a, err := Init(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	defer a.Close(context.Background())
	b, err := Init(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	defer b.Close(context.Background())

	require.NotSame(t, a.Store, b.Store)
	require.NotSame(t, a.Auth, b.Auth)
	require.NotSame(t, a.Provider, b.Provider)
	require.NoError(t, a.Store.Ping(ctx))
	require.NoError(t, a.Auth.Ping(ctx))
	require.Equal(t, "monelog_test", a.Store.Name())
	require.Equal(t, "client", a.Provider.Config().ClientID)
}
