package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds environment-driven configuration.
type Config struct {
	Port            string        `mapstructure:"port"`
	MongoURI        string        `mapstructure:"mongo_uri"`
	MongoDB         string        `mapstructure:"mongo_db"`
	RateLimitRPM    int           `mapstructure:"rate_limit_rpm"`
	SessionCacheTTL time.Duration `mapstructure:"session_cache_ttl"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	AdminToken      string        `mapstructure:"admin_token"`
	LogLevel        string        `mapstructure:"log_level"`
	Currency        string        `mapstructure:"currency"`
	MaxValues       int           `mapstructure:"max_values"`

	// Backend identifiers. Opaque strings handed to backend.Init.
	APIKey            string `mapstructure:"api_key"`
	AuthDomain        string `mapstructure:"auth_domain"`
	ProjectID         string `mapstructure:"project_id"`
	StorageBucket     string `mapstructure:"storage_bucket"`
	MessagingSenderID string `mapstructure:"messaging_sender_id"`
	AppID             string `mapstructure:"app_id"`

	OAuthClientID     string `mapstructure:"oauth_client_id"`
	OAuthClientSecret string `mapstructure:"oauth_client_secret"`
	OAuthRedirectURL  string `mapstructure:"oauth_redirect_url"`
}

var defaults = map[string]any{
	"port":                "8080",
	"mongo_uri":           "mongodb://localhost:27017",
	"mongo_db":            "",
	"rate_limit_rpm":      60,
	"session_cache_ttl":   60 * time.Second,
	"request_timeout":     3 * time.Second,
	"admin_token":         "",
	"log_level":           "info",
	"currency":            "JPY",
	"max_values":          10000,
	"api_key":             "",
	"auth_domain":         "",
	"project_id":          "monelog",
	"storage_bucket":      "",
	"messaging_sender_id": "",
	"app_id":              "",
	"oauth_client_id":     "",
	"oauth_client_secret": "",
	"oauth_redirect_url":  "",
}

// LoadWithFlags layers flags and a config file over the environment with
// sane defaults. Precedence: flag, env, file, default. With file empty,
// monelog.yaml in the working directory is read if present. Malformed
// numeric or duration values fall back to their defaults.
func LoadWithFlags(flags *pflag.FlagSet, file string) (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	} else {
		v.SetConfigName("monelog")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, err
			}
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			if bindErr == nil {
				bindErr = v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
			}
		})
		if bindErr != nil {
			return Config{}, bindErr
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return withDefaults(v), nil
	}
	return sanitize(c), nil
}

// withDefaults reads field by field so one unparsable env var does not
// discard the rest.
func withDefaults(v *viper.Viper) Config {
	c := Config{
		Port:              v.GetString("port"),
		MongoURI:          v.GetString("mongo_uri"),
		MongoDB:           v.GetString("mongo_db"),
		AdminToken:        v.GetString("admin_token"),
		LogLevel:          v.GetString("log_level"),
		Currency:          v.GetString("currency"),
		APIKey:            v.GetString("api_key"),
		AuthDomain:        v.GetString("auth_domain"),
		ProjectID:         v.GetString("project_id"),
		StorageBucket:     v.GetString("storage_bucket"),
		MessagingSenderID: v.GetString("messaging_sender_id"),
		AppID:             v.GetString("app_id"),
		OAuthClientID:     v.GetString("oauth_client_id"),
		OAuthClientSecret: v.GetString("oauth_client_secret"),
		OAuthRedirectURL:  v.GetString("oauth_redirect_url"),
		RateLimitRPM:      v.GetInt("rate_limit_rpm"),
		MaxValues:         v.GetInt("max_values"),
		SessionCacheTTL:   v.GetDuration("session_cache_ttl"),
		RequestTimeout:    v.GetDuration("request_timeout"),
	}
	return sanitize(c)
}

func sanitize(c Config) Config {
	if c.Port == "" {
		c.Port = defaults["port"].(string)
	}
	if c.RateLimitRPM <= 0 {
		c.RateLimitRPM = defaults["rate_limit_rpm"].(int)
	}
	if c.MaxValues <= 0 {
		c.MaxValues = defaults["max_values"].(int)
	}
	if c.SessionCacheTTL <= 0 {
		c.SessionCacheTTL = defaults["session_cache_ttl"].(time.Duration)
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaults["request_timeout"].(time.Duration)
	}
	if c.MongoDB == "" {
		c.MongoDB = c.ProjectID
	}
	return c
}
