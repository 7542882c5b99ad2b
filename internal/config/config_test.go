package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	require.Equal(t, "data/stayhub.db", cfg.Database.Path)
	require.Equal(t, "data/uploads", cfg.Uploads.Dir)
	require.Equal(t, "token", cfg.Auth.CookieName)
	require.Equal(t, 7*24*60, cfg.Auth.TokenTTLMinutes)
	require.Empty(t, cfg.Auth.JWTSecret, "there is no default secret")
	require.False(t, cfg.Auth.CookieSecure)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STAY_SERVER_ADDR", "127.0.0.1:9090")
	t.Setenv("STAY_AUTH_JWTSECRET", "from-env")
	t.Setenv("STAY_AUTH_TOKENTTLMINUTES", "60")
	t.Setenv("STAY_AUTH_COOKIESECURE", "true")
	t.Setenv("STAY_CORS_ORIGIN", "https://app.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	require.Equal(t, "from-env", cfg.Auth.JWTSecret)
	require.Equal(t, 60, cfg.Auth.TokenTTLMinutes)
	require.True(t, cfg.Auth.CookieSecure)
	require.Equal(t, "https://app.example.com", cfg.CORS.Origin)
}
