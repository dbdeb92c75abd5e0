package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	t.Setenv("MONGODB_DATABASE", "nodebucket_test")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("TASKS_MAX_TEXT_LENGTH", "35")
	t.Setenv("EMPLOYEE_ID_NUMERIC", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "mongodb://localhost:27017/testdb", cfg.MongoDB.URI)
	require.Equal(t, "nodebucket_test", cfg.MongoDB.Database)
	require.Equal(t, "employees", cfg.MongoDB.Collection)
	require.Equal(t, 10*time.Second, cfg.MongoDB.Timeout)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr())
	require.True(t, cfg.RateLimit.Enabled)
	require.InDelta(t, 2.5, cfg.RateLimit.RPS, 0.0001)
	require.Equal(t, 35, cfg.Tasks.MaxTextLength)
	require.True(t, cfg.Tasks.NumericEmployeeIDs)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("MONGODB_CONNECT_ATTEMPTS", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Empty(t, cfg.MongoDB.URI)
	require.Empty(t, cfg.Redis.Addr())
	require.Equal(t, "3000", cfg.Server.Port)
	require.Equal(t, 1, cfg.MongoDB.ConnectAttempts)
	require.Equal(t, "session_user", cfg.Session.CookieName)
	require.Equal(t, 24*time.Hour, cfg.Session.TTL)
	require.Equal(t, 255, cfg.Tasks.MaxTextLength)
	require.False(t, cfg.Tasks.NumericEmployeeIDs)
	require.Empty(t, cfg.Archive.Endpoint)
	require.Equal(t, "nodebucket-archive", cfg.Archive.Bucket)
}
