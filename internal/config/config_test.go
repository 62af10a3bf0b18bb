package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.App.HTTPPort)
	assert.Equal(t, "50051", cfg.App.GRPCPort)
	assert.True(t, cfg.App.GRPCEnabled())
	assert.Equal(t, 10, cfg.App.ShutdownTimeoutSeconds)
	assert.Equal(t, DriverMemory, cfg.DB.Driver)
	assert.Equal(t, "users.db", cfg.DB.SQLitePath)
	assert.Equal(t, 25, cfg.DB.MaxOpenConns)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 300, cfg.Redis.CacheTTL)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 20, cfg.RateLimit.BurstCapacity)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "users-api", cfg.Logger.ServiceName)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_ProductionLoggerDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.True(t, cfg.Logger.EnableSampling)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("GRPC_PORT", "")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.App.HTTPPort)
	assert.False(t, cfg.App.GRPCEnabled())
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.InDelta(t, 2.5, cfg.RateLimit.RequestsPerSecond, 0.0001)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte("HTTP_PORT=4000\nREDIS_ENABLED=true\n"), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.App.HTTPPort)
	assert.True(t, cfg.Redis.Enabled)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.DB.Driver = "mongo" },
			wantErr: `unknown STORE_DRIVER "mongo"`,
		},
		{
			name:    "rate limit without redis",
			mutate:  func(c *Config) { c.RateLimit.Enabled = true },
			wantErr: "RATE_LIMIT_ENABLED requires REDIS_ENABLED",
		},
		{
			name:    "empty sqlite path",
			mutate:  func(c *Config) { c.DB.Driver = DriverSQLite; c.DB.SQLitePath = "" },
			wantErr: "SQLITE_PATH is required",
		},
		{
			name:    "postgres without host",
			mutate:  func(c *Config) { c.DB.Driver = DriverPostgres; c.DB.Host = "" },
			wantErr: "DATABASE_URL or DB_HOST",
		},
		{
			name: "postgres with url",
			mutate: func(c *Config) {
				c.DB.Driver = DriverPostgres
				c.DB.Host = ""
				c.DB.URL = "postgres://localhost/users"
			},
		},
		{
			name:    "missing http port",
			mutate:  func(c *Config) { c.App.HTTPPort = "" },
			wantErr: "HTTP_PORT is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", User: "u", Password: "p", Name: "users", Port: "5432", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=users port=5432 sslmode=disable", db.DSN())

	db.URL = "postgres://u:p@db:5432/users"
	assert.Equal(t, "postgres://u:p@db:5432/users", db.DSN())
}
