package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithPath_Defaults(t *testing.T) {
	// No .env file present: defaults plus whatever the environment carries
	cfg, err := LoadWithPath("testdata/absent.env")
	require.NoError(t, err)

	assert.Equal(t, "scout-api", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "scout_db", cfg.Database.DBName)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TokenTTL)
	assert.True(t, cfg.Redis.Enabled)
	assert.False(t, cfg.OTel.Enabled)
	assert.NotEmpty(t, cfg.Bootstrap.PrimaryEmail)
	assert.NotEmpty(t, cfg.Bootstrap.SecondaryEmail)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:    AppConfig{Name: "scout-api", Environment: "development"},
			Server: ServerConfig{Port: 8080},
			JWT:    JWTConfig{Secret: "s3cret", TokenTTL: 24 * time.Hour},
		}
	}

	t.Run("valid development config", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing app name", func(t *testing.T) {
		cfg := valid()
		cfg.App.Name = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad port", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Port = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		cfg := valid()
		cfg.JWT.Secret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive token ttl", func(t *testing.T) {
		cfg := valid()
		cfg.JWT.TokenTTL = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects default jwt secret", func(t *testing.T) {
		cfg := valid()
		cfg.App.Environment = "production"
		cfg.JWT.Secret = "your-secret-key-change-in-production"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects default bootstrap passwords", func(t *testing.T) {
		cfg := valid()
		cfg.App.Environment = "production"
		cfg.Bootstrap.PrimaryPassword = "superadmin123"
		assert.Error(t, cfg.Validate())
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 5433, User: "scout", Password: "pw",
		DBName: "scouts", SSLMode: "require",
	}
	assert.Equal(t, "host=db port=5433 user=scout password=pw dbname=scouts sslmode=require", d.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", r.Addr())
}
