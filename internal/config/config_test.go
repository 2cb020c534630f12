package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.ServerHost)
				assert.Equal(t, 8080, cfg.ServerPort)
				assert.Equal(t, "postgres", cfg.DBDriver)
				assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, "FIELD_ENCRYPTION_KEY_V", cfg.FieldEncryptionKeyPrefix)
				assert.Equal(t, 16, cfg.FieldEncryptionMaxVersions)
				assert.Equal(t, 1, cfg.FieldEncryptionCurrentVersion)
				assert.Empty(t, cfg.FieldEncryptionKMSKeyURI)
				assert.Equal(t, "mealguard", cfg.JWTIssuer)
				assert.Equal(t, 8*time.Hour, cfg.AuthTokenExpiration)
				assert.Equal(t, 12, cfg.PasswordBcryptCost)
				assert.Equal(t, "mealguard", cfg.MetricsNamespace)
			},
		},
		{
			name: "load custom database configuration",
			envVars: map[string]string{
				"DB_DRIVER":               "mysql",
				"DB_CONNECTION_STRING":    "user:password@tcp(localhost:3306)/testdb",
				"DB_MAX_OPEN_CONNECTIONS": "50",
				"DB_MAX_IDLE_CONNECTIONS": "10",
				"DB_CONN_MAX_LIFETIME":    "10",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "mysql", cfg.DBDriver)
				assert.Equal(t, "user:password@tcp(localhost:3306)/testdb", cfg.DBConnectionString)
				assert.Equal(t, 50, cfg.DBMaxOpenConnections)
				assert.Equal(t, 10, cfg.DBMaxIdleConnections)
				assert.Equal(t, 10*time.Minute, cfg.DBConnMaxLifetime)
			},
		},
		{
			name: "load field encryption configuration",
			envVars: map[string]string{
				"FIELD_ENCRYPTION_MAX_VERSIONS":    "4",
				"FIELD_ENCRYPTION_CURRENT_VERSION": "3",
				"FIELD_ENCRYPTION_KMS_KEY_URI":     "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4=",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 4, cfg.FieldEncryptionMaxVersions)
				assert.Equal(t, 3, cfg.FieldEncryptionCurrentVersion)
				assert.Equal(t, "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4=", cfg.FieldEncryptionKMSKeyURI)
			},
		},
		{
			name: "load custom auth configuration",
			envVars: map[string]string{
				"JWT_SECRET":                    "0123456789abcdef0123456789abcdef",
				"JWT_ISSUER":                    "meals.example.com",
				"AUTH_TOKEN_EXPIRATION_SECONDS": "600",
				"PASSWORD_BCRYPT_COST":          "13",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.JWTSecret)
				assert.Equal(t, "meals.example.com", cfg.JWTIssuer)
				assert.Equal(t, 10*time.Minute, cfg.AuthTokenExpiration)
				assert.Equal(t, 13, cfg.PasswordBcryptCost)
			},
		},
		{
			name: "load rate limit configuration",
			envVars: map[string]string{
				"RATE_LIMIT_ENABLED":                "false",
				"RATE_LIMIT_LOGIN_REQUESTS_PER_SEC": "0.5",
				"RATE_LIMIT_LOGIN_BURST":            "3",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.RateLimitEnabled)
				assert.True(t, cfg.RateLimitLoginEnabled)
				assert.Equal(t, 0.5, cfg.RateLimitLoginRequestsPerSec)
				assert.Equal(t, 3, cfg.RateLimitLoginBurst)
			},
		},
		{
			name: "load custom metrics configuration",
			envVars: map[string]string{
				"METRICS_ENABLED":   "false",
				"METRICS_NAMESPACE": "meals",
				"METRICS_PORT":      "9091",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.MetricsEnabled)
				assert.Equal(t, "meals", cfg.MetricsNamespace)
				assert.Equal(t, 9091, cfg.MetricsPort)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg := Load()
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestGetGinMode(t *testing.T) {
	assert.Equal(t, "debug", (&Config{LogLevel: "debug"}).GetGinMode())
	assert.Equal(t, "release", (&Config{LogLevel: "info"}).GetGinMode())
	assert.Equal(t, "release", (&Config{LogLevel: "bogus"}).GetGinMode())
}

func TestLoadDotEnv(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("MEALGUARD_DOTENV_PROBE=found\n"), 0o600))

	t.Chdir(nested)
	t.Cleanup(func() { _ = os.Unsetenv("MEALGUARD_DOTENV_PROBE") })

	loadDotEnv()
	assert.Equal(t, "found", os.Getenv("MEALGUARD_DOTENV_PROBE"))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Load()
		cfg.DBDriver = "postgres"
		cfg.CORSEnabled = false
		return cfg
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(cfg *Config)
		field  string
	}{
		{"unknown driver", func(cfg *Config) { cfg.DBDriver = "sqlite" }, "DBDriver"},
		{"missing dsn", func(cfg *Config) { cfg.DBConnectionString = "" }, "DBConnectionString"},
		{"port out of range", func(cfg *Config) { cfg.ServerPort = 70000 }, "ServerPort"},
		{"unknown log level", func(cfg *Config) { cfg.LogLevel = "verbose" }, "LogLevel"},
		{"current above max", func(cfg *Config) {
			cfg.FieldEncryptionMaxVersions = 2
			cfg.FieldEncryptionCurrentVersion = 3
		}, "FieldEncryptionCurrentVersion"},
		{"bcrypt cost too low", func(cfg *Config) { cfg.PasswordBcryptCost = 3 }, "PasswordBcryptCost"},
		{"token lifetime too short", func(cfg *Config) { cfg.AuthTokenExpiration = time.Second }, "AuthTokenExpiration"},
		{"cors without origins", func(cfg *Config) {
			cfg.CORSEnabled = true
			cfg.CORSAllowOrigins = ""
		}, "CORSAllowOrigins"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
