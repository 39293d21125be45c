// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"my-money/pkg/db"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		for _, key := range []string{"SERVER_PORT", "DB_DRIVER", "DB_PORT", "LOG_FORMAT", "APP_CURRENCY"} {
			t.Setenv(key, "")
		}

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, db.DriverPostgres, cfg.DB.Driver)
		assert.Equal(t, 5432, cfg.DB.Port)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "IDR", cfg.Currency)
	})

	t.Run("SQLiteOverride", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "sqlite")
		t.Setenv("DB_PATH", "/tmp/money-test.db")
		t.Setenv("LOG_FORMAT", "text")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, db.DriverSQLite, cfg.DB.Driver)
		assert.Equal(t, "/tmp/money-test.db", cfg.DB.Path)
		assert.Equal(t, "text", cfg.Log.Format)
	})

	t.Run("InvalidPort", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "")
		t.Setenv("DB_PORT", "not-a-port")

		_, err := LoadConfig()
		assert.ErrorContains(t, err, "invalid DB_PORT")
	})

	t.Run("InvalidDriver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "mysql")

		_, err := LoadConfig()
		assert.ErrorContains(t, err, "invalid DB_DRIVER")
	})
}
