package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("APP_PORT", "8080")
		t.Setenv("APP_ENV", "test")
		t.Setenv("SMTP_HOST", "smtp.example.com")
		t.Setenv("SMTP_PORT", "587")
		t.Setenv("ORDERS_INBOX", "orders@amalskitchen.co.za")
		t.Setenv("CATALOG_URL", "https://cms.example.com")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "smtp.example.com", cfg.SMTPHost)
		assert.Equal(t, 587, cfg.SMTPPort)
		assert.Equal(t, "orders@amalskitchen.co.za", cfg.OrdersInbox)
		assert.Equal(t, "https://cms.example.com", cfg.CatalogURL)
	})

	t.Run("SMTP port defaults when unset", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("SMTP_PORT", "")

		cfg := LoadConfig()
		assert.Equal(t, 465, cfg.SMTPPort)
	})
}
