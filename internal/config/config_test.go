package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bazaar/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "bazaar@oksbi", cfg.UPIPayeeID)
	assert.Equal(t, "Bazaar", cfg.UPIPayeeName)
	assert.Equal(t, "bazaar.db", cfg.JournalPath)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Empty(t, cfg.AuthToken)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://backend.test:9090")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "5")
	t.Setenv("UPI_PAYEE_ID", "other@upi")
	t.Setenv("JOURNAL_PATH", "/tmp/orders.db")

	cfg := config.Load()

	assert.Equal(t, "http://backend.test:9090", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "other@upi", cfg.UPIPayeeID)
	assert.Equal(t, "/tmp/orders.db", cfg.JournalPath)
}
