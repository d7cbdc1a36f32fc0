package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config is the engine's runtime configuration, read from the environment.
type Config struct {
	// APIBaseURL is the backend exposing /api/products and /api/orders.
	APIBaseURL string
	// HTTPTimeout bounds every catalog fetch and order submission.
	HTTPTimeout time.Duration
	// AuthToken is the opaque credential from the identity provider; empty
	// means anonymous.
	AuthToken string

	// UPI payee the payment handoff is addressed to.
	UPIPayeeID   string
	UPIPayeeName string
	UPINote      string

	// JournalPath is the local order-journal database; empty disables it.
	JournalPath string

	// Devserver settings.
	AppPort     string
	RabbitMQURL string
}

// Load reads configuration from environment variables with defaults suitable
// for local development.
func Load() Config {
	v := viper.New()
	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("HTTP_TIMEOUT_SECONDS", 15)
	v.SetDefault("AUTH_TOKEN", "")
	v.SetDefault("UPI_PAYEE_ID", "bazaar@oksbi")
	v.SetDefault("UPI_PAYEE_NAME", "Bazaar")
	v.SetDefault("UPI_NOTE", "Bazaar Payment")
	v.SetDefault("JOURNAL_PATH", "bazaar.db")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("RABBITMQ_URL", "")
	v.AutomaticEnv()

	return Config{
		APIBaseURL:   v.GetString("API_BASE_URL"),
		HTTPTimeout:  time.Duration(v.GetInt("HTTP_TIMEOUT_SECONDS")) * time.Second,
		AuthToken:    v.GetString("AUTH_TOKEN"),
		UPIPayeeID:   v.GetString("UPI_PAYEE_ID"),
		UPIPayeeName: v.GetString("UPI_PAYEE_NAME"),
		UPINote:      v.GetString("UPI_NOTE"),
		JournalPath:  v.GetString("JOURNAL_PATH"),
		AppPort:      v.GetString("APP_PORT"),
		RabbitMQURL:  v.GetString("RABBITMQ_URL"),
	}
}
