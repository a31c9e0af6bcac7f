package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Booking     BookingConfig
	Idempotency IdempotencyConfig
	Payment     PaymentConfig
	Session     SessionConfig
	RateLimit   RateLimitConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type BookingConfig struct {
	// TTLMinutes is how long a RESERVED booking is held before the
	// expiry sweep releases it.
	TTLMinutes         int
	ExpirySweepSeconds int
}

type IdempotencyConfig struct {
	TTLHours       int
	CleanupMinutes int
}

type PaymentConfig struct {
	// SuccessRate is the fraction of simulated gateway calls that succeed.
	SuccessRate float64
}

type SessionConfig struct {
	ExpiryHours int
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "bus-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("BOOKING_TTL_MINUTES", 5)
	viper.SetDefault("EXPIRY_SWEEP_SECONDS", 5)
	viper.SetDefault("IDEMPOTENCY_TTL_HOURS", 24)
	viper.SetDefault("IDEMPOTENCY_CLEANUP_MINUTES", 5)
	viper.SetDefault("PAYMENT_SUCCESS_RATE", 0.9)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("RATE_LIMIT_RPS", 50.0)
	viper.SetDefault("RATE_LIMIT_BURST", 100)

	// A missing .env is fine; defaults plus real environment variables
	// cover every setting.
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Booking: BookingConfig{
			TTLMinutes:         viper.GetInt("BOOKING_TTL_MINUTES"),
			ExpirySweepSeconds: viper.GetInt("EXPIRY_SWEEP_SECONDS"),
		},
		Idempotency: IdempotencyConfig{
			TTLHours:       viper.GetInt("IDEMPOTENCY_TTL_HOURS"),
			CleanupMinutes: viper.GetInt("IDEMPOTENCY_CLEANUP_MINUTES"),
		},
		Payment: PaymentConfig{
			SuccessRate: viper.GetFloat64("PAYMENT_SUCCESS_RATE"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	return config, nil
}
