package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	Admin     AdminConfig
	Payment   PaymentConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// AdminConfig holds the single fixed admin credential pair. This is a
// placeholder, not a security boundary.
type AdminConfig struct {
	Email     string
	Password  string
	JWTSecret string
}

type PaymentConfig struct {
	GatewayTimeout  time.Duration
	CardCheckoutURL string
	AltCardAuthURL  string
}

type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("ADMIN_EMAIL", "admin@example.com")
	viper.SetDefault("ADMIN_PASSWORD", "password")
	viper.SetDefault("ADMIN_JWT_SECRET", "dev-only-secret")
	viper.SetDefault("GATEWAY_TIMEOUT_SECONDS", 15)
	viper.SetDefault("CARD_CHECKOUT_URL", "https://checkout.stripe.com/example-session")
	viper.SetDefault("ALT_CARD_AUTH_URL", "https://checkout.paystack.com/example-transaction")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 30)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Admin: AdminConfig{
			Email:     viper.GetString("ADMIN_EMAIL"),
			Password:  viper.GetString("ADMIN_PASSWORD"),
			JWTSecret: viper.GetString("ADMIN_JWT_SECRET"),
		},
		Payment: PaymentConfig{
			GatewayTimeout:  time.Duration(viper.GetInt("GATEWAY_TIMEOUT_SECONDS")) * time.Second,
			CardCheckoutURL: viper.GetString("CARD_CHECKOUT_URL"),
			AltCardAuthURL:  viper.GetString("ALT_CARD_AUTH_URL"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerWindow: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Window:            time.Duration(viper.GetInt("RATE_LIMIT_WINDOW_SECONDS")) * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
		},
	}
}
