package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	HTTPPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	MongoURI    string
	MongoDBName string

	RedisAddr     string
	RedisPassword string

	// KafkaBrokers empty means order events are dropped (noop publisher).
	KafkaBrokers []string
	KafkaTopic   string

	CartDBPath string

	// WhatsAppHandle is the destination handle for checkout links, an
	// international phone number without +, spaces or dashes.
	WhatsAppHandle string

	CurrencySymbol string

	IdentityEndpoint string
	JWTSecret        string
	TokenTTL         time.Duration
}

func Load() Config {
	return Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,

		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName: getEnv("MONGO_DB_NAME", "storefront"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "storefront-orders"),

		CartDBPath: getEnv("CART_DB_PATH", "cart.db"),

		WhatsAppHandle: getEnv("WHATSAPP_HANDLE", "996999050207"),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "сом"),

		IdentityEndpoint: getEnv("IDENTITY_ENDPOINT", "http://localhost:9099/v1/accounts:signIn"),
		JWTSecret:        getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:         time.Hour,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
