package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Carrier  CarrierConfig
	Gateway  GatewayConfig
	Mail     MailConfig
	Jobs     JobsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// CarrierConfig holds the carrier API credentials
type CarrierConfig struct {
	BaseURL    string
	Token      string
	PickupName string
	Timeout    time.Duration
}

// GatewayConfig holds the payment gateway credentials
type GatewayConfig struct {
	BaseURL     string
	KeyID       string
	KeySecret   string
	CallbackURL string
	Timeout     time.Duration
}

// MailConfig holds SMTP settings
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// JobsConfig holds background sweep settings
type JobsConfig struct {
	RechargeSweepInterval time.Duration
	RechargeStaleAfter    time.Duration
	IntentReconcileEvery  time.Duration
	IntentStaleAfter      time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "shipstack"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "change-this-in-production"),
			Expiry: getEnvAsDuration("JWT_EXPIRY", 24*time.Hour),
		},
		Carrier: CarrierConfig{
			BaseURL:    getEnv("CARRIER_BASE_URL", "https://staging-express.delhivery.com"),
			Token:      getEnv("CARRIER_API_TOKEN", ""),
			PickupName: getEnv("CARRIER_PICKUP_NAME", ""),
			Timeout:    getEnvAsDuration("CARRIER_TIMEOUT", 15*time.Second),
		},
		Gateway: GatewayConfig{
			BaseURL:     getEnv("GATEWAY_BASE_URL", "https://api.razorpay.com"),
			KeyID:       getEnv("GATEWAY_KEY_ID", ""),
			KeySecret:   getEnv("GATEWAY_KEY_SECRET", ""),
			CallbackURL: getEnv("GATEWAY_CALLBACK_URL", "http://localhost:8080/api/v1/recharge/callback"),
			Timeout:     getEnvAsDuration("GATEWAY_TIMEOUT", 15*time.Second),
		},
		Mail: MailConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "noreply@shipstack.local"),
		},
		Jobs: JobsConfig{
			RechargeSweepInterval: getEnvAsDuration("RECHARGE_SWEEP_INTERVAL", 2*time.Minute),
			RechargeStaleAfter:    getEnvAsDuration("RECHARGE_STALE_AFTER", 15*time.Minute),
			IntentReconcileEvery:  getEnvAsDuration("INTENT_RECONCILE_INTERVAL", 5*time.Minute),
			IntentStaleAfter:      getEnvAsDuration("INTENT_STALE_AFTER", 10*time.Minute),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
