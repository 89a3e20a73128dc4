package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Store backends
const (
	StoreBackendMemory   = "memory"
	StoreBackendRedis    = "redis"
	StoreBackendPostgres = "postgres"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Pricing   PricingConfig
	Advisor   AdvisorConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type StoreConfig struct {
	Backend   string
	KeyPrefix string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
	SSLMode  string
}

type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	// Namespace is prepended to every key the storefront writes to redis
	Namespace string
}

// Addr returns host:port
func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type PricingConfig struct {
	TaxRate      decimal.Decimal
	ShippingCost decimal.Decimal
}

type AdvisorConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerWindow int
	Window            time.Duration
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env != "production"
}

func Load() *Config {
	// .env is optional; viper still reads the process environment
	if err := godotenv.Load(); err != nil {
		log.Printf("Info: no .env file loaded: %v", err)
	}

	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_ENV", "development")
	v.SetDefault("STORE_BACKEND", StoreBackendMemory)
	v.SetDefault("STORE_KEY_PREFIX", "ethereal_")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SCHEMA", "public")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_NAMESPACE", "atelier:")
	v.SetDefault("TAX_RATE", "0.085")
	v.SetDefault("SHIPPING_COST", "15")
	v.SetDefault("ADVISOR_MODEL", "gemini-3-flash-preview")
	v.SetDefault("ADVISOR_TEMPERATURE", 0.7)
	v.SetDefault("ADVISOR_TIMEOUT", "8s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("ADVICE_RATE_LIMIT", 30)
	v.SetDefault("ADVICE_RATE_WINDOW", "1m")
}

func fromViper(v *viper.Viper) *Config {
	backend := strings.ToLower(v.GetString("STORE_BACKEND"))

	return &Config{
		Server: ServerConfig{
			Port: v.GetString("SERVER_PORT"),
			Env:  v.GetString("SERVER_ENV"),
		},
		Store: StoreConfig{
			Backend:   backend,
			KeyPrefix: v.GetString("STORE_KEY_PREFIX"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Database: v.GetString("DB_DATABASE"),
			Schema:   v.GetString("DB_SCHEMA"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Host:      v.GetString("REDIS_HOST"),
			Port:      v.GetString("REDIS_PORT"),
			Password:  v.GetString("REDIS_PASSWORD"),
			DB:        v.GetInt("REDIS_DB"),
			Namespace: v.GetString("REDIS_NAMESPACE"),
		},
		Pricing: PricingConfig{
			TaxRate:      decimalOrDefault(v.GetString("TAX_RATE"), "0.085"),
			ShippingCost: decimalOrDefault(v.GetString("SHIPPING_COST"), "15"),
		},
		Advisor: AdvisorConfig{
			APIKey:      firstNonEmpty(v.GetString("GEMINI_API_KEY"), v.GetString("API_KEY")),
			Model:       v.GetString("ADVISOR_MODEL"),
			Temperature: float32(v.GetFloat64("ADVISOR_TEMPERATURE")),
			Timeout:     v.GetDuration("ADVISOR_TIMEOUT"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		RateLimit: RateLimitConfig{
			// the limiter keeps its counters in redis
			Enabled:           backend == StoreBackendRedis,
			RequestsPerWindow: v.GetInt("ADVICE_RATE_LIMIT"),
			Window:            v.GetDuration("ADVICE_RATE_WINDOW"),
		},
	}
}

func decimalOrDefault(raw, fallback string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() {
		log.Printf("Warning: invalid decimal %q, using %s", raw, fallback)
		return decimal.RequireFromString(fallback)
	}
	return d
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
