package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration. An empty address disables the rating hot cache
	// and the notification queue.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Kafka configuration. No brokers means events are dropped.
	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic   string `mapstructure:"KAFKA_TOPIC"`

	// Rating aggregation.
	RatingStaleness time.Duration `mapstructure:"RATING_STALENESS"`
	RatingStrategy  string        `mapstructure:"RATING_STRATEGY"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "tourhub")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 3)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "tourhub.reviews")
	v.SetDefault("RATING_STALENESS", "1h")
	v.SetDefault("RATING_STRATEGY", "memory")
}

// LoadConfig reads config.yaml (from "." or "./config") overlaid with
// environment variables and stores the result in AppConfig.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	// Automatically use environment variables where available.
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	AppConfig = cfg
	return &cfg, nil
}

// Validate rejects values the rest of the service cannot work with.
func (c *Config) Validate() error {
	if c.RatingStaleness <= 0 {
		return fmt.Errorf("RATING_STALENESS must be positive, got %s", c.RatingStaleness)
	}
	switch c.RatingStrategy {
	case "memory", "pipeline":
	default:
		return fmt.Errorf("RATING_STRATEGY must be memory or pipeline, got %q", c.RatingStrategy)
	}
	if c.IsProduction() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	return nil
}

// Brokers splits KAFKA_BROKERS into a list, dropping blanks.
func (c *Config) Brokers() []string {
	var out []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// UsesMemoryStore reports whether DATABASE_URL selects the in-process store.
func (c *Config) UsesMemoryStore() bool {
	return c.DatabaseURL == "memory"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
