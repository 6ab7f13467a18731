package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Routing  RoutingConfig
	Booking  BookingConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Debug       bool
	LogPath     string
	Timezone    string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
	Migrate  bool
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// RoutingConfig points at an OSRM compatible driving-directions service.
type RoutingConfig struct {
	BaseURL string
	Timeout time.Duration
}

type BookingConfig struct {
	ResetDelay time.Duration
	DraftStore string // memory | redis
	DraftTTL   time.Duration
}

type RedisConfig struct {
	URL string
}

type RabbitMQConfig struct {
	URL      string
	Exchange string
}

// Location resolves APP_TIMEZONE, falling back to the process local zone.
func (c AppConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "taxi-booking")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("APP_TIMEZONE", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIGRATE", true)
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("ROUTING_BASE_URL", "https://router.project-osrm.org")
	v.SetDefault("ROUTING_TIMEOUT_SECONDS", 10)
	v.SetDefault("BOOKING_RESET_SECONDS", 3)
	v.SetDefault("DRAFT_STORE", "memory")
	v.SetDefault("DRAFT_TTL_HOURS", 24)
	v.SetDefault("RABBITMQ_EXCHANGE", "rides")

	// .env is optional, the environment alone is enough
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:        v.GetString("APP_NAME"),
			Port:        v.GetString("PORT"),
			Debug:       v.GetBool("DEBUG"),
			LogPath:     v.GetString("LOG_PATH"),
			Timezone:    v.GetString("APP_TIMEZONE"),
			CORSOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
			Migrate:  v.GetBool("DB_MIGRATE"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		Routing: RoutingConfig{
			BaseURL: strings.TrimRight(v.GetString("ROUTING_BASE_URL"), "/"),
			Timeout: time.Duration(v.GetInt("ROUTING_TIMEOUT_SECONDS")) * time.Second,
		},
		Booking: BookingConfig{
			ResetDelay: time.Duration(v.GetInt("BOOKING_RESET_SECONDS")) * time.Second,
			DraftStore: strings.ToLower(v.GetString("DRAFT_STORE")),
			DraftTTL:   time.Duration(v.GetInt("DRAFT_TTL_HOURS")) * time.Hour,
		},
		Redis: RedisConfig{
			URL: v.GetString("REDIS_URL"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      v.GetString("RABBITMQ_URL"),
			Exchange: v.GetString("RABBITMQ_EXCHANGE"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
