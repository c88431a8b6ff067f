package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hotelbook/service-booking/pkg/config"
)

// ServiceConfig holds all configuration for the booking service.
type ServiceConfig struct {
	Port            string
	AppEnv          string
	DBConfig        config.DatabaseConfig
	JWTConfig       config.JWTConfig
	KafkaConfig     config.KafkaConfig
	RabbitConfig    config.RabbitConfig
	RedisConfig     config.RedisConfig
	TracingConfig   config.TracingConfig
	RateLimitConfig config.RateLimitConfig

	// HotelTimezone resolves calendar days for room availability queries.
	HotelTimezone *time.Location
	// StrictTransitions enforces the forward-only status graph.
	StrictTransitions bool
	// EventsBroker is "kafka", "rabbitmq" or "none".
	EventsBroker string
	RoomCacheTTL time.Duration
}

// Load reads configuration from BOOKING_* environment variables.
func Load() (*ServiceConfig, error) {
	v, err := config.Load("BOOKING")
	if err != nil {
		return nil, err
	}
	v.SetDefault("DB_NAME", "booking")
	v.SetDefault("HOTEL_TIMEZONE", "UTC")
	v.SetDefault("STRICT_TRANSITIONS", false)
	v.SetDefault("EVENTS_BROKER", "kafka")

	loc, err := time.LoadLocation(v.GetString("HOTEL_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid HOTEL_TIMEZONE: %w", err)
	}

	cfg := &ServiceConfig{
		Port:              config.GetServicePort(v, "SERVICE_PORT"),
		AppEnv:            config.GetAppEnv(v),
		DBConfig:          config.LoadDatabaseConfig(v, "DB_NAME"),
		JWTConfig:         config.LoadJWTConfig(v),
		KafkaConfig:       config.LoadKafkaConfig(v),
		RabbitConfig:      config.LoadRabbitConfig(v),
		RedisConfig:       config.LoadRedisConfig(v),
		TracingConfig:     config.LoadTracingConfig(v),
		RateLimitConfig:   config.LoadRateLimitConfig(v),
		HotelTimezone:     loc,
		StrictTransitions: v.GetBool("STRICT_TRANSITIONS"),
		EventsBroker:      strings.ToLower(strings.TrimSpace(v.GetString("EVENTS_BROKER"))),
		RoomCacheTTL:      config.GetDuration(v, "ROOM_CACHE_TTL", time.Minute),
	}

	if cfg.JWTConfig.Secret == "" && cfg.AppEnv != "development" {
		return nil, errors.New("BOOKING_JWT_SECRET is required outside development")
	}
	return cfg, nil
}
