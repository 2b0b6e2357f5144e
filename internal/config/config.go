package config

import (
	"os"
	"strconv"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env             string
	Port            string
	DatabaseURL     string
	JWTSecret       string
	JWTExpiresIn    time.Duration
	ResetTokenTTL   time.Duration
	EmailAPIKey     string
	EmailSender     string
	EmailSenderName string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RateLimit       float64
	RateBurst       int
	BodyLimit       string
}

func Load() *Config {
	return &Config{
		Env:             GetEnvAsString("APP_ENV", EnvDevelopment),
		Port:            GetEnvAsString("PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		JWTExpiresIn:    GetEnvAsDuration("JWT_EXPIRES_IN", 24*time.Hour),
		ResetTokenTTL:   GetEnvAsDuration("RESET_TOKEN_TTL", 10*time.Minute),
		EmailAPIKey:     os.Getenv("EMAIL_API_KEY"),
		EmailSender:     os.Getenv("EMAIL_SENDER"),
		EmailSenderName: GetEnvAsString("EMAIL_SENDER_NAME", "Tours API"),
		RedisAddr:       GetEnvAsString("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         GetEnvAsInt("REDIS_DB", 0),
		RateLimit:       GetEnvAsFloat("RATE_LIMIT", 100),
		RateBurst:       GetEnvAsInt("RATE_BURST", 30),
		BodyLimit:       GetEnvAsString("BODY_LIMIT", "10K"),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// GetEnvAsString gets environment variable as string with default value
func GetEnvAsString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets environment variable as int with default value
func GetEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvAsFloat gets environment variable as float64 with default value
func GetEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// GetEnvAsDuration gets environment variable as duration with default value
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
