// Package config loads external-service settings from the environment.
package config

import (
	"os"
	"strconv"
)

// Config holds the settings for every external service the API talks to.
type Config struct {
	// Plate recognition
	OpenALPRSecretKey string
	OpenALPRBaseURL   string

	// Geocoding
	GoogleMapsAPIKey string

	// Messaging
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string

	// Bike share feeds
	StationsURL string
	BoroughsURL string

	// Password reset email
	SendGridAPIKey string
	ResetFromName  string
	ResetFromEmail string
	ResetBaseURL   string

	// Release version recorded on submissions
	VersionNumber int
}

// Load reads the configuration from environment variables, applying defaults
// where a public endpoint exists.
func Load() *Config {
	return &Config{
		OpenALPRSecretKey: getEnv("OPENALPR_SECRET_KEY", ""),
		OpenALPRBaseURL:   getEnv("OPENALPR_BASE_URL", ""),

		GoogleMapsAPIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),

		AMQPURL:        getEnv("AMQP_URL", ""),
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "submissions"),
		AMQPRoutingKey: getEnv("AMQP_ROUTING_KEY", "submission.accepted"),

		StationsURL: getEnv("STATIONS_URL", ""),
		BoroughsURL: getEnv("BOROUGHS_URL", ""),

		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		ResetFromName:  getEnv("RESET_FROM_NAME", "Reported"),
		ResetFromEmail: getEnv("RESET_FROM_EMAIL", "info@reportedcab.com"),
		ResetBaseURL:   getEnv("RESET_BASE_URL", "https://www.reportedcab.com/reset"),

		VersionNumber: getIntEnv("RELEASE_VERSION", 0),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
