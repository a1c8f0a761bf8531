// Package config loads server settings from the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server holds settings for the HTTP presentation layer.
type Server struct {
	Addr            string
	Questionnaire   string
	RequireComplete bool
	CORSOrigins     []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	GinMode         string
}

// Load reads an optional .env file, then the environment.
func Load() Server {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	return FromEnv()
}

// FromEnv builds settings from the current environment only.
func FromEnv() Server {
	return Server{
		Addr:            getEnv("CREMIS_ADDR", ":8080"),
		Questionnaire:   getEnv("CREMIS_QUESTIONNAIRE", "cremis"),
		RequireComplete: getEnvAsBool("CREMIS_REQUIRE_COMPLETE", false),
		CORSOrigins:     getEnvAsList("CREMIS_CORS_ORIGINS", []string{"http://localhost:3000"}),
		ReadTimeout:     getEnvAsDuration("CREMIS_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvAsDuration("CREMIS_WRITE_TIMEOUT", 15*time.Second),
		GinMode:         getEnv("GIN_MODE", "release"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid %s=%q, using %v", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s=%q, using %v", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
