package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	VerifyToken      string
	WhatsAppToken    string
	PhoneNumberID    string
	TemplateLanguage string

	DBPath     string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	Timezone      string
	LookupTimeout time.Duration
	ImportTimeout time.Duration

	// Policy defaults, applied when no settings snapshot is stored yet.
	AutoImportEnabled     bool
	RequireEmail          bool
	RequirePhone          bool
	DuplicateCheckEnabled bool
	ConfidenceThreshold   int
	BusinessHoursOnly     bool
	AutoReplyEnabled      bool
	NotifyOnImport        bool
	BusinessHoursStart    int
	BusinessHoursEnd      int
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file")
	}

	return &Config{
		Port:             getEnv("PORT", "8080"),
		VerifyToken:      getEnv("VERIFY_TOKEN", ""),
		WhatsAppToken:    getEnv("WHATSAPP_TOKEN", ""),
		PhoneNumberID:    getEnv("PHONE_NUMBER_ID", ""),
		TemplateLanguage: getEnv("TEMPLATE_LANGUAGE", "en"),

		DBPath:     getEnv("DB_PATH", "./diveops.db"),
		DBHost:     getEnv("DB_HOST", ""),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "diveops"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		Timezone:      getEnv("TIMEZONE", "UTC"),
		LookupTimeout: getEnvDuration("LOOKUP_TIMEOUT", 5*time.Second),
		ImportTimeout: getEnvDuration("IMPORT_TIMEOUT", 10*time.Second),

		AutoImportEnabled:     getEnvBool("AUTO_IMPORT_ENABLED", true),
		RequireEmail:          getEnvBool("REQUIRE_EMAIL", true),
		RequirePhone:          getEnvBool("REQUIRE_PHONE", false),
		DuplicateCheckEnabled: getEnvBool("DUPLICATE_CHECK_ENABLED", true),
		ConfidenceThreshold:   getEnvInt("CONFIDENCE_THRESHOLD", 75),
		BusinessHoursOnly:     getEnvBool("BUSINESS_HOURS_ONLY", false),
		AutoReplyEnabled:      getEnvBool("AUTO_REPLY_ENABLED", true),
		NotifyOnImport:        getEnvBool("NOTIFY_ON_IMPORT", true),
		BusinessHoursStart:    getEnvInt("BUSINESS_HOURS_START", 9),
		BusinessHoursEnd:      getEnvInt("BUSINESS_HOURS_END", 18),
	}
}

// Location resolves the configured timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Warning: unknown timezone %q, using UTC", c.Timezone)
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: invalid bool for %s: %q", key, value)
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid int for %s: %q", key, value)
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid duration for %s: %q", key, value)
		return fallback
	}
	return parsed
}
