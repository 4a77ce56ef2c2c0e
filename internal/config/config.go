package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Record store backends
	SheetsAPIURL    string
	SheetsTimeout   time.Duration
	LocalStorePath  string
	DatabaseURL     string
	StorageKey      string

	// Dashboard access
	DashboardPIN    string
	SessionSecret   string
	SessionTTL      time.Duration

	// Booking wizard sessions
	RedisAddr     string
	RedisPassword string
	WizardTTL     time.Duration

	// Follow-up stage progression
	ProgressionEnabled  bool
	ProgressionInterval time.Duration

	// Clinic profile
	ClinicName     string
	ClinicTagline  string
	ClinicPhone    string
	ClinicWhatsApp string
	ClinicEmail    string
	ClinicAddress  string
	ClinicCity     string
	CountryCode    string

	CORSAllowedOrigins string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		SheetsAPIURL:   getEnv("SHEETS_API_URL", ""),
		SheetsTimeout:  getEnvAsDuration("SHEETS_TIMEOUT", 10*time.Second),
		LocalStorePath: getEnv("LOCAL_STORE_PATH", "dentalclinic.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		StorageKey:     getEnv("STORAGE_KEY", "dentalclinic_appointments"),

		DashboardPIN:  getEnv("DASHBOARD_PIN", ""),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    getEnvAsDuration("SESSION_TTL", 8*time.Hour),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		WizardTTL:     getEnvAsDuration("WIZARD_SESSION_TTL", 30*time.Minute),

		ProgressionEnabled:  getEnvAsBool("FOLLOWUP_PROGRESSION_ENABLED", true),
		ProgressionInterval: getEnvAsDuration("FOLLOWUP_PROGRESSION_INTERVAL", time.Hour),

		ClinicName:     getEnv("CLINIC_NAME", "Suman Dental Clinic"),
		ClinicTagline:  getEnv("CLINIC_TAGLINE", "Your Smile, Our Priority"),
		ClinicPhone:    getEnv("CLINIC_PHONE", "9110443004"),
		ClinicWhatsApp: getEnv("CLINIC_WHATSAPP", "919110443004"),
		ClinicEmail:    getEnv("CLINIC_EMAIL", "hello@sumandental.in"),
		ClinicAddress:  getEnv("CLINIC_ADDRESS", "Ground Floor, Opposite City Mall, MG Road, Bengaluru, Karnataka 560001"),
		ClinicCity:     getEnv("CLINIC_CITY", "Bengaluru"),
		CountryCode:    getEnv("COUNTRY_CODE", "91"),

		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
	}
}

// AllowedOrigins splits the CORS origin list into its entries.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
