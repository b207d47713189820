// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetStaticDir() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// StorageConfig provides settings for the flat-file lead store.
type StorageConfig interface {
	GetDataFile() string
}

// CalendarConfig provides the business calendar settings.
// The calendar is fixed for the process lifetime; there is no runtime
// reconfiguration.
type CalendarConfig interface {
	GetBusinessLocation() *time.Location
	GetBusinessStartHour() int
	GetBusinessEndHour() int
	GetWeekendDays() []time.Weekday
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env               string
	HTTPAddr          string
	StaticDir         string
	DataFile          string
	CORSAllowAll      bool
	CORSOrigins       []string
	CORSAllowCreds    bool
	RateLimitRPS      float64
	RateLimitBurst    int
	BusinessTimezone  string
	BusinessLocation  *time.Location
	BusinessStartHour int
	BusinessEndHour   int
	WeekendDays       []time.Weekday
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetStaticDir() string     { return c.StaticDir }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// StorageConfig implementation
func (c *Config) GetDataFile() string { return c.DataFile }

// CalendarConfig implementation
func (c *Config) GetBusinessLocation() *time.Location { return c.BusinessLocation }
func (c *Config) GetBusinessStartHour() int           { return c.BusinessStartHour }
func (c *Config) GetBusinessEndHour() int             { return c.BusinessEndHour }
func (c *Config) GetWeekendDays() []time.Weekday      { return c.WeekendDays }

// Load reads configuration from environment variables.
// An invalid business calendar (unknown timezone, empty or inverted hour
// window, malformed weekend set) is a fatal configuration error: Load
// returns it so main can refuse to serve traffic.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", ""))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "true"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:               getEnv("APP_ENV", "development"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":3000"),
		StaticDir:         getEnv("STATIC_DIR", "./public"),
		DataFile:          getEnv("DATA_FILE", "./leads.json"),
		CORSAllowAll:      corsAllowAll,
		CORSOrigins:       corsOrigins,
		CORSAllowCreds:    strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		RateLimitRPS:      mustFloat(getEnv("RATE_LIMIT_RPS", "20")),
		RateLimitBurst:    mustInt(getEnv("RATE_LIMIT_BURST", "40")),
		BusinessTimezone:  getEnv("BUSINESS_TIMEZONE", "Europe/Amsterdam"),
		BusinessStartHour: mustInt(getEnv("BUSINESS_START_HOUR", "8")),
		BusinessEndHour:   mustInt(getEnv("BUSINESS_END_HOUR", "17")),
	}

	loc, err := time.LoadLocation(cfg.BusinessTimezone)
	if err != nil {
		return nil, fmt.Errorf("BUSINESS_TIMEZONE %q is not a valid IANA timezone: %w", cfg.BusinessTimezone, err)
	}
	cfg.BusinessLocation = loc

	if cfg.BusinessStartHour < 0 || cfg.BusinessStartHour > 23 {
		return nil, fmt.Errorf("BUSINESS_START_HOUR must be in 0..23, got %d", cfg.BusinessStartHour)
	}
	if cfg.BusinessEndHour < 1 || cfg.BusinessEndHour > 24 {
		return nil, fmt.Errorf("BUSINESS_END_HOUR must be in 1..24, got %d", cfg.BusinessEndHour)
	}
	if cfg.BusinessStartHour >= cfg.BusinessEndHour {
		return nil, fmt.Errorf("business window is empty: start hour %d >= end hour %d", cfg.BusinessStartHour, cfg.BusinessEndHour)
	}

	weekend, err := parseWeekdays(getEnv("BUSINESS_WEEKEND_DAYS", "Saturday,Sunday"))
	if err != nil {
		return nil, err
	}
	cfg.WeekendDays = weekend

	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return -1
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekdays(value string) ([]time.Weekday, error) {
	parts := splitCSV(value)
	seen := make(map[time.Weekday]bool, len(parts))
	results := make([]time.Weekday, 0, len(parts))
	for _, part := range parts {
		day, ok := weekdayNames[strings.ToLower(part)]
		if !ok {
			return nil, fmt.Errorf("BUSINESS_WEEKEND_DAYS contains unknown weekday %q", part)
		}
		if seen[day] {
			continue
		}
		seen[day] = true
		results = append(results, day)
	}
	return results, nil
}
