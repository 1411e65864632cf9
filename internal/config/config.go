package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is assembled once in main and injected into the services.
// Nothing here is a mutable global: the zone list and commission
// amounts travel with the struct.
type Config struct {
	Port string

	// JWT
	JWTSecret string
	JWTExpiry time.Duration

	// Operating zones drivers can be enrolled into.
	Zones []string

	// Commission amounts per enrollment type, in XAF.
	DriverCommission    float64
	PassengerCommission float64
	PeerCommission      float64

	// Withdrawals
	WithdrawalMinimum float64

	// Default monthly recruitment target for new ambassadors.
	DefaultMonthlyTarget int

	// Manager account seeded at boot when both values are set.
	ManagerEmail    string
	ManagerPassword string
	ManagerName     string
}

// DefaultZones is the operating footprint in Congo-Brazzaville.
var DefaultZones = []string{
	"Brazzaville", "Pointe-Noire", "Dolisie", "Nkayi",
	"Ouesso", "Owando", "Oyo", "Madingou", "Gamboma", "Impfondo",
}

// Load reads the configuration from the environment.
func Load() *Config {
	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		JWTSecret:            getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTExpiry:            getDuration("JWT_EXPIRY", 24*time.Hour),
		Zones:                DefaultZones,
		DriverCommission:     getFloat("COMMISSION_DRIVER", 5000),
		PassengerCommission:  getFloat("COMMISSION_PASSENGER", 500),
		PeerCommission:       getFloat("COMMISSION_TAXI_REFERRAL", 2000),
		WithdrawalMinimum:    getFloat("WITHDRAWAL_MINIMUM", 5000),
		DefaultMonthlyTarget: getInt("BA_MONTHLY_TARGET", 100),
		ManagerEmail:         os.Getenv("MANAGER_EMAIL"),
		ManagerPassword:      os.Getenv("MANAGER_PASSWORD"),
		ManagerName:          getEnv("MANAGER_NAME", "Manager"),
	}

	if raw := os.Getenv("ZONES"); raw != "" {
		var zones []string
		for _, z := range strings.Split(raw, ",") {
			if z = strings.TrimSpace(z); z != "" {
				zones = append(zones, z)
			}
		}
		if len(zones) > 0 {
			cfg.Zones = zones
		}
	}

	return cfg
}

// KnownZone reports whether the zone belongs to the configured list.
func (c *Config) KnownZone(zone string) bool {
	for _, z := range c.Zones {
		if strings.EqualFold(z, zone) {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
