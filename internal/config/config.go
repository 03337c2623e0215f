package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	facility "carpark-cloud/internal/facility/domain"
)

// Rate defines the charge pair for one vehicle class.
type Rate struct {
	Base   float64 `yaml:"base"`
	Hourly float64 `yaml:"hourly"`
}

// Config defines facility configuration.
type Config struct {
	Capacity    int             `yaml:"capacity"`
	Pricing     map[string]Rate `yaml:"pricing"`
	Currency    string          `yaml:"currency"`
	ReportFile  string          `yaml:"report_file"`
	HTTPAddr    string          `yaml:"http_addr"`
	JWTSecret   string          `yaml:"jwt_secret"`
	DatabaseURL string          `yaml:"database_url"`
}

// Load builds config from yaml (CARPARK_CONFIG) layered over env and defaults.
func Load() (Config, error) {
	cfg := Config{
		Capacity:    getenvIntDefault("CARPARK_CAPACITY", 10),
		Currency:    getenvDefault("CARPARK_CURRENCY", "₹"),
		ReportFile:  getenvDefault("CARPARK_REPORT_FILE", "parking_report.txt"),
		HTTPAddr:    getenvDefault("HTTP_ADDR", ":8080"),
		JWTSecret:   getenvDefault("AUTH_JWT_SECRET", os.Getenv("JWT_SECRET")),
		DatabaseURL: getenvDefault("DATABASE_URL", os.Getenv("PG_DSN")),
	}

	if path := os.Getenv("CARPARK_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.Capacity < 1 {
		return cfg, facility.ErrInvalidCapacity
	}
	if err := cfg.PricingTable().Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// PricingTable converts configured rates to the domain table. When no rates
// are configured, the facility defaults apply.
func (c Config) PricingTable() facility.PricingTable {
	if len(c.Pricing) == 0 {
		return facility.DefaultPricingTable()
	}
	table := make(facility.PricingTable, len(c.Pricing))
	for class, rate := range c.Pricing {
		table[facility.VehicleClass(class)] = facility.PricingRule{Base: rate.Base, Hourly: rate.Hourly}
	}
	return table
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
