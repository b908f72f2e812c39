package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	domaincfg "strainbrain/domain/config"
)

// Config holds all application configuration.
type Config struct {
	// Server
	ServerAddress string `yaml:"server_address"`
	Environment   string `yaml:"environment"`

	// Reasoning backend
	BackendProvider string `yaml:"backend_provider"`
	GeminiAPIKey    string `yaml:"-"`
	GeminiModel     string `yaml:"gemini_model"`

	// Bulk load
	EntitiesFile string `yaml:"entities_file"`
	ThoughtsFile string `yaml:"thoughts_file"`

	// Logging and features
	LogLevel      string `yaml:"log_level"`
	EnableMetrics bool   `yaml:"enable_metrics"`
	EnableCORS    bool   `yaml:"enable_cors"`

	// Duty cycle override, zero keeps the domain default.
	DutyCycleInterval time.Duration `yaml:"duty_cycle_interval"`

	// Domain tunables, overlaid on the domain defaults.
	Domain DomainOverrides `yaml:"domain"`
}

// DomainOverrides is the yaml-tunable subset of the domain config. Zero
// values leave the defaults in place.
type DomainOverrides struct {
	PropagationDepth    int     `yaml:"propagation_depth"`
	DecayFactor         float64 `yaml:"decay_factor"`
	DissonanceThreshold float64 `yaml:"dissonance_threshold"`
	ChordThreshold      float64 `yaml:"chord_threshold"`
	ResistanceBudget    float64 `yaml:"resistance_budget"`
	MaxWorkerRoles      int     `yaml:"max_worker_roles"`
}

// LoadConfig loads configuration from environment variables, then overlays
// an optional yaml file named by CONFIG_FILE.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		BackendProvider: getEnv("BACKEND_PROVIDER", "gemini"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		EntitiesFile: getEnv("ENTITIES_FILE", ""),
		ThoughtsFile: getEnv("THOUGHTS_FILE", ""),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", true),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),

		// Zero keeps the domain defaults; a yaml overlay may still
		// override these.
		Domain: DomainOverrides{
			PropagationDepth: getEnvInt("PROPAGATION_DEPTH", 0),
			MaxWorkerRoles:   getEnvInt("MAX_WORKER_ROLES", 0),
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load is an alias for LoadConfig.
func Load() (*Config, error) {
	return LoadConfig()
}

func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks required configuration.
func (c *Config) Validate() error {
	if c.IsProduction() && c.BackendProvider == "gemini" && c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required in production")
	}
	switch c.BackendProvider {
	case "gemini", "stub":
	default:
		return fmt.Errorf("unknown backend provider %q", c.BackendProvider)
	}
	return nil
}

// DomainConfig materializes the domain tunables with the yaml overrides
// applied.
func (c *Config) DomainConfig() *domaincfg.DomainConfig {
	dc := domaincfg.DefaultDomainConfig()
	if c.Domain.PropagationDepth > 0 {
		dc.PropagationDepth = c.Domain.PropagationDepth
	}
	if c.Domain.DecayFactor > 0 {
		dc.DecayFactor = c.Domain.DecayFactor
	}
	if c.Domain.DissonanceThreshold > 0 {
		dc.DissonanceThreshold = c.Domain.DissonanceThreshold
	}
	if c.Domain.ChordThreshold > 0 {
		dc.ChordThreshold = c.Domain.ChordThreshold
	}
	if c.Domain.ResistanceBudget > 0 {
		dc.ResistanceBudget = c.Domain.ResistanceBudget
	}
	if c.Domain.MaxWorkerRoles > 0 {
		dc.MaxWorkerRoles = c.Domain.MaxWorkerRoles
	}
	if c.DutyCycleInterval > 0 {
		dc.DutyCycleInterval = c.DutyCycleInterval
	}
	return dc
}

// IsDevelopment checks for development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks for production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
