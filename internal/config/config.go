package config

import (
	"errors"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultSessionSecret signs session tokens when SESSION_SECRET is unset.
// It must match the envDefault of Config.Session.Secret.
const DefaultSessionSecret = "change-me"

type Config struct {
	Port     string `env:"PORT" envDefault:"8000"`
	GinMode  string `env:"GIN_MODE"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// json or console
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	Dataset   struct {
		// JSON/YAML file or a directory of CSV files; the bundled data is used when empty
		File string `env:"FILE"`
	} `envPrefix:"DATASET_"`
	DatabaseURL string `env:"DATABASE_URL"`
	DataPath    string `env:"DATA_PATH"`
	Collation   struct {
		Locale  string `env:"LOCALE" envDefault:"ja"`
		Numeric bool   `env:"NUMERIC" envDefault:"true"`
	} `envPrefix:"COLLATION_"`
	Session struct {
		Secret   string `env:"SECRET" envDefault:"change-me"`
		TTLHours int    `env:"TTL_HOURS" envDefault:"24"`
	} `envPrefix:"SESSION_"`
	ShutdownTimeout int `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
}

// UseDatabase reports whether the dataset should be read from a database
func (c *Config) UseDatabase() bool {
	return c.DatabaseURL != "" || c.DataPath != ""
}

// LoadEnvFiles loads the first .env found in the working directory or its parents
func LoadEnvFiles() {
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}
}

// LoadConfig reads .env files and parses the environment
func LoadConfig() (*Config, error) {
	LoadEnvFiles()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok && len(aggErr.Errors) > 0 {
			// the first error is enough to fix the setup
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}
