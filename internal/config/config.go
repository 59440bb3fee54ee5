package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Addr               string `mapstructure:"ADDR"`
	DatabaseURL        string `mapstructure:"DATABASE_URL"`
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	TokenTTLMinutes    int    `mapstructure:"TOKEN_TTL_MINUTES"`
	Environment        string `mapstructure:"ENVIRONMENT"`
	RunMigrations      bool   `mapstructure:"RUN_MIGRATIONS"`
	MigrationsDir      string `mapstructure:"MIGRATIONS_DIR"`
	RunSeed            bool   `mapstructure:"RUN_SEED"`
	SeedAdminEmail     string `mapstructure:"SEED_ADMIN_EMAIL"`
	SeedAdminPassword  string `mapstructure:"SEED_ADMIN_PASSWORD"`
	MaxBodyBytes       int64  `mapstructure:"MAX_BODY_BYTES"`
	RateLimitPerMinute int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`
	// HolidayDates is a comma-separated list of YYYY-MM-DD=Name pairs
	// merged over the built-in fixed holiday list.
	HolidayDates string `mapstructure:"HOLIDAY_DATES"`
}

// Load reads configuration from environment variables with defaults
// suitable for local development.
func Load() (Config, error) {
	viper.SetDefault("ADDR", ":8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("TOKEN_TTL_MINUTES", 60)
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("RUN_MIGRATIONS", true)
	viper.SetDefault("MIGRATIONS_DIR", "migrations")
	viper.SetDefault("RUN_SEED", false)
	viper.SetDefault("SEED_ADMIN_EMAIL", "")
	viper.SetDefault("SEED_ADMIN_PASSWORD", "")
	viper.SetDefault("MAX_BODY_BYTES", int64(1<<20))
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 120)
	viper.SetDefault("HOLIDAY_DATES", "")

	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Holidays parses HOLIDAY_DATES into a date-key to name map. Malformed
// segments are skipped rather than rejected.
func (c Config) Holidays() map[string]string {
	out := map[string]string{}
	for _, pair := range strings.Split(c.HolidayDates, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, name, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if !found || strings.TrimSpace(name) == "" {
			name = "Holiday"
		}
		out[key] = strings.TrimSpace(name)
	}
	return out
}
