package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	rewardsdomain "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/domain"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	Redis         RedisConfig         `yaml:"redis"`
	HTTP          HTTPConfig          `yaml:"http"`
	Rewards       RewardsConfig       `yaml:"rewards"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig holds the optional leaderboard cache configuration. An empty
// address disables the cache.
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// HTTPConfig holds the read-API server configuration.
type HTTPConfig struct {
	Address string `yaml:"address"`
}

// RewardsConfig is the serialized form of the engine rule set. Zero values
// fall back to the domain defaults so a missing section still yields a
// working engine.
type RewardsConfig struct {
	RulesVersion  string                 `yaml:"rules_version"`
	StreakWindow  time.Duration          `yaml:"streak_window"`
	CoinRatio     int                    `yaml:"coin_ratio"`
	Multipliers   []MultiplierStepConfig `yaml:"multipliers"`
	RankTiers     []RankTierConfig       `yaml:"rank_tiers"`
	SnapshotEvery time.Duration          `yaml:"snapshot_every"`
}

// MultiplierStepConfig is one multiplier table row.
type MultiplierStepConfig struct {
	MinStreak int `yaml:"min_streak"`
	Factor    int `yaml:"factor"`
}

// RankTierConfig is one rank table row.
type RankTierConfig struct {
	Name      string `yaml:"name"`
	MinPoints int64  `yaml:"min_points"`
	Icon      string `yaml:"icon"`
	Gradient  string `yaml:"gradient"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
	MetricsAddress string `yaml:"metrics_address"`
	OTLPEndpoint   string `yaml:"otlp_endpoint"`
	OTLPInsecure   bool   `yaml:"otlp_insecure"`
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	// Try reading configuration from the file first
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, fall back to environment variables
		cfg := &Config{}
		cfg.applyEnvOverrides()
		return cfg, nil
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyEnvOverrides()
	return &cfg, nil
}

// --- OVERRIDE WITH ENV VARS IF PRESENT ---
func (cfg *Config) applyEnvOverrides() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("REDIS_ADDRESS"); v != "" {
		cfg.Redis.Address = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("OTLP_ENDPOINT"); v != "" {
		cfg.Observability.OTLPEndpoint = v
	}
	if v := os.Getenv("OTLP_INSECURE"); v != "" {
		cfg.Observability.OTLPInsecure = v == "true"
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
	if v := os.Getenv("STREAK_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Rewards.StreakWindow = d
		}
	}
	if v := os.Getenv("SNAPSHOT_EVERY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Rewards.SnapshotEvery = d
		}
	}
}

// Rules assembles the domain rule set from configuration, falling back to
// domain defaults for any omitted piece.
func (cfg *Config) Rules() (rewardsdomain.Rules, error) {
	rules := rewardsdomain.DefaultRules()

	if cfg.Rewards.RulesVersion != "" {
		rules.Version = cfg.Rewards.RulesVersion
	}
	if cfg.Rewards.StreakWindow > 0 {
		rules.StreakWindow = cfg.Rewards.StreakWindow
	}
	if cfg.Rewards.CoinRatio > 0 {
		rules.CoinRatio = cfg.Rewards.CoinRatio
	}
	if len(cfg.Rewards.Multipliers) > 0 {
		table := make(rewardsdomain.MultiplierTable, 0, len(cfg.Rewards.Multipliers))
		for _, step := range cfg.Rewards.Multipliers {
			table = append(table, rewardsdomain.MultiplierStep{
				MinStreak: step.MinStreak,
				Factor:    step.Factor,
			})
		}
		rules.Multipliers = table
	}
	if len(cfg.Rewards.RankTiers) > 0 {
		table := make(rewardsdomain.RankTable, 0, len(cfg.Rewards.RankTiers))
		for _, tier := range cfg.Rewards.RankTiers {
			table = append(table, rewardsdomain.RankTier{
				Name:      tier.Name,
				MinPoints: rewardsdomain.Points(tier.MinPoints),
				Icon:      tier.Icon,
				Gradient:  tier.Gradient,
			})
		}
		rules.Ranks = table
	}

	if err := rules.Validate(); err != nil {
		return rewardsdomain.Rules{}, fmt.Errorf("invalid rewards rules: %w", err)
	}
	return rules, nil
}
