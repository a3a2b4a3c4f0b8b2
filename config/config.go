package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/raywall/gh-org-progress/utilization"
)

// ErrInvalidConfig is returned (wrapped) by Validate.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	GitHub       GitHubConfig       `mapstructure:"github"`
	Logger       LoggerConfig       `mapstructure:"logger"`
	Workload     utilization.Config `mapstructure:"workload"`
	Projects     []ProjectRule      `mapstructure:"projects"`
	StatusFilter []string           `mapstructure:"status_filter"`
}

type GitHubConfig struct {
	Owner     string `mapstructure:"owner"`
	Token     string `mapstructure:"token"`
	SinceDays int    `mapstructure:"since_days"`
}

type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ProjectRule maps every issue carrying Label to the project identified by Number.
type ProjectRule struct {
	Number int    `mapstructure:"number"`
	Name   string `mapstructure:"name"`
	Label  string `mapstructure:"label"`
}

// Load reads the configuration from path (or ./config.yaml, ./config/config.yaml when
// path is empty) and applies environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("GHP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	bindEnvVariables(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	w := utilization.DefaultConfig()
	v.SetDefault("workload.low", w.Low)
	v.SetDefault("workload.optimal", w.Optimal)
	v.SetDefault("workload.high", w.High)
	v.SetDefault("workload.critical", w.Critical)
	v.SetDefault("workload.weekly_capacity", w.WeeklyCapacity)
	v.SetDefault("workload.issue_active", w.IssueActive)
	v.SetDefault("workload.issue_review", w.IssueReview)
	v.SetDefault("workload.task_active", w.TaskActive)
	v.SetDefault("workload.pr_review", w.PRReview)
	v.SetDefault("workload.commit", w.Commit)

	v.SetDefault("github.since_days", 30)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
}

// bindEnvVariables binds the conventional variable names next to the GHP_ prefixed ones
func bindEnvVariables(v *viper.Viper) {
	v.BindEnv("github.token", "GHP_GITHUB_TOKEN", "GITHUB_TOKEN")
	v.BindEnv("github.owner", "GHP_GITHUB_OWNER", "GITHUB_OWNER")

	v.BindEnv("logger.level", "GHP_LOGGER_LEVEL", "LOG_LEVEL")
	v.BindEnv("logger.format", "GHP_LOGGER_FORMAT", "LOG_FORMAT")
}

// Validate checks the workload constants and project rules.
func (c *Config) Validate() error {
	if err := c.Workload.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	seen := make(map[int]struct{}, len(c.Projects))
	for _, p := range c.Projects {
		if p.Label == "" {
			return fmt.Errorf("%w: project %d has no label", ErrInvalidConfig, p.Number)
		}
		if _, dup := seen[p.Number]; dup {
			return fmt.Errorf("%w: duplicate project number %d", ErrInvalidConfig, p.Number)
		}
		seen[p.Number] = struct{}{}
	}
	if c.GitHub.SinceDays < 0 {
		return fmt.Errorf("%w: github.since_days must not be negative", ErrInvalidConfig)
	}
	return nil
}
