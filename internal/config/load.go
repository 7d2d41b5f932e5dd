package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. SCRY_STUDY_POLICY.
const EnvPrefix = "SCRY"

// flagKeys maps command-line flag names onto configuration keys.
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
	"decks":      "study.decks_path",
	"deck":       "study.deck",
	"policy":     "study.policy",
	"seed":       "study.seed",
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadWithFlags(nil)
}

// LoadWithFlags behaves like Load, additionally reading the flags registered
// by RegisterFlags. Flags that were set explicitly win over every other source.
func LoadWithFlags(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if fs != nil {
		if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
		}
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Study.Policy = strings.ToLower(strings.TrimSpace(cfg.Study.Policy))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// RegisterFlags adds the command-line flags understood by LoadWithFlags.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a YAML config file")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.String("log-format", "json", "log format (json, text)")
	fs.String("decks", "", "CSV file or directory of CSV files to load decks from")
	fs.String("deck", "", "deck to start studying immediately")
	fs.String("policy", "sequential", "scheduling policy (sequential, spaced, random)")
	fs.Uint64("seed", 0, "seed for the random policy")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("study.decks_path", "data/default_decks")
	v.SetDefault("study.deck", "")
	v.SetDefault("study.policy", "sequential")
	v.SetDefault("study.seed", 0)

	v.SetDefault("srs.min_ease_factor", 0)
	v.SetDefault("srs.max_ease_factor", 0)
	v.SetDefault("srs.initial_ease_factor", 0)
	v.SetDefault("srs.correct_adjustment", 0)
	v.SetDefault("srs.incorrect_adjustment", 0)
	v.SetDefault("srs.incorrect_interval", 0)
	v.SetDefault("srs.graduation_interval", 0)
}
