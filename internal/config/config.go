package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/belphemur/mood-checkin/internal/constants"
	"github.com/belphemur/mood-checkin/internal/logging"
)

// EnvPrefix marks environment variables overriding file settings.
// Nested keys are separated by a double underscore: MOODCHECK_JOURNAL__DIRECTORY.
const EnvPrefix = "MOODCHECK_"

// Config holds the application configuration
type Config struct {
	Service ServiceConfig `koanf:"service"`
	Journal JournalConfig `koanf:"journal"`
	History HistoryConfig `koanf:"history"`
}

// ServiceConfig holds process level settings
type ServiceConfig struct {
	LogLevel string `koanf:"log_level"`
}

// JournalConfig describes where the daily check-in files are written
type JournalConfig struct {
	// Directory holding the journal files, empty for the working directory
	Directory  string `koanf:"directory"`
	FilePrefix string `koanf:"file_prefix"`
	DateLayout string `koanf:"date_layout"`
}

// HistoryConfig controls the SQLite archive of accepted check-ins
type HistoryConfig struct {
	Enabled     bool                `koanf:"enabled"`
	StateFile   string              `koanf:"state_file"`
	RecentLimit int                 `koanf:"recent_limit"`
	Order       constants.ListOrder `koanf:"order"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"service.log_level":    "info",
		"journal.directory":    "",
		"journal.file_prefix":  "check_ins_",
		"journal.date_layout":  "2006-01-02",
		"history.enabled":      true,
		"history.state_file":   "data/checkins.db",
		"history.recent_limit": 5,
		"history.order":        string(constants.ListOrderDesc),
	}
}

// Load builds the configuration from defaults, the optional TOML file at path and
// MOODCHECK_ environment variables, in increasing order of precedence.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load default configuration: %w", err)
	}

	if path != "" {
		switch _, err := os.Stat(path); {
		case err == nil:
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
			logger.Debug().Str("config_path", path).Msg("Configuration file loaded")
		case errors.Is(err, os.ErrNotExist):
			logger.Debug().Str("config_path", path).Msg("No configuration file, using defaults")
		default:
			return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.TrimPrefix(key, EnvPrefix)
			return strings.ReplaceAll(strings.ToLower(key), "__", "."), value
		},
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment configuration: %w", err)
	}

	var cfg Config
	err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.TextUnmarshallerHookFunc(),
				mapstructure.StringToTimeDurationHookFunc(),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if _, err := logging.ParseLevel(cfg.Service.LogLevel); err != nil {
		return err
	}

	if cfg.Journal.FilePrefix == "" {
		return fmt.Errorf("journal file prefix is required")
	}
	if strings.ContainsAny(cfg.Journal.FilePrefix, `/\`) {
		return fmt.Errorf("journal file prefix must not contain path separators: %s", cfg.Journal.FilePrefix)
	}
	if cfg.Journal.DateLayout == "" {
		return fmt.Errorf("journal date layout is required")
	}

	if cfg.History.Enabled && cfg.History.StateFile == "" {
		return fmt.Errorf("history state file is required when history is enabled")
	}
	if cfg.History.RecentLimit < 0 {
		return fmt.Errorf("history recent limit must not be negative")
	}
	if !cfg.History.Order.IsValid() {
		return fmt.Errorf("invalid history order: %s", cfg.History.Order)
	}

	return nil
}
