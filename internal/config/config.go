// Package config loads the localdbenv CLI configuration from a YAML file,
// LOCALDBENV_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable override, e.g.
// LOCALDBENV_INSTANCE_ROOT or LOCALDBENV_LOG_FILE.
const EnvPrefix = "LOCALDBENV"

// FileName is the configuration file name searched for when no explicit path
// is given.
const FileName = "localdbenv"

// Config is the CLI configuration.
type Config struct {
	Executable                string `mapstructure:"executable"`
	InstanceRoot              string `mapstructure:"instance_root"`
	BaseDir                   string `mapstructure:"base_dir"`
	Instance                  string `mapstructure:"instance"`
	BootstrapConnectionString string `mapstructure:"bootstrap_connection_string"`
	LinkedServerProvider      string `mapstructure:"linked_server_provider"`
	MSBuild                   string `mapstructure:"msbuild"`
	LockDir                   string `mapstructure:"lock_dir"`
	ToolLogDir                string `mapstructure:"tool_log_dir"`
	// DeletionRetries of -1 keeps the library default.
	DeletionRetries    int           `mapstructure:"deletion_retries"`
	DeletionRetryDelay time.Duration `mapstructure:"deletion_retry_delay"`
	StartupTimeout     time.Duration `mapstructure:"startup_timeout"`
	Debug              bool          `mapstructure:"debug"`
	Log                LogConfig     `mapstructure:"log"`
}

// LogConfig controls where CLI logs go. An empty File logs to stderr.
type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// flagKeys maps CLI flag names to configuration keys.
var flagKeys = map[string]string{
	"executable":    "executable",
	"instance-root": "instance_root",
	"base-dir":      "base_dir",
	"debug":         "debug",
	"log-file":      "log.file",
}

// DefaultInstanceRoot returns the per-user directory where LocalDB keeps its
// instances, or "" when the user's local application data directory is
// unknown.
func DefaultInstanceRoot() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "Microsoft", "Microsoft SQL Server Local DB", "Instances")
}

// Load reads configuration from configPath, or from localdbenv.yaml in the
// working directory or $HOME/.config/localdbenv when configPath is empty. A
// missing file in the search path is not an error; a missing explicit file is.
// Changed flags in flags (which may be nil) override file and environment
// values.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	applyDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", FileName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults registers every key so AutomaticEnv can resolve it during
// Unmarshal.
func applyDefaults(v *viper.Viper) {
	v.SetDefault("executable", "")
	v.SetDefault("instance_root", DefaultInstanceRoot())
	v.SetDefault("base_dir", "")
	v.SetDefault("instance", "")
	v.SetDefault("bootstrap_connection_string", "")
	v.SetDefault("linked_server_provider", "")
	v.SetDefault("msbuild", "")
	v.SetDefault("lock_dir", "")
	v.SetDefault("tool_log_dir", "")
	v.SetDefault("deletion_retries", -1)
	v.SetDefault("deletion_retry_delay", "0s")
	v.SetDefault("startup_timeout", "0s")
	v.SetDefault("debug", false)

	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 7)
	v.SetDefault("log.compress", true)
}

// Validate reports every invalid field. Unset optional fields keep the
// library defaults and are not errors.
func (c *Config) Validate() error {
	var errs []error

	if c.DeletionRetries < -1 {
		errs = append(errs, fmt.Errorf("deletion_retries must be >= 0, or -1 for the default, got %d", c.DeletionRetries))
	}
	if c.DeletionRetryDelay < 0 {
		errs = append(errs, fmt.Errorf("deletion_retry_delay must not be negative, got %v", c.DeletionRetryDelay))
	}
	if c.StartupTimeout < 0 {
		errs = append(errs, fmt.Errorf("startup_timeout must not be negative, got %v", c.StartupTimeout))
	}
	if c.Log.MaxSizeMB <= 0 {
		errs = append(errs, fmt.Errorf("log.max_size_mb must be > 0, got %d", c.Log.MaxSizeMB))
	}
	if c.Log.MaxBackups < 0 {
		errs = append(errs, fmt.Errorf("log.max_backups must be >= 0, got %d", c.Log.MaxBackups))
	}
	if c.Log.MaxAgeDays < 0 {
		errs = append(errs, fmt.Errorf("log.max_age_days must be >= 0, got %d", c.Log.MaxAgeDays))
	}

	return errors.Join(errs...)
}

// RequirePaths reports a missing executable or instance root. Commands that
// make instances call it; profile generation does not need either path.
func (c *Config) RequirePaths() error {
	var errs []error
	if strings.TrimSpace(c.Executable) == "" {
		errs = append(errs, errors.New("executable is not set (use --executable or LOCALDBENV_EXECUTABLE)"))
	}
	if strings.TrimSpace(c.InstanceRoot) == "" {
		errs = append(errs, errors.New("instance_root is not set (use --instance-root or LOCALDBENV_INSTANCE_ROOT)"))
	}
	return errors.Join(errs...)
}
