package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level claude-bell configuration.
type Config struct {
	ClaudeHome string   `mapstructure:"claude_home"`
	Desktop    bool     `mapstructure:"desktop"`
	Push       Push     `mapstructure:"push"`
	Summary    Summary  `mapstructure:"summary"`
	Classify   Classify `mapstructure:"classify"`
}

// Push configures the Bark push sink. An empty device key disables push.
type Push struct {
	Server    string `mapstructure:"server"`
	DeviceKey string `mapstructure:"device_key"`
	Sound     string `mapstructure:"sound"`
	Group     string `mapstructure:"group"`
}

// Summary configures summary composition and result encoding.
type Summary struct {
	Limit       int      `mapstructure:"limit"`
	Delimiter   string   `mapstructure:"delimiter"`
	Fallback    string   `mapstructure:"fallback"`
	SkipPrompts []string `mapstructure:"skip_prompts"`
}

// Classify configures the status classification vocabulary. The match
// lists are data, not logic, so new phrasings and locales can be added
// without a rebuild.
type Classify struct {
	PermissionWords []string `mapstructure:"permission_words"`
	FailureWords    []string `mapstructure:"failure_words"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("claude_home", DefaultClaudeHome)
	v.SetDefault("desktop", DefaultDesktop)
	v.SetDefault("push.server", DefaultBarkServer)
	v.SetDefault("push.device_key", "")
	v.SetDefault("push.sound", DefaultSound)
	v.SetDefault("push.group", DefaultGroup)
	v.SetDefault("summary.limit", DefaultSummaryLimit)
	v.SetDefault("summary.delimiter", DefaultDelimiter)

	// The device key may also arrive via the environment so the hook works
	// without a config file at all.
	v.SetEnvPrefix("CLAUDE_BELL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.ClaudeHome = expandPath(cfg.ClaudeHome)
	return &cfg, nil
}

// DBPath returns the full path to the notification history database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
