// Package config manages application-wide settings.
// Values come from flags, GFD_* environment variables, an optional config
// file in the XDG config directory, and built-in defaults, in that order.
package config

import (
	"errors"
	"fmt"
	"gfd/pkg/availability"
	"gfd/pkg/downloader"
	"gfd/pkg/sfd"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// AppName names the XDG sub-directories.
const AppName = "gfd"

const (
	KeyURL        = "url"
	KeyLang       = "lang"
	KeyAttempts   = "attempts"
	KeyRetryDelay = "retry-delay"
	KeyTimeout    = "timeout"
	KeyStateFile  = "state-file"
	KeyVerbose    = "verbose"
)

// Config holds the resolved settings.
// Immutable
type Config struct {
	URL        string
	Lang       string
	Attempts   int
	RetryDelay time.Duration
	Timeout    time.Duration
	StateFile  string
	Verbose    bool
	// ConfigFile is the file the settings were read from, empty if none.
	ConfigFile string
}

// ConfigDir returns the directory searched for config.{yaml,json,toml}.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultStateFile returns the default installed-state path.
func DefaultStateFile() string {
	return filepath.Join(xdg.StateHome, AppName, "installed.json")
}

// New returns a viper instance with defaults, env binding and the config search path.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyURL, sfd.DefaultURL)
	v.SetDefault(KeyLang, "es")
	v.SetDefault(KeyAttempts, availability.DefaultAttempts)
	v.SetDefault(KeyRetryDelay, availability.DefaultRetryDelay)
	v.SetDefault(KeyTimeout, downloader.DefaultTimeout)
	v.SetDefault(KeyStateFile, DefaultStateFile())
	v.SetDefault(KeyVerbose, false)

	v.SetConfigName("config")
	v.AddConfigPath(ConfigDir())

	v.SetEnvPrefix(AppName)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags lets explicitly set flags override every other source.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range []string{KeyURL, KeyLang, KeyAttempts, KeyRetryDelay, KeyTimeout, KeyStateFile, KeyVerbose} {
		f := flags.Lookup(key)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", key, err)
		}
	}
	return nil
}

// Load reads the optional config file and resolves the settings.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	c := &Config{
		URL:        v.GetString(KeyURL),
		Lang:       v.GetString(KeyLang),
		Attempts:   v.GetInt(KeyAttempts),
		RetryDelay: v.GetDuration(KeyRetryDelay),
		Timeout:    v.GetDuration(KeyTimeout),
		StateFile:  v.GetString(KeyStateFile),
		Verbose:    v.GetBool(KeyVerbose),
		ConfigFile: v.ConfigFileUsed(),
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// Validate checks the Config for usable values.
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("missing '%s'", KeyURL)
	}
	if c.Attempts < 1 {
		return fmt.Errorf("'%s' must be at least 1, got %d", KeyAttempts, c.Attempts)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("'%s' must not be negative", KeyRetryDelay)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("'%s' must be positive", KeyTimeout)
	}
	return nil
}
