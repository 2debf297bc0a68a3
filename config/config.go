package config

import (
	"errors"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug              = "debug"
	ConfigDataPath           = "data-path"
	ConfigDictionaryURL      = "dictionary-url"
	ConfigDictionaryPath     = "dictionary-path"
	ConfigDictionaryAttempts = "dictionary-attempts"
	ConfigCachePath          = "cache-path"
	ConfigLetterDistribution = "letter-distribution"
	ConfigStartTime          = "start-time"
	ConfigTickInterval       = "tick-interval"
	ConfigRowInterval        = "row-interval"
	ConfigNatsURL            = "nats-url"
	ConfigNatsSubject        = "nats-subject"
	ConfigCPUProfile         = "cpu-profile"
)

// Config wraps a viper instance. Values come from (in increasing priority)
// defaults, an optional lexistack.yaml in the data path, LEXISTACK_ env vars,
// and command-line flags.
type Config struct {
	*viper.Viper
}

// DefaultConfig returns a config loaded with no arguments. Mostly useful
// for tests.
func DefaultConfig() *Config {
	c := &Config{}
	if err := c.Load(nil); err != nil {
		panic(err)
	}
	return c
}

func (c *Config) Load(args []string) error {
	c.Viper = viper.New()

	fs := pflag.NewFlagSet("lexistack", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigDataPath, "./data", "directory holding letter distributions, config and caches")
	fs.String(ConfigDictionaryURL, "http://localhost:3000/words.txt", "URL of the newline-delimited word list")
	fs.String(ConfigDictionaryPath, "", "local word list file; takes precedence over the URL when set")
	fs.Uint(ConfigDictionaryAttempts, 3, "number of attempts when fetching the word list")
	fs.String(ConfigCachePath, "./data/cache.db", "SQLite file for the durable response cache; empty keeps it in memory")
	fs.String(ConfigLetterDistribution, "english", "the letter distribution to draw tiles from")
	fs.Float64(ConfigStartTime, 60, "seconds on the clock at the start of a game")
	fs.Duration(ConfigTickInterval, 100*time.Millisecond, "how often the timer is advanced")
	fs.Duration(ConfigRowInterval, 10*time.Second, "how often a new row is pushed onto the tower")
	fs.String(ConfigNatsURL, "", "NATS server to publish game events to; empty disables publishing")
	fs.String(ConfigNatsSubject, "lexistack.events", "subject prefix for published game events")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetEnvPrefix("LEXISTACK")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	c.SetConfigName("lexistack")
	c.SetConfigType("yaml")
	c.AddConfigPath(c.GetString(ConfigDataPath))
	if err := c.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}

// AdjustRelativePaths resolves relative filesystem settings against
// basePath, usually the directory of the executable.
func (c *Config) AdjustRelativePaths(basePath string) {
	for _, key := range []string{ConfigDataPath, ConfigDictionaryPath, ConfigCachePath} {
		p := c.GetString(key)
		if p == "" || filepath.IsAbs(p) {
			continue
		}
		c.Set(key, filepath.Join(basePath, p))
	}
}

// SanitizedSettings returns all settings with any credentials in URLs
// masked, so that they can be logged.
func (c *Config) SanitizedSettings() map[string]any {
	settings := c.AllSettings()
	for _, key := range []string{ConfigNatsURL, ConfigDictionaryURL} {
		raw, ok := settings[key].(string)
		if !ok || raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.User == nil {
			continue
		}
		u.User = url.UserPassword("xxxxx", "xxxxx")
		settings[key] = u.String()
	}
	return settings
}
