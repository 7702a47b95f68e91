package cli

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/explaintext/pkg/errors"
	"github.com/matzehuels/explaintext/pkg/format/text"
)

// defaultAddr is the listen address of `serve` when none is configured.
const defaultAddr = ":8080"

// Config is the user configuration read from config.toml.
//
//	show = ["method", "targets"]
//	glyphs = "ascii"
//
//	[cache]
//	ttl = "72h"
//	redis_url = "redis://localhost:6379/0"
//	prefix = "explaintext:"
//
//	[server]
//	addr = ":8080"
//
// Command-line flags override every value.
type Config struct {
	Show   []string     `toml:"show"`
	Glyphs string       `toml:"glyphs"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`

	// Unknown lists keys present in the file that no field consumed.
	Unknown []string `toml:"-"`
}

// CacheConfig configures where rendered text is cached.
type CacheConfig struct {
	Disabled bool     `toml:"disabled"`
	TTL      duration `toml:"ttl"`
	RedisURL string   `toml:"redis_url"`
	Prefix   string   `toml:"prefix"`
}

// ServerConfig configures `serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// duration decodes TOML strings such as "36h" into a time.Duration.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// loadConfig reads the config file at path.
//
// A missing file yields the zero Config unless explicit is set, in which
// case the user named the file with --config and expects it to exist.
func loadConfig(path string, explicit bool) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	for _, k := range md.Undecoded() {
		cfg.Unknown = append(cfg.Unknown, k.String())
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := text.ParseGlyphs(c.Glyphs); err != nil {
		return err
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}
	return nil
}

// addr returns the configured listen address or the default.
func (c *Config) addr() string {
	if c.Server.Addr != "" {
		return c.Server.Addr
	}
	return defaultAddr
}

// configPath returns the config file location using the XDG standard
// (~/.config/explaintext/config.toml).
func configPath() (string, error) {
	return xdgPath("XDG_CONFIG_HOME", ".config", appName, "config.toml")
}
