// Package config loads tilecard settings.
//
// Settings are resolved in layers, each overriding the previous:
//
//  1. built-in defaults ([Default])
//  2. a config file, TOML or YAML by extension
//  3. a .env file in the working directory
//  4. TILECARD_* environment variables
//  5. command-line flags, applied by the caller
//
// A missing file at the default location is not an error; a missing file
// that was asked for explicitly is.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/tilecard/pkg/errors"
)

// AppName names the per-user config, cache and state directories.
const AppName = "tilecard"

// Config is the full set of tilecard settings.
type Config struct {
	Locale        string   `toml:"locale" yaml:"locale"`                 // BCP 47 tag for digit grouping
	DefaultPreset string   `toml:"default_preset" yaml:"default_preset"` // Preset loaded at startup
	Placeholder   string   `toml:"placeholder" yaml:"placeholder"`       // Caption while a preset loads
	Provider      Provider `toml:"provider" yaml:"provider"`
	Cache         Cache    `toml:"cache" yaml:"cache"`
	Log           Log      `toml:"log" yaml:"log"`
	Server        Server   `toml:"server" yaml:"server"`
}

// Provider configures the puzzle metadata client.
type Provider struct {
	BaseURL string        `toml:"base_url" yaml:"base_url"`
	Timeout time.Duration `toml:"timeout" yaml:"timeout"`
}

// Cache configures provider response caching.
type Cache struct {
	Backend   string        `toml:"backend" yaml:"backend"` // file, redis or none
	TTL       time.Duration `toml:"ttl" yaml:"ttl"`
	Dir       string        `toml:"dir" yaml:"dir"`
	RedisAddr string        `toml:"redis_addr" yaml:"redis_addr"`
	RedisDB   int           `toml:"redis_db" yaml:"redis_db"`
}

// Log configures logging.
type Log struct {
	File  string `toml:"file" yaml:"file"` // Log file used while the editor owns the terminal
	Level string `toml:"level" yaml:"level"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// Default returns the built-in settings. Directory fields are left empty
// and resolved by [Config.CacheDir] and [Config.LogFile].
func Default() Config {
	return Config{
		Locale:        "en",
		DefaultPreset: "wordle",
		Placeholder:   "Loading...",
		Provider: Provider{
			BaseURL: "https://www.nytimes.com/games-assets/strands",
			Timeout: 10 * time.Second,
		},
		Cache: Cache{
			Backend:   "file",
			TTL:       24 * time.Hour,
			RedisAddr: "localhost:6379",
		},
		Log:    Log{Level: "info"},
		Server: Server{Addr: ":8080"},
	}
}

// Options controls where Load looks.
type Options struct {
	Path    string              // Config file; empty means the default location
	EnvFile string              // .env file; empty means ".env"
	Getenv  func(string) string // Environment lookup; nil means os.Getenv
}

// Load resolves settings from defaults, file, .env and environment.
func Load(opts Options) (Config, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := Default()
	path, explicit := opts.Path, opts.Path != ""
	if !explicit {
		p, err := DefaultPath(getenv)
		if err == nil {
			path = p
		}
	}
	if path != "" {
		err := decodeFile(path, &cfg)
		switch {
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		case err != nil:
			return cfg, err
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("read %s: %w", envFile, err)
	}
	lookup := func(k string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return dotenv[k]
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func decodeFile(path string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return err
			}
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	default:
		return errs.New(errs.ErrCodeUnsupported, "config file %s: want .toml, .yaml or .yml", path)
	}
}

// Environment variable names.
const (
	EnvLocale          = "TILECARD_LOCALE"
	EnvPreset          = "TILECARD_PRESET"
	EnvPlaceholder     = "TILECARD_PLACEHOLDER"
	EnvProviderURL     = "TILECARD_PROVIDER_URL"
	EnvProviderTimeout = "TILECARD_PROVIDER_TIMEOUT"
	EnvCacheBackend    = "TILECARD_CACHE_BACKEND"
	EnvCacheTTL        = "TILECARD_CACHE_TTL"
	EnvCacheDir        = "TILECARD_CACHE_DIR"
	EnvRedisAddr       = "TILECARD_REDIS_ADDR"
	EnvRedisDB         = "TILECARD_REDIS_DB"
	EnvLogFile         = "TILECARD_LOG_FILE"
	EnvLogLevel        = "TILECARD_LOG_LEVEL"
	EnvServerAddr      = "TILECARD_ADDR"
)

func applyEnv(cfg *Config, lookup func(string) string) error {
	strs := map[string]*string{
		EnvLocale:       &cfg.Locale,
		EnvPreset:       &cfg.DefaultPreset,
		EnvPlaceholder:  &cfg.Placeholder,
		EnvProviderURL:  &cfg.Provider.BaseURL,
		EnvCacheBackend: &cfg.Cache.Backend,
		EnvCacheDir:     &cfg.Cache.Dir,
		EnvRedisAddr:    &cfg.Cache.RedisAddr,
		EnvLogFile:      &cfg.Log.File,
		EnvLogLevel:     &cfg.Log.Level,
		EnvServerAddr:   &cfg.Server.Addr,
	}
	for k, dst := range strs {
		if v := strings.TrimSpace(lookup(k)); v != "" {
			*dst = v
		}
	}

	durs := map[string]*time.Duration{
		EnvProviderTimeout: &cfg.Provider.Timeout,
		EnvCacheTTL:        &cfg.Cache.TTL,
	}
	for k, dst := range durs {
		v := strings.TrimSpace(lookup(k))
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidInput, err, "%s=%q", k, v)
		}
		*dst = d
	}

	if v := strings.TrimSpace(lookup(EnvRedisDB)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidInput, err, "%s=%q", EnvRedisDB, v)
		}
		cfg.Cache.RedisDB = n
	}
	return nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if _, err := language.Parse(c.Locale); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "locale %q", c.Locale)
	}
	if err := errs.ValidateName(c.DefaultPreset); err != nil {
		return fmt.Errorf("default_preset: %w", err)
	}
	if err := errs.ValidateCaption(c.Placeholder); err != nil {
		return fmt.Errorf("placeholder: %w", err)
	}
	if err := errs.ValidateURL(c.Provider.BaseURL); err != nil {
		return fmt.Errorf("provider.base_url: %w", err)
	}
	if c.Provider.Timeout <= 0 {
		return errs.New(errs.ErrCodeInvalidInput, "provider.timeout must be positive, got %s", c.Provider.Timeout)
	}
	switch c.Cache.Backend {
	case "file", "redis", "none":
	default:
		return errs.New(errs.ErrCodeInvalidInput, "cache.backend %q: want file, redis or none", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "log.level %q", c.Log.Level)
	}
	return nil
}

// LanguageTag returns the parsed locale, falling back to English.
func (c Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// LogLevel returns the parsed log level, falling back to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
