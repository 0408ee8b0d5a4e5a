package config

import (
	"os"
	"path/filepath"
)

// DefaultPath returns $XDG_CONFIG_HOME/tilecard/config.toml, falling back
// to ~/.config.
func DefaultPath(getenv func(string) string) (string, error) {
	dir, err := xdgDir(getenv, "XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CacheDir returns the configured cache directory, or
// $XDG_CACHE_HOME/tilecard (~/.cache/tilecard).
func (c Config) CacheDir(getenv func(string) string) (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return xdgDir(getenv, "XDG_CACHE_HOME", ".cache")
}

// LogFile returns the configured log file, or
// $XDG_STATE_HOME/tilecard/tilecard.log (~/.local/state/tilecard).
func (c Config) LogFile(getenv func(string) string) (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := xdgDir(getenv, "XDG_STATE_HOME", filepath.Join(".local", "state"))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName+".log"), nil
}

func xdgDir(getenv func(string) string, env, fallback string) (string, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if base := getenv(env); base != "" {
		return filepath.Join(base, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, AppName), nil
}
