package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	defaultListen      = "127.0.0.1:5720"
	defaultIdleTimeout = 300
)

type Config struct {
	Server ServerConfig `koanf:"server"`
	Client ClientConfig `koanf:"client"`
}

// ServerConfig configures the encored daemon.
type ServerConfig struct {
	Listen      string `koanf:"listen"`       // TCP listen address
	IdleTimeout int    `koanf:"idle_timeout"` // seconds before session identity expires
	DBPath      string `koanf:"db_path"`      // empty means XDG data dir
	Audio       bool   `koanf:"audio"`        // drive the system audio device (off = silent mock)
}

// ClientConfig configures the encore remote.
type ClientConfig struct {
	Addr          string `koanf:"addr"`
	Notifications *bool  `koanf:"notifications"` // desktop notification on track change (default: true)
	Mpris         *bool  `koanf:"mpris"`         // expose MPRIS controls (default: true)
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Listen == "" {
		cfg.Server.Listen = defaultListen
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = defaultIdleTimeout
	}
	if cfg.Server.DBPath != "" {
		cfg.Server.DBPath = expandPath(cfg.Server.DBPath)
	}
	if cfg.Client.Addr == "" {
		cfg.Client.Addr = defaultListen
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/encore/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "encore", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Notifications returns the client notification setting with its default.
func (c *ClientConfig) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}

// MprisEnabled returns the client MPRIS setting with its default.
func (c *ClientConfig) MprisEnabled() bool {
	return c.Mpris == nil || *c.Mpris
}
