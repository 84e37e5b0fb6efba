// Package config loads the application configuration from TOML files.
package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	LibrarySources []string `koanf:"library_sources"` // paths to scan for music
	Icons          string   `koanf:"icons"`           // "nerd", "unicode", or "none"

	Download DownloadConfig `koanf:"download"`
}

// DownloadConfig holds downloader settings.
type DownloadConfig struct {
	Dir    string `koanf:"dir"`    // where downloads land (default: first library source)
	Binary string `koanf:"binary"` // explicit yt-dlp path, overrides PATH lookup
}

// Load reads the configuration, merging files in priority order.
func Load() (*Config, error) {
	k := koanf.New(".")

	for _, path := range configPaths() {
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
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	for i, src := range c.LibrarySources {
		c.LibrarySources[i] = expandPath(src)
	}
	if c.Download.Dir != "" {
		c.Download.Dir = expandPath(c.Download.Dir)
	}
	if c.Download.Dir == "" && len(c.LibrarySources) > 0 {
		c.Download.Dir = c.LibrarySources[0]
	}
}

// configPaths lists candidate config files, lowest priority first.
func configPaths() []string {
	paths := []string{}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "ytune", "config.toml"))
	}
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
