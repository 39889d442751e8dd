package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "platter"

const (
	defaultPollIntervalMs = 100
	defaultStopTimeoutMs  = 2000
)

type Config struct {
	MusicDir       string `koanf:"music_dir"`        // directory holding trackNN audio files
	LogFile        string `koanf:"log_file"`         // append-only event log
	PollIntervalMs int    `koanf:"poll_interval_ms"` // output completion poll interval
	StopTimeoutMs  int    `koanf:"stop_timeout_ms"`  // bounded wait for the playback task on stop
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom loads configuration from the given files in order (last wins).
// Missing files are skipped; defaults apply for anything left unset.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
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

	if cfg.MusicDir != "" {
		cfg.MusicDir = expandPath(cfg.MusicDir)
	} else {
		cfg.MusicDir = defaultMusicDir()
	}
	if cfg.LogFile != "" {
		cfg.LogFile = expandPath(cfg.LogFile)
	} else if p, err := xdg.DataFile(filepath.Join(appName, "events.log")); err == nil {
		cfg.LogFile = p
	} else {
		cfg.LogFile = filepath.Join(os.TempDir(), appName+"-events.log")
	}

	if cfg.PollIntervalMs <= 0 {
		cfg.PollIntervalMs = defaultPollIntervalMs
	}
	if cfg.StopTimeoutMs <= 0 {
		cfg.StopTimeoutMs = defaultStopTimeoutMs
	}

	return cfg, nil
}

// PollInterval returns the completion poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// StopTimeout returns the bounded stop wait as a duration.
func (c *Config) StopTimeout() time.Duration {
	return time.Duration(c.StopTimeoutMs) * time.Millisecond
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/platter/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func defaultMusicDir() string {
	if xdg.UserDirs.Music != "" {
		return xdg.UserDirs.Music
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "music")
	}
	return "music"
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
