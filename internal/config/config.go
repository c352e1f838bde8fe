package config

import (
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// Config holds everything gostore needs beyond the database path itself:
// where to put logs, how much of the table to keep resident, and whether
// a local access passphrase is required.
type Config struct {
	Home   string `yaml:"home"`
	LogDir string `yaml:"log_dir"`

	// CacheSize caps how many pages the pager keeps resident at once. It
	// is floored and capped against storage.MaxNumLoadedPages /
	// storage.TableMaxPages by the caller, since this package does not
	// import storage.
	CacheSize int `yaml:"cache_size"`

	LogMaxSizeMB  int `yaml:"log_max_size_mb"`
	LogMaxBackups int `yaml:"log_max_backups"`

	RequirePassphrase bool `yaml:"require_passphrase"`
}

func LoadConfig(homeOverride, configOverride string) (*Config, error) {
	home := homeOverride
	if home == "" {
		home = os.Getenv("GOSTORE_HOME")
	}

	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		home = filepath.Join(userHome, ".local", "share", "gostore")
	}

	if err := os.MkdirAll(home, 0o755); err != nil {
		return nil, err
	}

	cfg := &Config{
		Home:              home,
		LogDir:            filepath.Join(home, "log"),
		CacheSize:         10,
		LogMaxSizeMB:      10,
		LogMaxBackups:     3,
		RequirePassphrase: false,
	}

	cfgPath := configOverride
	if cfgPath == "" {
		cfgPath = filepath.Join(home, "config.yaml")
	}

	if f, err := os.Open(cfgPath); err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, err
	}

	return cfg, nil
}
