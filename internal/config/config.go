// Package config resolves oc settings from the config file, then OC_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

const (
	KeyStoreDir      = "store.dir"
	KeyStoreBackend  = "store.backend"
	KeySessionWindow = "session.window"
	KeyRemoteBaseURL = "remote.base_url"
	KeySyncPushRate  = "sync.push_rate"
	KeyLogLevel      = "log.level"
	KeyLogFile       = "log.file"
)

const (
	BackendTOML   = "toml"
	BackendSQLite = "sqlite"
)

const (
	configDirName  = ".offline-cache"
	configFileName = "config"
	configFileType = "toml"

	defaultRemoteBaseURL = "http://127.0.0.1:8080/api"
	defaultPushRate      = 5.0
	defaultSessionWindow = 60 * 24 * time.Hour
)

type Config struct {
	StoreDir      string
	Backend       string
	SessionWindow time.Duration
	RemoteBaseURL string
	PushRate      float64
	LogLevel      string
	LogFile       string
}

type Options struct {
	// File overrides the config file search; a missing explicit file is an error.
	File string
	// HomeDir replaces the user home directory when searching for config.toml.
	HomeDir string
}

type envOverrides struct {
	StoreDir      string         `env:"OC_STORE_DIR"`
	Backend       string         `env:"OC_STORE_BACKEND"`
	SessionWindow *time.Duration `env:"OC_SESSION_WINDOW"`
	RemoteBaseURL string         `env:"OC_REMOTE_BASE_URL"`
	PushRate      *float64       `env:"OC_SYNC_PUSH_RATE"`
	LogLevel      string         `env:"OC_LOG_LEVEL"`
	LogFile       string         `env:"OC_LOG_FILE"`
}

// Load returns the merged viper instance handed to adapters and the typed view of it.
func Load(opts Options) (*viper.Viper, Config, error) {
	v := viper.New()
	v.SetDefault(KeyStoreBackend, BackendTOML)
	v.SetDefault(KeySessionWindow, defaultSessionWindow)
	v.SetDefault(KeyRemoteBaseURL, defaultRemoteBaseURL)
	v.SetDefault(KeySyncPushRate, defaultPushRate)
	v.SetDefault(KeyLogLevel, "warn")

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		homeDir := opts.HomeDir
		if homeDir == "" {
			resolved, err := os.UserHomeDir()
			if err != nil {
				return nil, Config{}, fmt.Errorf("resolve home directory: %w", err)
			}
			homeDir = resolved
		}
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(filepath.Join(homeDir, configDirName))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if err := applyEnv(v); err != nil {
		return nil, Config{}, err
	}

	cfg, err := fromViper(v)
	if err != nil {
		return nil, Config{}, err
	}

	return v, cfg, nil
}

func applyEnv(v *viper.Viper) error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	setString := func(key, value string) {
		if strings.TrimSpace(value) != "" {
			v.Set(key, value)
		}
	}
	setString(KeyStoreDir, overrides.StoreDir)
	setString(KeyStoreBackend, overrides.Backend)
	setString(KeyRemoteBaseURL, overrides.RemoteBaseURL)
	setString(KeyLogLevel, overrides.LogLevel)
	setString(KeyLogFile, overrides.LogFile)

	if overrides.SessionWindow != nil {
		v.Set(KeySessionWindow, *overrides.SessionWindow)
	}
	if overrides.PushRate != nil {
		v.Set(KeySyncPushRate, *overrides.PushRate)
	}

	return nil
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		StoreDir:      v.GetString(KeyStoreDir),
		Backend:       strings.ToLower(strings.TrimSpace(v.GetString(KeyStoreBackend))),
		SessionWindow: v.GetDuration(KeySessionWindow),
		RemoteBaseURL: strings.TrimRight(v.GetString(KeyRemoteBaseURL), "/"),
		PushRate:      v.GetFloat64(KeySyncPushRate),
		LogLevel:      v.GetString(KeyLogLevel),
		LogFile:       v.GetString(KeyLogFile),
	}

	switch cfg.Backend {
	case BackendTOML, BackendSQLite:
	default:
		return Config{}, fmt.Errorf("unsupported store backend %q", cfg.Backend)
	}

	if cfg.SessionWindow <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %s", KeySessionWindow, cfg.SessionWindow)
	}

	return cfg, nil
}
