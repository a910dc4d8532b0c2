package config

import (
	"fmt"
	"strings"
	"time"
)

type storageMode string

const (
	// ModeLocal keeps users and jobs in a local SQLite key/value file.
	ModeLocal storageMode = "local"
	// ModeMemory is ModeLocal without durability.
	ModeMemory storageMode = "memory"
	// ModeRemote talks to the REST API.
	ModeRemote storageMode = "remote"
)

type StorageConfig struct {
	Mode storageMode `mapstructure:"mode"`
	Path string      `mapstructure:"path"`
}

func (config StorageConfig) validate() error {
	switch config.Mode {
	case ModeLocal:
		if config.Path == "" {
			return fmt.Errorf("missing variable: path (required for local mode)")
		}
	case ModeMemory, ModeRemote:
	default:
		return fmt.Errorf("unknown storage mode %q, expected one of: %s", config.Mode,
			strings.Join([]string{string(ModeLocal), string(ModeMemory), string(ModeRemote)}, ", "))
	}
	return nil
}

func (config StorageConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"storage.mode": "STORAGE_MODE",
		"storage.path": "STORAGE_PATH",
	})
}

type APIConfig struct {
	BaseURL              string        `mapstructure:"base_url"`
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second"`
	Timeout              time.Duration `mapstructure:"timeout"`
}

func (config APIConfig) validate() error {
	if config.BaseURL == "" {
		return fmt.Errorf("missing variable: base_url")
	}
	if config.MaxRequestsPerSecond < 0 {
		return fmt.Errorf("max_requests_per_second must be non-negative")
	}
	return nil
}

func (config APIConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"api.base_url":                "API_BASE_URL",
		"api.max_requests_per_second": "API_MAX_REQUESTS_PER_SECOND",
		"api.timeout":                 "API_TIMEOUT",
	})
}

type ServerConfig struct {
	Address        string `mapstructure:"address"`
	DBPath         string `mapstructure:"db_path"`
	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
}

func (config ServerConfig) validate() error {
	if config.Address == "" {
		return fmt.Errorf("missing variable: address")
	}
	if config.DBPath == "" {
		return fmt.Errorf("missing variable: db_path")
	}
	return nil
}

func (config ServerConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"server.address":         "SERVER_ADDRESS",
		"server.db_path":         "SERVER_DB_PATH",
		"server.metrics_enabled": "SERVER_METRICS_ENABLED",
	})
}
