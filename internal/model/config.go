package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// APIConfig locates the REST backend.
type APIConfig struct {
	// BaseURL is the root of the backend API,
	// e.g. http://localhost:8080/api/project_a.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// TimeoutSec bounds every request; 0 falls back to 30.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// SocketConfig locates the STOMP notification endpoint.
type SocketConfig struct {
	// URL is the websocket endpoint, e.g. ws://localhost:8080/ws.
	URL string `mapstructure:"url" yaml:"url"`

	// Topic is the STOMP destination carrying status events.
	Topic string `mapstructure:"topic" yaml:"topic"`

	// ReconnectDelaySec is the fixed delay between reconnect attempts.
	ReconnectDelaySec int `mapstructure:"reconnect_delay_sec" yaml:"reconnect_delay_sec"`

	// HeartbeatSec is the interval for heartbeats in both directions.
	HeartbeatSec int `mapstructure:"heartbeat_sec" yaml:"heartbeat_sec"`
}

// NotificationConfig tunes the local notification store.
type NotificationConfig struct {
	// Max caps the persisted list; the oldest entries beyond it are evicted.
	Max int `mapstructure:"max" yaml:"max"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	API           APIConfig          `mapstructure:"api" yaml:"api"`
	Socket        SocketConfig       `mapstructure:"socket" yaml:"socket"`
	Notifications NotificationConfig `mapstructure:"notifications" yaml:"notifications"`
	Display       DisplayConfig      `mapstructure:"display" yaml:"display"`
	Log           LogConfig          `mapstructure:"log" yaml:"log"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/turnos-admin/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "turnos-admin", "config.yaml")
}

func defaultAppConfig() *AppConfig {
	return &AppConfig{
		API: APIConfig{
			BaseURL:    "http://localhost:8080/api/project_a",
			TimeoutSec: 30,
		},
		Socket: SocketConfig{
			URL:               "ws://localhost:8080/ws",
			Topic:             "/topic/status-agentes",
			ReconnectDelaySec: 5,
			HeartbeatSec:      4,
		},
		Notifications: NotificationConfig{Max: 50},
		Display:       DisplayConfig{Theme: "default"},
		Log:           LogConfig{Level: "info"},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("api.base_url", "http://localhost:8080/api/project_a")
	v.SetDefault("api.timeout_sec", 30)
	v.SetDefault("socket.url", "ws://localhost:8080/ws")
	v.SetDefault("socket.topic", "/topic/status-agentes")
	v.SetDefault("socket.reconnect_delay_sec", 5)
	v.SetDefault("socket.heartbeat_sec", 4)
	v.SetDefault("notifications.max", 50)
	v.SetDefault("display.theme", "default")
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("api", cfg.API)
	v.Set("socket", cfg.Socket)
	v.Set("notifications", cfg.Notifications)
	v.Set("display", cfg.Display)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
