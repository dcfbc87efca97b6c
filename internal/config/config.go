// Package config loads and exposes the application configuration.
// Configuration lives in TOML files, looked up across several candidate
// paths so the server can be started from the repo root or from cmd/.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// MainConfig holds the basic application settings.
type MainConfig struct {
	AppName string `toml:"appName"` // application name, used for log tagging
	Host    string `toml:"host"`    // listen address, e.g. "0.0.0.0"
	Port    int    `toml:"port"`    // listen port, e.g. 8000
	Mode    string `toml:"mode"`    // "dev" or "release"
}

// RoomConfig holds the chat room settings.
type RoomConfig struct {
	Name            string `toml:"name"`            // display name of the room
	HistoryPageSize int    `toml:"historyPageSize"` // window size for older-history requests
	WelcomeMessage  string `toml:"welcomeMessage"`  // sent to a client right after the websocket upgrade
}

// WebsocketConfig holds the websocket transport settings.
type WebsocketConfig struct {
	ReadBufferSize  int      `toml:"readBufferSize"`  // upgrader read buffer in bytes
	WriteBufferSize int      `toml:"writeBufferSize"` // upgrader write buffer in bytes
	AllowedOrigins  []string `toml:"allowedOrigins"`  // origins accepted at upgrade time, "*" allows all
}

// LogConfig holds the logging settings, rotation is handled by lumberjack.
type LogConfig struct {
	LogPath    string `toml:"logPath"`    // directory for log files
	FileName   string `toml:"fileName"`   // log file name
	MaxSize    int    `toml:"maxSize"`    // max size of a single log file (MB)
	MaxBackups int    `toml:"maxBackups"` // max number of rotated files kept
	MaxAge     int    `toml:"maxAge"`     // max age of rotated files (days)
	Level      string `toml:"level"`      // debug, info, warn, error
}

// SnowflakeConfig holds the id generator settings.
type SnowflakeConfig struct {
	MachineID int64 `toml:"machineId"` // node id, 0-1023, must be unique per deployed instance
}

// TLSConfig holds the optional HTTPS redirect settings.
type TLSConfig struct {
	Enabled bool   `toml:"enabled"` // redirect plain HTTP to HTTPS when true
	SSLHost string `toml:"sslHost"` // host:port clients are redirected to
}

// Config aggregates all configuration sections.
type Config struct {
	MainConfig      `toml:"mainConfig"`
	RoomConfig      `toml:"roomConfig"`
	WebsocketConfig `toml:"websocketConfig"`
	LogConfig       `toml:"logConfig"`
	SnowflakeConfig `toml:"snowflakeConfig"`
	TLSConfig       `toml:"tlsConfig"`
}

// config is the lazily loaded singleton.
var config *Config

// defaults fills zero values so the server can run without a config file.
func (c *Config) defaults() {
	if c.AppName == "" {
		c.AppName = "global_chat_server"
	}
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 5000
	}
	if c.Mode == "" {
		c.Mode = "dev"
	}
	if c.RoomConfig.Name == "" {
		c.RoomConfig.Name = "global"
	}
	if c.HistoryPageSize <= 0 {
		c.HistoryPageSize = 20
	}
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = 2048
	}
	if c.WriteBufferSize == 0 {
		c.WriteBufferSize = 2048
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.LogPath == "" {
		c.LogPath = "logs"
	}
}

// LoadConfig tries the candidate paths in order and loads the first file
// that parses. Returns an error when none of them is usable.
func LoadConfig() error {
	paths := []string{
		"configs/config_local.toml",
		"configs/config.toml",
		"../../configs/config_local.toml",
		"../../configs/config.toml",
	}

	for _, path := range paths {
		if _, err := toml.DecodeFile(path, config); err == nil {
			config.defaults()
			return nil
		}
	}

	return fmt.Errorf("could not find configuration file in any of the search paths")
}

// GetConfig returns the global configuration, loading it on first use.
// When no file is found the defaults are used.
func GetConfig() *Config {
	if config == nil {
		config = new(Config)
		_ = LoadConfig()
		config.defaults()
	}
	return config
}
