package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	libconfig "airwatch/backend/libs/config"
)

const (
	defaultHost          = "127.0.0.1"
	defaultPort          = "8080"
	defaultRefreshMillis = 5000
	defaultPingSeconds   = 30
	defaultWriteSeconds  = 10
	defaultSendBuffer    = 16
	defaultMirrorChannel = "airwatch:readings"
)

// Config represents dashboard service configuration loaded from YAML/env.
type Config struct {
	HTTP struct {
		Host string `yaml:"host" env:"DASHBOARD_HTTP_HOST"`
		Port string `yaml:"port" env:"DASHBOARD_HTTP_PORT"`
	} `yaml:"http"`
	Debug bool `yaml:"debug" env:"DASHBOARD_DEBUG"`
	Refresh struct {
		IntervalMs int `yaml:"intervalMs" env:"DASHBOARD_REFRESH_MS"`
	} `yaml:"refresh"`
	WebSocket struct {
		PingIntervalSeconds int `yaml:"pingIntervalSeconds" env:"DASHBOARD_WS_PING_INTERVAL"`
		WriteTimeoutSeconds int `yaml:"writeTimeoutSeconds" env:"DASHBOARD_WS_WRITE_TIMEOUT"`
		SendBuffer          int `yaml:"sendBuffer" env:"DASHBOARD_WS_SEND_BUFFER"`
	} `yaml:"websocket"`
	Redis struct {
		Addr     string `yaml:"addr" env:"DASHBOARD_REDIS_ADDR"`
		Password string `yaml:"password" env:"DASHBOARD_REDIS_PASSWORD"`
		Channel  string `yaml:"channel" env:"DASHBOARD_REDIS_CHANNEL"`
	} `yaml:"redis"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	cfg := &Config{}
	cfg.HTTP.Host = defaultHost
	cfg.HTTP.Port = defaultPort
	cfg.Refresh.IntervalMs = defaultRefreshMillis
	cfg.WebSocket.PingIntervalSeconds = defaultPingSeconds
	cfg.WebSocket.WriteTimeoutSeconds = defaultWriteSeconds
	cfg.WebSocket.SendBuffer = defaultSendBuffer
	cfg.Redis.Channel = defaultMirrorChannel
	return cfg
}

// Load reads configuration using the shared config loader.
func Load() (*Config, error) {
	cfg := Default()
	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.HTTP.Host = strings.TrimSpace(c.HTTP.Host)
	c.HTTP.Port = strings.TrimPrefix(strings.TrimSpace(c.HTTP.Port), ":")
	if c.HTTP.Port == "" {
		c.HTTP.Port = defaultPort
	}
	port, err := strconv.Atoi(c.HTTP.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("config: invalid http port %q", c.HTTP.Port)
	}
	if c.Refresh.IntervalMs <= 0 {
		c.Refresh.IntervalMs = defaultRefreshMillis
	}
	if strings.TrimSpace(c.Redis.Channel) == "" {
		c.Redis.Channel = defaultMirrorChannel
	}
	return nil
}

// HTTPAddress returns host:port. An empty host listens on all interfaces.
func (c *Config) HTTPAddress() string {
	return net.JoinHostPort(c.HTTP.Host, c.HTTP.Port)
}

// RefreshInterval is the dashboard tick period.
func (c *Config) RefreshInterval() time.Duration {
	if c.Refresh.IntervalMs <= 0 {
		return defaultRefreshMillis * time.Millisecond
	}
	return time.Duration(c.Refresh.IntervalMs) * time.Millisecond
}

// PingInterval returns websocket ping interval.
func (c *Config) PingInterval() time.Duration {
	if c.WebSocket.PingIntervalSeconds <= 0 {
		return defaultPingSeconds * time.Second
	}
	return time.Duration(c.WebSocket.PingIntervalSeconds) * time.Second
}

// WriteTimeout returns websocket write timeout.
func (c *Config) WriteTimeout() time.Duration {
	if c.WebSocket.WriteTimeoutSeconds <= 0 {
		return defaultWriteSeconds * time.Second
	}
	return time.Duration(c.WebSocket.WriteTimeoutSeconds) * time.Second
}

// MirrorEnabled reports whether snapshots are republished to redis.
func (c *Config) MirrorEnabled() bool {
	return strings.TrimSpace(c.Redis.Addr) != ""
}
