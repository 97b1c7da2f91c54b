package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the process settings.
type Config struct {
	Addr           string `json:"addr" yaml:"addr"`
	DefaultMode    string `json:"default_mode" yaml:"default_mode"`
	AIDelayMs      int    `json:"ai_delay_ms" yaml:"ai_delay_ms"`
	HeartbeatSec   int    `json:"heartbeat_sec" yaml:"heartbeat_sec"`
	LogSearchStats bool   `json:"log_search_stats" yaml:"log_search_stats"`
	Layout         Layout `json:"layout" yaml:"layout"`
}

// Layout sizes the drawn board in pixels.
type Layout struct {
	Cell    float64 `json:"cell" yaml:"cell"`
	OffsetX float64 `json:"offset_x" yaml:"offset_x"`
	OffsetY float64 `json:"offset_y" yaml:"offset_y"`
}

var (
	ErrInvalid = errors.New("invalid config")
)

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Addr:         ":8080",
		DefaultMode:  "ai-medium",
		AIDelayMs:    500,
		HeartbeatSec: 15,
		Layout:       Layout{Cell: 60, OffsetX: 60, OffsetY: 60},
	}
}

// AIDelay is the pause before the AI answers a move.
func (c Config) AIDelay() time.Duration { return time.Duration(c.AIDelayMs) * time.Millisecond }

// Heartbeat is the idle interval between keep-alive pings on push streams.
func (c Config) Heartbeat() time.Duration { return time.Duration(c.HeartbeatSec) * time.Second }

// Load reads path over the defaults and then applies environment overrides.
// An empty path skips the file. Files ending in .json are parsed as JSON,
// anything else as YAML.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if strings.EqualFold(filepath.Ext(path), ".json") {
			err = json.Unmarshal(data, &cfg)
		} else {
			err = yaml.Unmarshal(data, &cfg)
		}
		if err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("BRIDGIT_ADDR"); ok && v != "" {
		c.Addr = v
	}
	if v, ok := lookup("BRIDGIT_DEFAULT_MODE"); ok && v != "" {
		c.DefaultMode = v
	}
	if v, ok := lookup("BRIDGIT_AI_DELAY_MS"); ok && v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: BRIDGIT_AI_DELAY_MS=%q", ErrInvalid, v)
		}
		c.AIDelayMs = ms
	}
	if v, ok := lookup("BRIDGIT_LOG_SEARCH_STATS"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: BRIDGIT_LOG_SEARCH_STATS=%q", ErrInvalid, v)
		}
		c.LogSearchStats = b
	}
	return nil
}

// Validate checks ranges. Mode names are checked by the app layer.
func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: empty addr", ErrInvalid)
	case c.AIDelayMs < 0:
		return fmt.Errorf("%w: negative ai_delay_ms", ErrInvalid)
	case c.HeartbeatSec <= 0:
		return fmt.Errorf("%w: heartbeat_sec must be positive", ErrInvalid)
	case c.Layout.Cell <= 0:
		return fmt.Errorf("%w: layout cell must be positive", ErrInvalid)
	}
	return nil
}
