package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the daemon configuration file
// (~/.config/elfinspect/config.yaml). Numeric fields are pointers so "not
// set" is distinct from zero.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	MaxPayloadBytes *int `yaml:"max_payload_bytes"`
	Backlog         *int `yaml:"backlog"`

	StatusAddress string `yaml:"status_address"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "elfinspect", "config.yaml")
}

// LoadConfig reads the config file at path, or the default location when
// path is empty. A missing default file yields a zero Config; a missing
// explicit file is an error.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = configPath()
		if path == "" {
			return Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// applyConfig copies config file values into opts for every flag that was
// not set on the command line.
func applyConfig(c *cli.Command, cfg Config, opts *options) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		opts.logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		opts.logFormat = cfg.LogFormat
	}
	if cfg.MaxPayloadBytes != nil && !c.IsSet("max-payload") {
		opts.maxPayload = *cfg.MaxPayloadBytes
	}
	if cfg.Backlog != nil && !c.IsSet("backlog") {
		opts.backlog = *cfg.Backlog
	}
	if cfg.StatusAddress != "" && !c.IsSet("status-addr") {
		opts.statusAddr = cfg.StatusAddress
	}
}
