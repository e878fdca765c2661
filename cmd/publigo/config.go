package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/publigo-project/publigo/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
)

// Config holds all configuration for the merge server.
type Config struct {
	Addr        string `yaml:"addr"`        // listen address, e.g. ":8000"
	PublicDir   string `yaml:"publicDir"`   // static UI directory ("" = disabled)
	SofficePath string `yaml:"sofficePath"` // LibreOffice binary ("" = auto-resolve)
	TimeoutSec  int    `yaml:"timeoutSec"`  // per-document conversion timeout
	MaxUploadMB int64  `yaml:"maxUploadMB"` // multipart form memory limit
	Slots       int    `yaml:"slots"`       // concurrent converter processes (0 = auto)
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Addr:        ":8000",
		PublicDir:   "public",
		TimeoutSec:  120,
		MaxUploadMB: 50,
	}
}

// LoadConfig reads a YAML config file. Unknown fields are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return cfg, nil
}

// applyEnv layers environment overrides on top of file/default values.
func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Addr = ":" + v
	}
	if v := os.Getenv("PUBLIGO_PUBLIC_DIR"); v != "" {
		c.PublicDir = v
	}
	if v := os.Getenv("PUBLIGO_TIMEOUT_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.TimeoutSec = n
		}
	}
	// SOFFICE_PATH is read by publigo.ResolveSofficePath; keeping the
	// file value empty defers to it.
}
