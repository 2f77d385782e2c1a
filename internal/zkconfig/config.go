// Package zkconfig resolves runtime configuration for the privacyzk
// CLIs: environment defaults overridden by explicit flags, the way the
// teacher's profile/transport config layers compose (client/core/config).
package zkconfig

import (
	"os"
	"strconv"
	"time"
)

// Defaults per spec §6 "Environment".
const (
	DefaultAssetsDir = "privacy_circuits/params/"
	DefaultLogLevel  = "info"
	DefaultTimeout   = 120 * time.Second
)

// Config is the resolved set of values every privacyzk CLI needs.
type Config struct {
	AssetsDir string
	LogLevel  string
	Timeout   time.Duration
}

// FromEnv reads ASSETS_DIR, LOG_LEVEL, ZK_TIMEOUT, falling back to the
// package defaults. Flags parsed by cobra are applied on top of this in
// each command's RunE (via ApplyAssetsDir/ApplyTimeoutSeconds), so flags
// always win over env, and env always wins over the built-in default.
func FromEnv() Config {
	cfg := Config{
		AssetsDir: DefaultAssetsDir,
		LogLevel:  DefaultLogLevel,
		Timeout:   DefaultTimeout,
	}
	if v := os.Getenv("ASSETS_DIR"); v != "" {
		cfg.AssetsDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("ZK_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.Timeout = time.Duration(secs) * time.Second
		}
	}
	return cfg
}

// ApplyAssetsDir overrides AssetsDir only when the flag was explicitly set;
// callers pass the flag's changed-state from cobra (cmd.Flags().Changed).
func (c *Config) ApplyAssetsDir(value string, changed bool) {
	if changed {
		c.AssetsDir = value
	}
}

func (c *Config) ApplyTimeoutSeconds(value int, changed bool) {
	if changed && value > 0 {
		c.Timeout = time.Duration(value) * time.Second
	}
}
