// Package config loads the adapter configuration from a TOML file.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ihiteshsharma/mcp-servers/internal/paths"
)

var envVarRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Config is the top-level adapter configuration.
type Config struct {
	Host        HostConfig `toml:"host"`
	CallTimeout string     `toml:"call_timeout"`
	LogLevel    string     `toml:"log_level"`
}

// HostConfig describes how to start the design automation host that
// executes commands on the other end of the channel.
type HostConfig struct {
	Command string            `toml:"command"`
	Args    []string          `toml:"args"`
	Env     map[string]string `toml:"env"`
}

// Load reads the config file and returns the parsed Config.
// If the config file does not exist, it returns defaults (no error).
func Load() (*Config, error) {
	return LoadFrom(paths.ConfigFile())
}

// LoadFrom reads and parses a config file at the given path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	expandConfigEnvVars(&cfg)
	return &cfg, nil
}

// ParseCallTimeout returns the configured per-call timeout. A zero
// duration means calls wait indefinitely for the host to reply.
func (c *Config) ParseCallTimeout() (time.Duration, error) {
	if c.CallTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.CallTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid call_timeout %q: %w", c.CallTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid call_timeout %q: must not be negative", c.CallTimeout)
	}
	return d, nil
}

func expandConfigEnvVars(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.Host.Command = expandEnvVars(cfg.Host.Command)
	for i := range cfg.Host.Args {
		cfg.Host.Args[i] = expandEnvVars(cfg.Host.Args[i])
	}
	for k, v := range cfg.Host.Env {
		cfg.Host.Env[k] = expandEnvVars(v)
	}
}

// expandEnvVars replaces ${VAR_NAME} with the value of the environment variable.
func expandEnvVars(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := envVarRe.FindStringSubmatch(match)[1]
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match // leave unresolved vars as-is
	})
}
