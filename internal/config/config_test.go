package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadFromParsesFullConfig(t *testing.T) {
	path := writeConfig(t, `
call_timeout = "45s"
log_level = "debug"

[host]
command = "/usr/local/bin/design-host"
args = ["--headless", "--port=0"]

[host.env]
DESIGN_HOST_MODE = "automation"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Host.Command != "/usr/local/bin/design-host" {
		t.Errorf("Host.Command = %q", cfg.Host.Command)
	}
	if len(cfg.Host.Args) != 2 || cfg.Host.Args[0] != "--headless" {
		t.Errorf("Host.Args = %v", cfg.Host.Args)
	}
	if cfg.Host.Env["DESIGN_HOST_MODE"] != "automation" {
		t.Errorf("Host.Env = %v", cfg.Host.Env)
	}
	if cfg.CallTimeout != "45s" {
		t.Errorf("CallTimeout = %q, want %q", cfg.CallTimeout, "45s")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Host.Command != "" || cfg.CallTimeout != "" {
		t.Errorf("LoadFrom() = %+v, want zero config", cfg)
	}
}

func TestLoadFromRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, `[host`)
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom() error = nil, want parse error")
	}
}

func TestLoadFromExpandsEnvVars(t *testing.T) {
	t.Setenv("DESIGN_BIN", "/opt/host")
	t.Setenv("DESIGN_TOKEN", "secret-token")

	path := writeConfig(t, `
[host]
command = "${DESIGN_BIN}/run"
args = ["--token=${DESIGN_TOKEN}"]

[host.env]
API_KEY = "${DESIGN_TOKEN}"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Host.Command != "/opt/host/run" {
		t.Errorf("Host.Command = %q, want expanded path", cfg.Host.Command)
	}
	if cfg.Host.Args[0] != "--token=secret-token" {
		t.Errorf("Host.Args[0] = %q, want expanded token", cfg.Host.Args[0])
	}
	if cfg.Host.Env["API_KEY"] != "secret-token" {
		t.Errorf("Host.Env[API_KEY] = %q, want expanded token", cfg.Host.Env["API_KEY"])
	}
}

func TestLoadFromLeavesUnresolvedVarsAsIs(t *testing.T) {
	path := writeConfig(t, `
[host]
command = "${DESIGNMCP_NO_SUCH_VAR}/bin"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Host.Command != "${DESIGNMCP_NO_SUCH_VAR}/bin" {
		t.Errorf("Host.Command = %q, want unresolved placeholder kept", cfg.Host.Command)
	}
}

func TestParseCallTimeout(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Duration
		wantErr bool
	}{
		{"empty means no timeout", "", 0, false},
		{"seconds", "30s", 30 * time.Second, false},
		{"milliseconds", "250ms", 250 * time.Millisecond, false},
		{"negative rejected", "-5s", 0, true},
		{"garbage rejected", "soon", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{CallTimeout: tt.value}
			got, err := cfg.ParseCallTimeout()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCallTimeout() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCallTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}
