package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.Listen != "127.0.0.1:8765" {
		t.Fatalf("unexpected listen %q", cfg.App.Listen)
	}
	if cfg.App.Tick != 50*time.Millisecond || cfg.App.RefreshInterval != 10 {
		t.Fatalf("unexpected tick settings %s/%d", cfg.App.Tick, cfg.App.RefreshInterval)
	}
	if cfg.App.PollInterval != 2*time.Second || cfg.App.Menu != "auction" || cfg.App.Console {
		t.Fatalf("unexpected defaults %+v", cfg.App)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate: %v", err)
	}
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	env := []string{
		"GRIDMENU_LISTEN=:9000",
		"GRIDMENU_POLL_INTERVAL=5s",
		"GRIDMENU_REFRESH_INTERVAL=4",
		"GRIDMENU_CONSOLE=true",
		"GRIDMENU_TRACE=1",
		"UNRELATED=x",
		"broken",
	}
	cfg, err := LoadArgs(nil, env)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.Listen != ":9000" || cfg.App.PollInterval != 5*time.Second || cfg.App.RefreshInterval != 4 {
		t.Fatalf("unexpected app config %+v", cfg.App)
	}
	if !cfg.App.Console || !cfg.Logging.Trace {
		t.Fatalf("expected console and trace from env")
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	cfg, err := LoadArgs(
		[]string{"-listen", ":7000", "-tick", "20ms", "-menu", "confirm", "-log-file", "/tmp/gm.log"},
		[]string{"GRIDMENU_LISTEN=:9000", "GRIDMENU_MENU=listing"},
	)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.Listen != ":7000" || cfg.App.Tick != 20*time.Millisecond || cfg.App.Menu != "confirm" {
		t.Fatalf("unexpected app config %+v", cfg.App)
	}
	if cfg.Logging.FilePath != "/tmp/gm.log" {
		t.Fatalf("unexpected log file %q", cfg.Logging.FilePath)
	}
	if cfg.Flags["listen"] != ":7000" || cfg.Flags["tick"] != "20ms" {
		t.Fatalf("unexpected flag echo %v", cfg.Flags)
	}
	if len(cfg.Args) != 8 {
		t.Fatalf("expected args to be echoed, got %v", cfg.Args)
	}
}

func TestConfigFileSitsBelowEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gridmenu.yaml")
	body := strings.Join([]string{
		"listen: \":6000\"",
		"catalog: /srv/listings.yaml",
		"poll-interval: 1s",
		"menu: listing",
		"refresh-interval: 20",
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadArgs(
		[]string{"-config", path, "-menu", "auction"},
		[]string{"GRIDMENU_REFRESH_INTERVAL=5"},
	)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.File != path {
		t.Fatalf("expected config file to be recorded")
	}
	if cfg.App.Listen != ":6000" || cfg.App.CatalogPath != "/srv/listings.yaml" || cfg.App.PollInterval != time.Second {
		t.Fatalf("expected file values, got %+v", cfg.App)
	}
	if cfg.App.RefreshInterval != 5 {
		t.Fatalf("expected env to beat the file, got %d", cfg.App.RefreshInterval)
	}
	if cfg.App.Menu != "auction" {
		t.Fatalf("expected flag to beat the file, got %q", cfg.App.Menu)
	}
}

func TestMissingConfigFile(t *testing.T) {
	_, err := LoadArgs([]string{"-config", filepath.Join(t.TempDir(), "nope.yaml")}, nil)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestUnknownFlag(t *testing.T) {
	if _, err := LoadArgs([]string{"-socket", "x"}, nil); err == nil {
		t.Fatalf("expected unknown flag to fail")
	}
}

func TestValidate(t *testing.T) {
	base, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"tick", func(c *Config) { c.App.Tick = 0 }, "tick"},
		{"refresh", func(c *Config) { c.App.RefreshInterval = -1 }, "refresh-interval"},
		{"poll", func(c *Config) { c.App.CatalogPath = "x.yaml"; c.App.PollInterval = 0 }, "poll-interval"},
		{"nothing", func(c *Config) { c.App.Listen = "" }, "nothing to serve"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := Validate(cfg)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q error, got %v", tt.want, err)
			}
		})
	}
}
