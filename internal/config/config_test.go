package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blackwell-systems/okreads/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OKREADS_CONFIG", "")
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:3333/api" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("API.Timeout = %v, want 30s", cfg.API.Timeout)
	}
	if cfg.SnackBar.Duration != 3*time.Second {
		t.Errorf("SnackBar.Duration = %v, want 3s", cfg.SnackBar.Duration)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Cache.Dir == "" {
		t.Error("Cache.Dir should have a default")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := []byte(`
api:
  base_url: https://books.example.com/api
  rate_limit: 2.5
snackbar:
  duration: 5s
log:
  format: json
`)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "https://books.example.com/api" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.RateLimit != 2.5 {
		t.Errorf("API.RateLimit = %v, want 2.5", cfg.API.RateLimit)
	}
	if cfg.SnackBar.Duration != 5*time.Second {
		t.Errorf("SnackBar.Duration = %v, want 5s", cfg.SnackBar.Duration)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want json", cfg.Log.Format)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("OKREADS_API_BASE_URL", "http://env.example/api")
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://env.example/api" {
		t.Errorf("API.BaseURL = %q, want env value", cfg.API.BaseURL)
	}
}

func TestLoad_InvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("log:\n  format: xml\n"), 0600); err != nil {
		t.Fatal(err)
	}
	_, err := config.Load(path)
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("Load err = %v, want ErrInvalid", err)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yml")
	in := &config.Config{
		API:      config.APIConfig{BaseURL: "http://saved/api", Timeout: 10 * time.Second},
		SnackBar: config.SnackBarConfig{Duration: 4 * time.Second},
		Log:      config.LogConfig{Level: "debug", Format: "text"},
	}
	if err := config.Save(in, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.API.BaseURL != in.API.BaseURL || out.API.Timeout != in.API.Timeout {
		t.Errorf("API = %+v, want %+v", out.API, in.API)
	}
	if out.SnackBar.Duration != in.SnackBar.Duration {
		t.Errorf("SnackBar.Duration = %v, want %v", out.SnackBar.Duration, in.SnackBar.Duration)
	}
	if out.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", out.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.Config
		ok   bool
	}{
		{"valid", config.Config{API: config.APIConfig{BaseURL: "x"}}, true},
		{"missing base url", config.Config{}, false},
		{"negative rate", config.Config{API: config.APIConfig{BaseURL: "x", RateLimit: -1}}, false},
		{"negative duration", config.Config{API: config.APIConfig{BaseURL: "x"}, SnackBar: config.SnackBarConfig{Duration: -time.Second}}, false},
	}
	for _, c := range cases {
		err := c.cfg.Validate()
		if (err == nil) != c.ok {
			t.Errorf("%s: Validate() = %v, ok=%v", c.name, err, c.ok)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home, _ := os.UserHomeDir()
	if got := config.ExpandHome("~/x"); got != filepath.Join(home, "x") {
		t.Errorf("ExpandHome(~/x) = %q", got)
	}
	if got := config.ExpandHome("/abs"); got != "/abs" {
		t.Errorf("ExpandHome(/abs) = %q", got)
	}
}
