package config

import (
	"os"
	"path/filepath"
	"testing"
)

func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("TXROLLUP_CUSTOMERS", "")
	t.Setenv("TXROLLUP_TRANSACTIONS", "")
	t.Setenv("TXROLLUP_OUTPUT", "")
	return dir
}

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	isolateConfig(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := DefaultConfig()
	if cfg != want {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, want)
	}
	if Exists() {
		t.Error("Exists() = true before any Save")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	isolateConfig(t)

	cfg := DefaultConfig()
	cfg.Paths.Customers = "in/cust.csv"
	cfg.Output.Format = "sqlite"
	cfg.Cleaning.WarnThreshold = 0.25

	if err := Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != cfg {
		t.Errorf("Load() = %+v, want %+v", loaded, cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolateConfig(t)
	t.Setenv("TXROLLUP_CUSTOMERS", "env/customers.csv")
	t.Setenv("TXROLLUP_OUTPUT", "env/out.csv")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Paths.Customers != "env/customers.csv" {
		t.Errorf("Paths.Customers = %q, want env override", cfg.Paths.Customers)
	}
	if cfg.Paths.Output != "env/out.csv" {
		t.Errorf("Paths.Output = %q, want env override", cfg.Paths.Output)
	}
	if want := DefaultConfig().Paths.Transactions; cfg.Paths.Transactions != want {
		t.Errorf("Paths.Transactions = %q, want default %q", cfg.Paths.Transactions, want)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolateConfig(t)

	cfg := DefaultConfig()
	cfg.Paths.Customers = "file/customers.csv"
	if err := Save(cfg); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TXROLLUP_CUSTOMERS", "env/customers.csv")

	loaded, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Paths.Customers != "env/customers.csv" {
		t.Errorf("Paths.Customers = %q, env must win over file", loaded.Paths.Customers)
	}
}

func TestConfigPath(t *testing.T) {
	dir := isolateConfig(t)

	want := filepath.Join(dir, "txrollup", "config.toml")
	if got := ConfigPath(); got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	isolateConfig(t)

	if err := os.MkdirAll(ConfigDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ConfigPath(), []byte("not = [valid"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}
