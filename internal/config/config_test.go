package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Defaults() should validate, got: %v", err)
	}
	if cfg.Sync.RosterTimeout.Duration != 8*time.Second {
		t.Errorf("roster_timeout default = %v", cfg.Sync.RosterTimeout.Duration)
	}
	if cfg.Sync.TradesTimeout.Duration != 10*time.Second {
		t.Errorf("trades_timeout default = %v", cfg.Sync.TradesTimeout.Duration)
	}
	if cfg.Sync.RunDeadline.Duration != 25*time.Second {
		t.Errorf("run_deadline default = %v", cfg.Sync.RunDeadline.Duration)
	}
	if cfg.Sync.MemberLimit != 600 {
		t.Errorf("member_limit default = %d", cfg.Sync.MemberLimit)
	}
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
mode = "server"

[supabase]
host = "db.internal"
database = "congress"

[sync]
member_limit = 550
run_deadline = "30s"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CWATCH_SUPABASE_PASSWORD", "hunter2")
	t.Setenv("CWATCH_SYNC_ROSTER_TIMEOUT", "12s")
	t.Setenv("CWATCH_SERVER_CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Mode != "server" {
		t.Errorf("mode = %q", cfg.Mode)
	}
	if cfg.Supabase.Host != "db.internal" || cfg.Supabase.Database != "congress" {
		t.Errorf("supabase = %+v", cfg.Supabase)
	}
	if cfg.Supabase.Password != "hunter2" {
		t.Errorf("env password override missing, got %q", cfg.Supabase.Password)
	}
	if cfg.Sync.MemberLimit != 550 {
		t.Errorf("member_limit = %d", cfg.Sync.MemberLimit)
	}
	if cfg.Sync.RunDeadline.Duration != 30*time.Second {
		t.Errorf("run_deadline = %v", cfg.Sync.RunDeadline.Duration)
	}
	if cfg.Sync.RosterTimeout.Duration != 12*time.Second {
		t.Errorf("env roster_timeout override missing, got %v", cfg.Sync.RosterTimeout.Duration)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[0] != "https://a.example.com" {
		t.Errorf("cors_origins = %v", cfg.Server.CORSOrigins)
	}
	// Untouched fields keep their defaults.
	if cfg.Sync.TradesTimeout.Duration != 10*time.Second {
		t.Errorf("trades_timeout = %v", cfg.Sync.TradesTimeout.Duration)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Defaults()
	cfg.Mode = "batch"
	cfg.Sync.MemberLimit = 0
	cfg.Sync.RunDeadline = duration{5 * time.Second} // below roster+trades budget
	cfg.Server.Port = 70000

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate should fail")
	}
	for _, want := range []string{"unknown mode", "member_limit", "run_deadline", "port"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q: %v", want, err)
		}
	}
}

func TestRedactedConfig(t *testing.T) {
	cfg := Defaults()
	cfg.Supabase.Password = "secret"
	cfg.Redis.Password = "secret"
	cfg.Notify.TelegramToken = "secret"

	red := RedactedConfig(&cfg)
	if red.Supabase.Password != "***" || red.Redis.Password != "***" || red.Notify.TelegramToken != "***" {
		t.Errorf("secrets not redacted: %+v", red)
	}
	if cfg.Supabase.Password != "secret" {
		t.Error("original config mutated")
	}
	red.Server.CORSOrigins[0] = "mutated"
	if cfg.Server.CORSOrigins[0] == "mutated" {
		t.Error("redacted copy shares the origins slice")
	}
}
