package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/averch/dcaplan"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(cwd) })

	// no file: zero config.
	if cfg := LoadConfig(); cfg.Store != "" || cfg.LedgerFile != "" {
		t.Errorf("LoadConfig() without a file = %+v, want zero", cfg)
	}

	raw := `
store: redis
redis:
  addr: redis.internal:6379
  db: 3
`
	if err := os.WriteFile(filepath.Join(dir, configFile), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := LoadConfig()
	if cfg.Store != "redis" {
		t.Errorf("Store = %q, want redis", cfg.Store)
	}
	if cfg.Redis.Addr != "redis.internal:6379" || cfg.Redis.DB != 3 {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
}

func TestFirstOf(t *testing.T) {
	if got := firstOf("", "", "fallback"); got != "fallback" {
		t.Errorf("firstOf() = %q, want fallback", got)
	}
	if got := firstOf("flag", "config", "fallback"); got != "flag" {
		t.Errorf("firstOf() = %q, want flag", got)
	}
}

func TestReadFeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.json")
	if err := os.WriteFile(path, []byte(`{"aapl": 187.3, "MSFT": 410.5}`), 0o644); err != nil {
		t.Fatal(err)
	}
	feed, err := readFeed(path, "USD")
	if err != nil {
		t.Fatalf("readFeed() failed: %v", err)
	}
	// keys are matched case-insensitively whatever the file used.
	if _, ok := feed.Price("AAPL"); !ok {
		t.Error("feed misses AAPL")
	}
	if price, ok := feed.Price("msft"); !ok || !price.Equal(dcaplan.M(410.5, "USD")) {
		t.Errorf("feed MSFT = %s, %v", price, ok)
	}
}
