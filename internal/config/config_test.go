package config

import (
	"os"
	"testing"
)

func TestParseBoolEnv(t *testing.T) {
	const key = "JOBCACHE_TEST_BOOL"
	defer os.Unsetenv(key)

	cases := []struct {
		set   string
		value bool
		ok    bool
	}{
		{"true", true, true},
		{"YES", true, true},
		{"0", false, true},
		{"off", false, true},
		{"", false, false},
		{"maybe", false, false},
	}
	for _, c := range cases {
		os.Setenv(key, c.set)
		value, ok := parseBoolEnv(key)
		if value != c.value || ok != c.ok {
			t.Fatalf("parseBoolEnv(%q) = (%v, %v), want (%v, %v)", c.set, value, ok, c.value, c.ok)
		}
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	os.Unsetenv("JOBCACHE_DATABASE_URL")
	if _, err := Load(""); err == nil {
		t.Fatal("expected an error when no database URL is configured")
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	os.Setenv("JOBCACHE_DATABASE_URL", "postgres://example/db")
	os.Setenv("JOBCACHE_MAXIMUM_SIZE", "42")
	defer os.Unsetenv("JOBCACHE_DATABASE_URL")
	defer os.Unsetenv("JOBCACHE_MAXIMUM_SIZE")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.MaximumSize != 42 {
		t.Fatalf("MaximumSize = %d, want 42", cfg.Cache.MaximumSize)
	}
	if cfg.Producer.DatabaseURL != "postgres://example/db" {
		t.Fatalf("DatabaseURL = %q", cfg.Producer.DatabaseURL)
	}
}
