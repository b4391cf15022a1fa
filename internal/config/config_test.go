package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func envFrom(env map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	_, err := load(nil, func(string) (string, bool) { return "", false })
	if err == nil {
		t.Fatalf("expected error due to missing api base url, got nil")
	}

	cfg, err := load(nil, envFrom(map[string]string{"API_BASE_URL": "http://api.local"}))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.RunAddress != defaultRunAddress {
		t.Errorf("expected default run address %q, got %q", defaultRunAddress, cfg.RunAddress)
	}
	if cfg.SessionSecret != defaultSessionSecret {
		t.Errorf("expected default session secret %q, got %q", defaultSessionSecret, cfg.SessionSecret)
	}
	if cfg.SessionTTL != defaultSessionTTL {
		t.Errorf("expected default session ttl %v, got %v", defaultSessionTTL, cfg.SessionTTL)
	}
	if cfg.APITimeout != defaultAPITimeout {
		t.Errorf("expected default api timeout %v, got %v", defaultAPITimeout, cfg.APITimeout)
	}
	if cfg.SweepInterval != defaultSweepInterval {
		t.Errorf("expected default sweep interval %v, got %v", defaultSweepInterval, cfg.SweepInterval)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info log level, got %v", cfg.LogLevel)
	}
	if cfg.PersistentSessions() {
		t.Errorf("expected cookie sessions without database uri")
	}
}

func TestLoadWithFlagOverrides(t *testing.T) {
	env := map[string]string{
		"API_BASE_URL":  "http://api.local",
		"SESSION_TTL":   "2h",
		"COOKIE_SECURE": "true",
		"LOG_LEVEL":     "warn",
	}

	args := []string{
		"-a", ":9090",
		"-r", "http://override",
		"-d", "postgres://override",
		"--session-secret", "flag-secret",
		"--session-ttl", "3h",
		"--api-timeout", "4s",
		"--sweep-interval", "1m",
		"--shutdown-timeout", "20s",
		"--log-level", "debug",
	}

	cfg, err := load(args, envFrom(env))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.RunAddress != ":9090" {
		t.Errorf("expected run address :9090, got %q", cfg.RunAddress)
	}
	if cfg.APIBaseURL != "http://override" {
		t.Errorf("expected api override, got %q", cfg.APIBaseURL)
	}
	if cfg.DatabaseURI != "postgres://override" || !cfg.PersistentSessions() {
		t.Errorf("expected database uri override, got %q", cfg.DatabaseURI)
	}
	if cfg.SessionSecret != "flag-secret" {
		t.Errorf("expected session secret override, got %q", cfg.SessionSecret)
	}
	if cfg.SessionTTL != 3*time.Hour {
		t.Errorf("expected session ttl 3h, got %v", cfg.SessionTTL)
	}
	if cfg.APITimeout != 4*time.Second {
		t.Errorf("expected api timeout 4s, got %v", cfg.APITimeout)
	}
	if cfg.SweepInterval != time.Minute {
		t.Errorf("expected sweep interval 1m, got %v", cfg.SweepInterval)
	}
	if cfg.ShutdownTimeout != 20*time.Second {
		t.Errorf("expected shutdown timeout 20s, got %v", cfg.ShutdownTimeout)
	}
	if !cfg.CookieSecure {
		t.Errorf("expected secure cookies from env")
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug log level, got %v", cfg.LogLevel)
	}
}

func TestLoadValidationErrors(t *testing.T) {
	env := envFrom(map[string]string{"API_BASE_URL": "http://api.local"})

	cases := []struct {
		args []string
		want string
	}{
		{[]string{"--session-ttl", "bad"}, "invalid session ttl"},
		{[]string{"--api-timeout", "bad"}, "invalid api timeout"},
		{[]string{"--sweep-interval", "bad"}, "invalid sweep interval"},
		{[]string{"--shutdown-timeout", "bad"}, "invalid shutdown timeout"},
		{[]string{"--log-level", "loud"}, "invalid log level"},
		{[]string{"-r", "/relative"}, "must be absolute"},
		{[]string{"--session-secret", ""}, "session secret"},
		{[]string{"--unknown"}, "parse flags"},
	}

	for _, tc := range cases {
		_, err := load(tc.args, env)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("args %v: expected error containing %q, got %v", tc.args, tc.want, err)
		}
	}
}

func TestLoadNormalizesNonPositiveValues(t *testing.T) {
	env := map[string]string{
		"API_BASE_URL":     "http://api.local",
		"SESSION_TTL":      "0",
		"API_TIMEOUT":      "-1s",
		"SWEEP_INTERVAL":   "0",
		"SHUTDOWN_TIMEOUT": "0",
	}

	cfg, err := load(nil, envFrom(env))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.SessionTTL != defaultSessionTTL {
		t.Errorf("expected default session ttl %v, got %v", defaultSessionTTL, cfg.SessionTTL)
	}
	if cfg.APITimeout != defaultAPITimeout {
		t.Errorf("expected default api timeout %v, got %v", defaultAPITimeout, cfg.APITimeout)
	}
	if cfg.SweepInterval != defaultSweepInterval {
		t.Errorf("expected default sweep interval %v, got %v", defaultSweepInterval, cfg.SweepInterval)
	}
	if cfg.ShutdownTimeout != defaultShutdownTimeout {
		t.Errorf("expected default shutdown timeout %v, got %v", defaultShutdownTimeout, cfg.ShutdownTimeout)
	}
}

func TestLoadReadsSecretFromFile(t *testing.T) {
	dir := t.TempDir()
	secretFile := filepath.Join(dir, "secret")
	if err := os.WriteFile(secretFile, []byte("file-secret\n"), 0o600); err != nil {
		t.Fatalf("failed to write secret file: %v", err)
	}

	cfg, err := load(nil, envFrom(map[string]string{
		"API_BASE_URL":        "http://api.local",
		"SESSION_SECRET_FILE": secretFile,
	}))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.SessionSecret != "file-secret" {
		t.Errorf("expected secret from file, got %q", cfg.SessionSecret)
	}

	_, err = load(nil, envFrom(map[string]string{
		"API_BASE_URL":        "http://api.local",
		"SESSION_SECRET_FILE": filepath.Join(dir, "missing"),
	}))
	if err == nil || !strings.Contains(err.Error(), "read session secret file") {
		t.Fatalf("expected missing secret file error, got %v", err)
	}
}
