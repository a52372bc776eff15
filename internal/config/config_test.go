package config

import (
	"os"
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	t.Run("returns value when set", func(t *testing.T) {
		os.Setenv("TEST_GET_ENV_KEY", "myvalue")
		defer os.Unsetenv("TEST_GET_ENV_KEY")

		if got := getEnv("TEST_GET_ENV_KEY", "default"); got != "myvalue" {
			t.Errorf("got %q, want myvalue", got)
		}
	})

	t.Run("returns default when unset", func(t *testing.T) {
		os.Unsetenv("TEST_GET_ENV_KEY_MISSING")
		if got := getEnv("TEST_GET_ENV_KEY_MISSING", "fallback"); got != "fallback" {
			t.Errorf("got %q, want fallback", got)
		}
	})
}

func TestGetEnvAsInt(t *testing.T) {
	t.Run("valid int", func(t *testing.T) {
		os.Setenv("TEST_INT", "42")
		defer os.Unsetenv("TEST_INT")

		if got := getEnvAsInt("TEST_INT", 10); got != 42 {
			t.Errorf("got %d, want 42", got)
		}
	})

	t.Run("invalid int returns default", func(t *testing.T) {
		os.Setenv("TEST_INT_BAD", "not_a_number")
		defer os.Unsetenv("TEST_INT_BAD")

		if got := getEnvAsInt("TEST_INT_BAD", 99); got != 99 {
			t.Errorf("got %d, want 99", got)
		}
	})

	t.Run("unset returns default", func(t *testing.T) {
		os.Unsetenv("TEST_INT_MISSING")
		if got := getEnvAsInt("TEST_INT_MISSING", 7); got != 7 {
			t.Errorf("got %d, want 7", got)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"FLUXPOINT_TOKEN", "FLUXPOINT_BASE_URL", "FLUXPOINT_TIMEOUT", "FLUXPOINT_WORKERS", "FLUXPOINT_QUEUE_SIZE", "LOG_LEVEL"} {
		orig := os.Getenv(key)
		os.Unsetenv(key)
		defer setOrUnset(key, orig)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.API.BaseURL, DefaultBaseURL)
	}
	if cfg.API.Token != "" {
		t.Errorf("Token = %q, want empty", cfg.API.Token)
	}
	if cfg.API.Timeout != 30 {
		t.Errorf("Timeout = %d, want 30", cfg.API.Timeout)
	}
	if cfg.Workers.Count != 4 {
		t.Errorf("Workers.Count = %d, want 4", cfg.Workers.Count)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	origToken := os.Getenv("FLUXPOINT_TOKEN")
	origURL := os.Getenv("FLUXPOINT_BASE_URL")
	origTimeout := os.Getenv("FLUXPOINT_TIMEOUT")
	defer func() {
		setOrUnset("FLUXPOINT_TOKEN", origToken)
		setOrUnset("FLUXPOINT_BASE_URL", origURL)
		setOrUnset("FLUXPOINT_TIMEOUT", origTimeout)
	}()

	os.Setenv("FLUXPOINT_TOKEN", "secret")
	os.Setenv("FLUXPOINT_BASE_URL", "http://localhost:9999")
	os.Setenv("FLUXPOINT_TIMEOUT", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.Token != "secret" {
		t.Errorf("Token = %q, want secret", cfg.API.Token)
	}
	if cfg.API.BaseURL != "http://localhost:9999" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if got := cfg.API.TimeoutDuration(); got != 5*time.Second {
		t.Errorf("TimeoutDuration = %v, want 5s", got)
	}
}

func TestTimeoutDurationFallback(t *testing.T) {
	for _, timeout := range []int{0, -3} {
		if got := (APIConfig{Timeout: timeout}).TimeoutDuration(); got != 30*time.Second {
			t.Errorf("TimeoutDuration(%d) = %v, want 30s", timeout, got)
		}
	}
}

func setOrUnset(key, val string) {
	if val == "" {
		os.Unsetenv(key)
	} else {
		os.Setenv(key, val)
	}
}
