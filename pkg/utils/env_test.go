package utils

import (
	"os"
	"testing"
)

func TestEnvOrDefault(t *testing.T) {
	const key = "ABI_ENV"
	_ = os.Unsetenv(key)
	if got := EnvOrDefault(key, ""); got != "" {
		t.Fatalf("expected empty default, got %q", got)
	}
	_ = os.Setenv(key, "bootstrap")
	defer os.Unsetenv(key)
	if got := EnvOrDefault(key, ""); got != "bootstrap" {
		t.Fatalf("expected bootstrap, got %q", got)
	}
}

func TestEnvOrDefaultInt(t *testing.T) {
	const key = "ABI_FUNCTION_ID_CACHE_SIZE"
	_ = os.Unsetenv(key)
	if got := EnvOrDefaultInt(key, 1024); got != 1024 {
		t.Fatalf("expected 1024, got %d", got)
	}
	_ = os.Setenv(key, "4096")
	defer os.Unsetenv(key)
	if got := EnvOrDefaultInt(key, 1024); got != 4096 {
		t.Fatalf("expected 4096, got %d", got)
	}
	_ = os.Setenv(key, "not-a-number")
	if got := EnvOrDefaultInt(key, 1024); got != 1024 {
		t.Fatalf("expected fallback on parse error, got %d", got)
	}
}

func TestEnvOrDefaultUint64(t *testing.T) {
	const key = "ABI_GET_METHOD_MAX_GAS"
	_ = os.Unsetenv(key)
	if got := EnvOrDefaultUint64(key, 1_000_000); got != 1_000_000 {
		t.Fatalf("expected 1000000, got %d", got)
	}
	_ = os.Setenv(key, "2000000")
	defer os.Unsetenv(key)
	if got := EnvOrDefaultUint64(key, 1_000_000); got != 2_000_000 {
		t.Fatalf("expected 2000000, got %d", got)
	}
	_ = os.Setenv(key, "not-a-number")
	if got := EnvOrDefaultUint64(key, 1_000_000); got != 1_000_000 {
		t.Fatalf("expected fallback on parse error, got %d", got)
	}
}
