package utils

import (
	"os"
	"strconv"
)

// EnvOrDefault returns the value of the environment variable identified by
// key, or fallback if the variable is unset or empty. pkg/config.LoadFromEnv
// uses this to resolve ABI_ENV, the name of the override YAML file to merge
// on top of cmd/config/default.yaml.
func EnvOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// EnvOrDefaultInt returns the integer value of the environment variable
// identified by key, or fallback if the variable is unset, empty, or cannot
// be parsed as an integer. pkg/config.Load uses this to let
// ABI_FUNCTION_ID_CACHE_SIZE override the YAML-configured function id cache
// size at deploy time without editing the config file.
func EnvOrDefaultInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// EnvOrDefaultUint64 returns the uint64 value of the environment variable
// identified by key, or fallback if the variable is unset, empty, or cannot
// be parsed as a uint64. pkg/config.Load uses this to let
// ABI_GET_METHOD_MAX_GAS override the YAML-configured get-method gas
// ceiling.
func EnvOrDefaultUint64(key string, fallback uint64) uint64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
