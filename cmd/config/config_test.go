package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadConfigDefault(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	defer os.Chdir(wd)
	viper.Reset()

	if err := os.Chdir(".."); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	LoadConfig("")
	if AppConfig.ABI.Version != 2 {
		t.Fatalf("unexpected abi version: %d", AppConfig.ABI.Version)
	}
	if AppConfig.Server.ListenAddr != ":8080" {
		t.Fatalf("unexpected listen addr: %s", AppConfig.Server.ListenAddr)
	}
}

func TestLoadConfigOverride(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	defer os.Chdir(wd)
	viper.Reset()

	if err := os.Chdir(".."); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	LoadConfig("bootstrap")
	if AppConfig.ABI.FunctionIDs.CacheSize != 4096 {
		t.Fatalf("expected cache size 4096, got %d", AppConfig.ABI.FunctionIDs.CacheSize)
	}
	if AppConfig.Logging.Level != "debug" {
		t.Fatalf("expected overridden log level debug, got %s", AppConfig.Logging.Level)
	}
	// Values not touched by the override file retain their defaults.
	if AppConfig.Server.ListenAddr != ":8080" {
		t.Fatalf("expected inherited listen addr, got %s", AppConfig.Server.ListenAddr)
	}
}
