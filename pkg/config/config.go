// Package config provides a reusable loader for the ABI codec's
// configuration files and environment variables. It is versioned so that
// applications can depend on a stable API contract.
//
// Version: v0.1.0
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"tvmabi/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// Config represents the unified configuration for the ABI codec's CLI and
// HTTP server. It mirrors the structure of the YAML files under
// cmd/config.
type Config struct {
	ABI struct {
		Version     int `mapstructure:"version" json:"version"`
		FunctionIDs struct {
			CacheSize int `mapstructure:"cache_size" json:"cache_size"`
		} `mapstructure:"function_ids" json:"function_ids"`
	} `mapstructure:"abi" json:"abi"`

	Server struct {
		ListenAddr      string `mapstructure:"listen_addr" json:"listen_addr"`
		EnableGzip      bool   `mapstructure:"enable_gzip" json:"enable_gzip"`
		RequestLogLevel string `mapstructure:"request_log_level" json:"request_log_level"`
	} `mapstructure:"server" json:"server"`

	GetMethod struct {
		MaxGas           uint64  `mapstructure:"max_gas" json:"max_gas"`
		InvokesPerSecond float64 `mapstructure:"invokes_per_second" json:"invokes_per_second"`
		Burst            int     `mapstructure:"burst" json:"burst"`
		DebugListenAddr  string  `mapstructure:"debug_listen_addr" json:"debug_listen_addr"`
	} `mapstructure:"get_method" json:"get_method"`

	Logging struct {
		Level string `mapstructure:"level" json:"level"`
		File  string `mapstructure:"file" json:"file"`
	} `mapstructure:"logging" json:"logging"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads configuration files and merges any environment specific
// overrides. The resulting configuration is stored in AppConfig and
// returned.
//
// The function uses the provided environment name to merge additional
// config files. If env is empty, only the default configuration is
// loaded.
func Load(env string) (*Config, error) {
	viper.SetConfigName("default")
	viper.AddConfigPath("cmd/config")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, utils.Wrap(err, "load config")
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	viper.AutomaticEnv() // env vars named after the upper-cased nested keys, e.g. GET_METHOD.MAX_GAS

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}

	// Two fields get a second, explicit override pass beyond viper's
	// AutomaticEnv: the function id cache size and the get-method gas
	// ceiling are the knobs most likely to be tuned per-deployment without
	// touching cmd/config's YAML files.
	AppConfig.ABI.FunctionIDs.CacheSize = utils.EnvOrDefaultInt("ABI_FUNCTION_ID_CACHE_SIZE", AppConfig.ABI.FunctionIDs.CacheSize)
	AppConfig.GetMethod.MaxGas = utils.EnvOrDefaultUint64("ABI_GET_METHOD_MAX_GAS", AppConfig.GetMethod.MaxGas)

	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the ABI_ENV environment variable.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("ABI_ENV", ""))
}
