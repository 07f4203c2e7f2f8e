// Package config in cmd provides a thin wrapper around the shared
// configuration loader found in pkg/config, adapted for command-line
// bootstrapping: the abi binary loads it before registering cobra flags so
// that flag defaults (log level, function id cache size) track whatever
// cmd/config/default.yaml and ABI_ENV resolve to, instead of being
// hardcoded twice.
package config

import (
	"github.com/sirupsen/logrus"

	pkgconfig "tvmabi/pkg/config"
)

// AppConfig holds the currently loaded configuration for command line
// utilities. It mirrors pkg/config.AppConfig but is scoped to this
// package for convenience when writing CLI tools and tests.
var AppConfig pkgconfig.Config

// LoadConfig loads the configuration for the given environment name and
// stores it in AppConfig. A load failure is fatal: the abi CLI has no
// sensible flag defaults to fall back to without cmd/config/default.yaml.
func LoadConfig(env string) {
	cfg, err := pkgconfig.Load(env)
	if err != nil {
		logrus.WithError(err).WithField("env", env).Fatal("failed to load abi configuration")
	}
	AppConfig = *cfg
}
