// Command abi is a CLI wrapper around the ABI codec: encode, decode,
// functionid and getmethod subcommands, mirroring the teacher's
// cmd/synnergy and cmd/cli entrypoint style.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cmdconfig "tvmabi/cmd/config"
	"tvmabi/core"
)

var (
	log       = logrus.StandardLogger()
	idCache   *core.FunctionIDCache
	logLevel  string
	cacheSize int
)

func main() {
	cmdconfig.LoadConfig(os.Getenv("ABI_ENV"))
	logLevel = cmdconfig.AppConfig.Logging.Level
	if logLevel == "" {
		logLevel = "info"
	}
	cacheSize = cmdconfig.AppConfig.ABI.FunctionIDs.CacheSize
	if cacheSize == 0 {
		cacheSize = 1024
	}

	root := &cobra.Command{
		Use:   "abi",
		Short: "encode, decode and inspect TVM-style ABI function calls",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(lvl)
			log.SetFormatter(&logrus.JSONFormatter{})

			cache, err := core.NewFunctionIDCache(cacheSize)
			if err != nil {
				return err
			}
			idCache = cache
			resolveRegistry(idCache)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", logLevel, "log level (debug, info, warn, error)")
	root.PersistentFlags().IntVar(&cacheSize, "function-id-cache-size", cacheSize, "function id LRU cache size")

	root.AddCommand(encodeCmd())
	root.AddCommand(decodeCmd())
	root.AddCommand(functionIDCmd())
	root.AddCommand(getMethodCmd())

	if err := root.Execute(); err != nil {
		log.WithError(err).Error("abi command failed")
		os.Exit(1)
	}
}

func lookupFunction(name string) (core.Function, bool) {
	fn, ok := registry[name]
	return fn, ok
}
