// Command abiserver exposes the ABI codec over HTTP: POST /v1/encode,
// /v1/decode, /v1/functionid, /v1/getmethod, mirroring the teacher's
// walletserver three-layer controller/service/routes split.
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"tvmabi/cmd/abiserver/controllers"
	"tvmabi/cmd/abiserver/routes"
	"tvmabi/cmd/abiserver/services"
	"tvmabi/internal/vm"
	"tvmabi/pkg/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	lvl, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.JSONFormatter{})

	abiSvc, err := services.NewABIService(cfg.ABI.FunctionIDs.CacheSize)
	if err != nil {
		logrus.WithError(err).Fatal("failed to build ABI service")
	}
	gmSvc := services.NewGetMethodService(abiSvc, logrus.WithField("component", "getmethod"))

	abiCtrl := controllers.NewABIController(abiSvc)
	gmCtrl := controllers.NewGetMethodController(gmSvc)

	r := chi.NewRouter()
	routes.Register(r, abiCtrl, gmCtrl, cfg.Server.EnableGzip)

	if addr := cfg.GetMethod.DebugListenAddr; addr != "" {
		debugSrv := vm.NewDebugServer(gmSvc.Runner(), cfg.GetMethod.InvokesPerSecond, cfg.GetMethod.Burst,
			logrus.WithField("component", "getmethod-debug"))
		go func() {
			logrus.WithField("addr", addr).Info("getmethod debug server listening")
			if err := debugSrv.ListenAndServe(addr); err != nil {
				logrus.WithError(err).Error("getmethod debug server exited")
			}
		}()
	}

	addr := cfg.Server.ListenAddr
	logrus.WithField("addr", addr).Info("abiserver listening")
	if err := http.ListenAndServe(addr, r); err != nil {
		logrus.WithError(err).Fatal("abiserver exited")
	}
}
