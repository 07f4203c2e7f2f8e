// Package routes wires the ABI codec HTTP API's routes, mirroring the
// teacher's walletserver/routes/routes.go.
package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/klauspost/compress/gzhttp"

	"tvmabi/cmd/abiserver/controllers"
	"tvmabi/cmd/abiserver/middleware"
)

// Register mounts the ABI codec HTTP API onto r. Gzip response
// compression is applied only when enableGzip is set, per the server's
// configured enable_gzip flag.
func Register(r chi.Router, abiCtrl *controllers.ABIController, gmCtrl *controllers.GetMethodController, enableGzip bool) {
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	if enableGzip {
		r.Use(gzhttp.GzipHandler)
	}

	r.Route("/v1", func(v1 chi.Router) {
		v1.Post("/encode", abiCtrl.Encode)
		v1.Post("/decode", abiCtrl.Decode)
		v1.Post("/functionid", abiCtrl.FunctionID)
		v1.Post("/getmethod", gmCtrl.Run)
		v1.Get("/getmethod/history", gmCtrl.History)
	})
}
