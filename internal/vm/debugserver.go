package vm

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// DebugServer exposes a read-only view of a Runner's get-method history,
// grounded on the teacher's gorilla/mux + golang.org/x/time/rate debug
// HTTP server in core/virtual_machine.go.
type DebugServer struct {
	runner  *Runner
	limiter *rate.Limiter
	log     *logrus.Entry
}

// NewDebugServer builds a DebugServer limited to rps requests/second with
// the given burst allowance.
func NewDebugServer(runner *Runner, rps float64, burst int, log *logrus.Entry) *DebugServer {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &DebugServer{
		runner:  runner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		log:     log,
	}
}

func (d *DebugServer) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !d.limiter.Allow() {
			http.Error(w, "rate limit", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Handler returns the mux router serving GET /debug/getmethods.
func (d *DebugServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(d.rateLimit)
	r.HandleFunc("/debug/getmethods", d.listMethods).Methods(http.MethodGet)
	return r
}

func (d *DebugServer) listMethods(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(d.runner.Snapshot()); err != nil {
		d.log.WithError(err).Warn("failed to encode getmethods snapshot")
	}
}

// ListenAndServe starts the debug HTTP server on addr until the process
// is killed or the server errors out.
func (d *DebugServer) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      d.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
	return srv.ListenAndServe()
}
