package jobs

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"surfboard-marketplace-backend/internal/metrics"
)

// NewMetricsServer serves the process metrics registry, job run counters
// included, on addr.
func NewMetricsServer(addr string) *http.Server {
	r := mux.NewRouter()
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	return &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
