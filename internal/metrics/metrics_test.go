package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	r := mux.NewRouter()
	r.Use(Middleware)
	r.HandleFunc("/rentals/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/rentals/{id}", "404"))
	for _, path := range []string{"/rentals/1", "/rentals/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/rentals/{id}", "404"))
	assert.Equal(t, 2.0, after-before)
}

func TestDomainCounters(t *testing.T) {
	before := testutil.ToFloat64(rentalTransitions.WithLabelValues("approved"))
	RecordRentalTransition("approved")
	assert.Equal(t, 1.0, testutil.ToFloat64(rentalTransitions.WithLabelValues("approved"))-before)

	conflicts := testutil.ToFloat64(bookingConflicts)
	RecordBookingConflict()
	assert.Equal(t, 1.0, testutil.ToFloat64(bookingConflicts)-conflicts)

	RecordJobRun("reconcile_storage_flags", 0, true)
	assert.GreaterOrEqual(t, testutil.ToFloat64(jobRuns.WithLabelValues("reconcile_storage_flags", "true")), 1.0)
}

func TestHandlerExposesMetrics(t *testing.T) {
	RecordStorageDecision("accepted")
	RecordJobRun("expire_stale_pending_rentals", time.Second, false)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(body, "surfboard_marketplace_storage_decisions_total"))
	assert.True(t, strings.Contains(body, "surfboard_marketplace_jobs_runs_total"))
}
