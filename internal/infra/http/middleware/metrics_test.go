package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/leads/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/leads/{id}", "404"))
	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leads/"+id, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/leads/{id}", "404"))

	assert.Equal(t, 2.0, after-before)
}

func TestRecorders(t *testing.T) {
	before := testutil.ToFloat64(providerFailures.WithLabelValues("yelp"))
	RecordProviderFailure("yelp")
	assert.Equal(t, 1.0, testutil.ToFloat64(providerFailures.WithLabelValues("yelp"))-before)

	before = testutil.ToFloat64(leadStoreFailures)
	RecordLeadStoreFailure()
	assert.Equal(t, 1.0, testutil.ToFloat64(leadStoreFailures)-before)

	before = testutil.ToFloat64(exportsTotal.WithLabelValues("pdf", "ok"))
	RecordExport("pdf", "ok")
	assert.Equal(t, 1.0, testutil.ToFloat64(exportsTotal.WithLabelValues("pdf", "ok"))-before)
}
