package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddleware(t *testing.T) {

	httpRequestsTotal.Reset()
	httpRequestDuration.Reset()

	r := chi.NewRouter()
	r.Use(MetricsMiddleware())
	r.Get("/customers/{customerID}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "customerID") == "1" {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/customers/1", "/customers/2", "/customers/3"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
	}

	expectedTotal := `
		# HELP customer_directory_http_requests_total Total number of HTTP requests.
		# TYPE customer_directory_http_requests_total counter
		customer_directory_http_requests_total{method="GET",path="/customers/{customerID}",status_code="200"} 1
		customer_directory_http_requests_total{method="GET",path="/customers/{customerID}",status_code="404"} 2
	`
	if err := testutil.CollectAndCompare(httpRequestsTotal, strings.NewReader(expectedTotal)); err != nil {
		t.Errorf("unexpected metrics for http_requests_total: %v", err)
	}
}
