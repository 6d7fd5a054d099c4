package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "404"))
	bytesBefore := testutil.ToFloat64(bytesServed)

	ObserveRequest("GET", http.StatusNotFound, 5*time.Millisecond, 19)

	if got := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "404")); got != before+1 {
		t.Errorf("Expected counter %v, got %v", before+1, got)
	}
	if got := testutil.ToFloat64(bytesServed); got != bytesBefore+19 {
		t.Errorf("Expected %v bytes, got %v", bytesBefore+19, got)
	}
}

func TestHandler(t *testing.T) {
	ObserveRequest("HEAD", http.StatusOK, time.Millisecond, 0)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "score_server_requests_total") {
		t.Error("Expected request counter in the exposition output")
	}
}
