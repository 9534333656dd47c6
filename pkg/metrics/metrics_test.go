package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestObserveRequest はHTTPリクエストの記録を検証する。
func TestObserveRequest(t *testing.T) {
	t.Parallel()

	t.Run("ルートとステータスごとにカウントされること", func(t *testing.T) {
		t.Parallel()

		m := New("")
		m.ObserveRequest(http.MethodGet, "/items", 200, 10*time.Millisecond)
		m.ObserveRequest(http.MethodGet, "/items", 200, 20*time.Millisecond)
		m.ObserveRequest(http.MethodGet, "/items", 404, time.Millisecond)

		assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/items", "200")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/items", "404")))
	})

	t.Run("ルートが空の場合はunmatchedとして記録されること", func(t *testing.T) {
		t.Parallel()

		m := New("")
		m.ObserveRequest(http.MethodGet, "", 404, time.Millisecond)

		assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "unmatched", "404")))
	})
}

// TestObserveUpstream は上流APIリクエストの記録を検証する。
func TestObserveUpstream(t *testing.T) {
	t.Parallel()

	m := New("")
	m.ObserveUpstream("universalis", 200, time.Millisecond)
	m.ObserveUpstream("universalis", 503, time.Millisecond)
	m.ObserveUpstream("universalis", 0, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamTotal.WithLabelValues("universalis", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamTotal.WithLabelValues("universalis", "5xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamTotal.WithLabelValues("universalis", "no_response")))
}

// TestHandler はメトリクスエンドポイントの出力を検証する。
func TestHandler(t *testing.T) {
	t.Parallel()

	m := New("test")
	m.ObserveRequest(http.MethodGet, "/health", 200, time.Millisecond)
	m.SetBreakerState("xivapi", 2)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `test_requests_total{method="GET",route="/health",status="200"} 1`)
	assert.Contains(t, string(body), `test_upstream_circuit_breaker_state{name="xivapi"} 2`)
	assert.Contains(t, string(body), "go_goroutines")
}
