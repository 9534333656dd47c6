package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestAccessLog はAccessLogミドルウェアを検証する。
func TestAccessLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		wantLevel zapcore.Level
	}{
		{name: "2xxはinfoで出力されること", status: http.StatusOK, wantLevel: zap.InfoLevel},
		{name: "4xxはwarnで出力されること", status: http.StatusBadRequest, wantLevel: zap.WarnLevel},
		{name: "5xxはerrorで出力されること", status: http.StatusBadGateway, wantLevel: zap.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			core, logs := observer.New(zap.DebugLevel)
			router := gin.New()
			router.Use(RequestID(), AccessLog(zap.New(core)))
			router.GET("/items", func(c *gin.Context) {
				c.Status(tt.status)
			})

			req := httptest.NewRequest(http.MethodGet, "/items?item=potion", nil)
			req.Header.Set(RequestIDHeader, "req-log")
			router.ServeHTTP(httptest.NewRecorder(), req)

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.wantLevel, entry.Level)

			fields := entry.ContextMap()
			assert.Equal(t, "GET", fields["method"])
			assert.Equal(t, "/items", fields["path"])
			assert.Equal(t, "item=potion", fields["query"])
			assert.Equal(t, int64(tt.status), fields["status"])
			assert.Equal(t, "req-log", fields["request_id"])
		})
	}
}

// fakeObserver は記録されたリクエストを保持する。
type fakeObserver struct {
	method string
	route  string
	status int
}

func (f *fakeObserver) ObserveRequest(method, route string, status int, _ time.Duration) {
	f.method, f.route, f.status = method, route, status
}

// TestMetrics はMetricsミドルウェアを検証する。
func TestMetrics(t *testing.T) {
	t.Parallel()

	t.Run("ルートのパターンとステータスが記録されること", func(t *testing.T) {
		t.Parallel()

		obs := &fakeObserver{}
		router := gin.New()
		router.Use(Metrics(obs))
		router.GET("/items", func(c *gin.Context) {
			c.Status(http.StatusNotFound)
		})

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items?item=x", nil))

		assert.Equal(t, "GET", obs.method)
		assert.Equal(t, "/items", obs.route)
		assert.Equal(t, http.StatusNotFound, obs.status)
	})

	t.Run("未定義のルートは空のルートとして記録されること", func(t *testing.T) {
		t.Parallel()

		obs := &fakeObserver{}
		router := gin.New()
		router.Use(Metrics(obs))

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

		assert.Empty(t, obs.route)
		assert.Equal(t, http.StatusNotFound, obs.status)
	})
}
