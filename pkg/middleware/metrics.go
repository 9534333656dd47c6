package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestObserver は完了したリクエストを受け取る。
type RequestObserver interface {
	ObserveRequest(method, route string, status int, d time.Duration)
}

// Metrics はリクエスト数と処理時間を記録するGinミドルウェアを返す。
// ルートラベルには生のパスではなくルートのパターン（c.FullPath）を使う。
func Metrics(observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		observer.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
