package marketproxy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nao1215/xivmarket/internal/config"
	"github.com/nao1215/xivmarket/internal/universalis"
	"github.com/nao1215/xivmarket/internal/xivapi"
	"github.com/nao1215/xivmarket/pkg/httpclient"
	"github.com/nao1215/xivmarket/pkg/metrics"
	"github.com/nao1215/xivmarket/pkg/middleware"
)

// serviceName はヘルスチェックとメトリクスで使うサービス名。
const serviceName = "marketproxy"

// readHeaderTimeout はリクエストヘッダー読み取りのタイムアウト。
const readHeaderTimeout = 10 * time.Second

// Server はマーケットプロキシのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port int
	// logger は構造化ロガー。
	logger *zap.Logger
	// xivapi はアイテム検索APIのクライアント。
	xivapi *xivapi.Client
	// universalis はマーケットボードAPIのクライアント。
	universalis *universalis.Client
	// defaultRegion はregion未指定時に使うリージョン。
	defaultRegion string
	// metrics はPrometheusメトリクス。
	metrics *metrics.Metrics
	// metricsPath は空でなければメトリクスエンドポイントを公開するパス。
	metricsPath string
	// allowedOrigins はCORSで許可するオリジン。
	allowedOrigins []string
	// shutdownTimeout はグレースフルシャットダウンの待ち時間。
	shutdownTimeout time.Duration
}

// NewServer は新しいマーケットプロキシサーバーを生成する。
func NewServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("設定がありません")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := metrics.New(serviceName)

	s := &Server{
		router:          gin.New(),
		port:            cfg.Server.Port,
		logger:          logger,
		xivapi:          xivapi.New(cfg.XIVAPI.BaseURL, cfg.XIVAPI.PrivateKey, upstreamOptions(cfg, cfg.XIVAPI.Timeout, m)...),
		universalis:     universalis.New(cfg.Universalis.BaseURL, upstreamOptions(cfg, cfg.Universalis.Timeout, m)...),
		defaultRegion:   cfg.Server.DefaultRegion,
		metrics:         m,
		allowedOrigins:  cfg.Server.AllowedOrigins,
		shutdownTimeout: cfg.Server.ShutdownTimeout,
	}
	if cfg.Metrics.Enabled {
		s.metricsPath = cfg.Metrics.Path
	}
	if cfg.Breaker.Enabled {
		m.SetBreakerState(xivapi.UpstreamName, 0)
		m.SetBreakerState(universalis.UpstreamName, 0)
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// upstreamOptions は上流クライアント共通のオプションを組み立てる。
func upstreamOptions(cfg *config.Config, timeout time.Duration, m *metrics.Metrics) []httpclient.Option {
	opts := []httpclient.Option{
		httpclient.WithTimeout(timeout),
		httpclient.WithObserver(m),
	}
	if cfg.Breaker.Enabled {
		opts = append(opts, httpclient.WithBreaker(cfg.Breaker.Threshold, cfg.Breaker.Timeout, m.SetBreakerState))
	}
	return opts
}

// setupMiddleware はミドルウェアを設定する。
// RequestIDはRecoveryとアクセスログよりも先に適用する。
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.Recovery(s.logger))
	s.router.Use(middleware.AccessLog(s.logger))
	s.router.Use(middleware.Metrics(s.metrics))
	s.router.Use(middleware.CORS(s.allowedOrigins))
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	// アイテム検索
	s.router.GET("/items", s.handleSearchItems())

	// マーケットボード
	s.router.GET("/market-board-current", s.handleMarketBoardCurrent())
	s.router.GET("/market-board-history", s.handleMarketBoardHistory())

	// データセンター一覧
	s.router.GET("/data-centers", s.handleDataCenters())

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": serviceName})
	})

	if s.metricsPath != "" {
		s.router.GET(s.metricsPath, gin.WrapH(s.metrics.Handler()))
	}
}

// Handler はルーターをhttp.Handlerとして返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run はHTTPサーバーを起動し、ctxが終了するとグレースフルシャットダウンする。
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		s.logger.Info("マーケットプロキシを起動します", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTPサーバーの起動に失敗: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("シャットダウンを開始します", zap.Duration("timeout", s.shutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("グレースフルシャットダウンに失敗: %w", err)
	}
	s.logger.Info("シャットダウンが完了しました")
	return nil
}
