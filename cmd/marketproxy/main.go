// マーケットプロキシのエントリポイント。
// アイテム検索API（XIVAPI）とマーケットボードAPI（Universalis）の前段に立ち、
// クライアントアプリケーション向けにレスポンスを整えて返す。
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/nao1215/xivmarket/internal/config"
	"github.com/nao1215/xivmarket/internal/marketproxy"
	"github.com/nao1215/xivmarket/pkg/logging"
)

// version はビルド時に -ldflags で埋め込まれる。
var version = "dev"

func main() {
	var (
		app        = kingpin.New("marketproxy", "Market board proxy for XIVAPI and Universalis.")
		configPath = app.Flag("config", "Path to YAML config file").Default("").OverrideDefaultFromEnvar("MARKETPROXY_CONFIG").Short('c').String()
		port       = app.Flag("port", "Listen port (overrides config and PORT)").Default("0").Short('p').Int()
		logLevel   = app.Flag("log-level", "Log level (debug, info, warn, error)").Default("").Short('v').String()
	)
	app.Version(version)
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf(".envの読み込みに失敗: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("設定が不正です: %v", err)
	}

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		log.Fatalf("ロガーの初期化に失敗: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	server, err := marketproxy.NewServer(cfg, logger)
	if err != nil {
		logger.Fatal("サーバーの初期化に失敗", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("マーケットプロキシを開始します",
		zap.String("version", version),
		zap.Int("port", cfg.Server.Port),
		zap.String("default_region", cfg.Server.DefaultRegion),
		zap.Bool("xivapi_key_configured", cfg.XIVAPI.PrivateKey != ""),
	)
	if err := server.Run(ctx); err != nil {
		logger.Fatal("マーケットプロキシの実行に失敗", zap.Error(err))
	}
}
