package config

import "time"

// Config はマーケットプロキシ全体の設定。
type Config struct {
	// Server はHTTPサーバーの設定。
	Server ServerConfig `yaml:"server"`
	// Log はロガーの設定。
	Log LogConfig `yaml:"log"`
	// XIVAPI はアイテム検索APIの設定。
	XIVAPI XIVAPIConfig `yaml:"xivapi"`
	// Universalis はマーケットボードAPIの設定。
	Universalis UniversalisConfig `yaml:"universalis"`
	// Metrics はPrometheusメトリクスの設定。
	Metrics MetricsConfig `yaml:"metrics"`
	// Breaker は上流APIごとのサーキットブレーカー設定。
	Breaker BreakerConfig `yaml:"breaker"`
}

// ServerConfig はHTTPサーバーの設定。
type ServerConfig struct {
	// Port はリッスンポート。
	Port int `yaml:"port"`
	// AllowedOrigins はCORSで許可するオリジン。"*" はすべてのオリジンを許可する。
	AllowedOrigins []string `yaml:"allowed_origins"`
	// DefaultRegion は /data-centers でregion未指定時に使うリージョン。
	DefaultRegion string `yaml:"default_region"`
	// ShutdownTimeout はグレースフルシャットダウンの待ち時間。
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LogConfig はロガーの設定。
type LogConfig struct {
	// Level はログレベル（debug, info, warn, error）。
	Level string `yaml:"level"`
	// Format は出力形式（json, console）。
	Format string `yaml:"format"`
}

// XIVAPIConfig はアイテム検索APIの設定。
type XIVAPIConfig struct {
	// BaseURL はAPIのベースURL。
	BaseURL string `yaml:"base_url"`
	// PrivateKey はBearerトークンとして転送する秘密鍵。
	PrivateKey string `yaml:"private_key"`
	// Timeout はリクエストのタイムアウト。
	Timeout time.Duration `yaml:"timeout"`
}

// UniversalisConfig はマーケットボードAPIの設定。
type UniversalisConfig struct {
	// BaseURL はAPIのベースURL。
	BaseURL string `yaml:"base_url"`
	// Timeout はリクエストのタイムアウト。
	Timeout time.Duration `yaml:"timeout"`
}

// MetricsConfig はPrometheusメトリクスの設定。
type MetricsConfig struct {
	// Enabled がtrueの場合にメトリクスエンドポイントを公開する。
	Enabled bool `yaml:"enabled"`
	// Path はメトリクスエンドポイントのパス。
	Path string `yaml:"path"`
}

// BreakerConfig はサーキットブレーカーの設定。
type BreakerConfig struct {
	// Enabled がtrueの場合に上流APIごとにブレーカーを挟む。
	Enabled bool `yaml:"enabled"`
	// Threshold は連続失敗でオープンになるまでの回数。
	Threshold int `yaml:"threshold"`
	// Timeout はオープン状態からハーフオープンに移るまでの時間。
	Timeout time.Duration `yaml:"timeout"`
}
