package config

import "time"

// 省略時に使われる設定値。
const (
	DefaultPort               = 8000
	DefaultXIVAPIBaseURL      = "https://beta.xivapi.com/api/1"
	DefaultUniversalisBaseURL = "https://universalis.app/api/v2"
	DefaultUpstreamTimeout    = 30 * time.Second
	DefaultRegion             = "North-America"
	DefaultShutdownTimeout    = 30 * time.Second
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "json"
	DefaultMetricsPath        = "/metrics"
	DefaultBreakerThreshold   = 5
	DefaultBreakerTimeout     = 30 * time.Second
)

// Default はデフォルト値で埋めた設定を返す。
// YAMLファイルはこの値の上にデコードされるため、書かれていない項目はデフォルトのまま残る。
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            DefaultPort,
			AllowedOrigins:  []string{"*"},
			DefaultRegion:   DefaultRegion,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		XIVAPI: XIVAPIConfig{
			BaseURL: DefaultXIVAPIBaseURL,
			Timeout: DefaultUpstreamTimeout,
		},
		Universalis: UniversalisConfig{
			BaseURL: DefaultUniversalisBaseURL,
			Timeout: DefaultUpstreamTimeout,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    DefaultMetricsPath,
		},
		Breaker: BreakerConfig{
			Enabled:   false,
			Threshold: DefaultBreakerThreshold,
			Timeout:   DefaultBreakerTimeout,
		},
	}
}
