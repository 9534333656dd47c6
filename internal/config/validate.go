package config

import (
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap/zapcore"
)

// Validate は必須項目と値の範囲を検証する。
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port は1から65535の範囲で指定してください: %d", c.Server.Port)
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return errors.New("server.allowed_origins が空です")
	}
	if c.Server.DefaultRegion == "" {
		return errors.New("server.default_region が空です")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("server.shutdown_timeout は正の値にしてください")
	}

	if err := validateBaseURL("xivapi.base_url", c.XIVAPI.BaseURL); err != nil {
		return err
	}
	if c.XIVAPI.Timeout <= 0 {
		return errors.New("xivapi.timeout は正の値にしてください")
	}
	if err := validateBaseURL("universalis.base_url", c.Universalis.BaseURL); err != nil {
		return err
	}
	if c.Universalis.Timeout <= 0 {
		return errors.New("universalis.timeout は正の値にしてください")
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level が不正です: %q", c.Log.Level)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("log.format は json か console を指定してください: %q", c.Log.Format)
	}

	if c.Metrics.Enabled && (c.Metrics.Path == "" || c.Metrics.Path[0] != '/') {
		return fmt.Errorf("metrics.path は / で始めてください: %q", c.Metrics.Path)
	}

	if c.Breaker.Enabled {
		if c.Breaker.Threshold < 1 {
			return errors.New("breaker.threshold は1以上にしてください")
		}
		if c.Breaker.Timeout <= 0 {
			return errors.New("breaker.timeout は正の値にしてください")
		}
	}
	return nil
}

// validateBaseURL はhttp(s)の絶対URLであることを検証する。
func validateBaseURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s のパースに失敗: %w", name, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s はhttp(s)の絶対URLで指定してください: %q", name, raw)
	}
	return nil
}
