package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LookupFunc は環境変数の参照関数。テストでは os.LookupEnv の代わりに差し替える。
type LookupFunc func(key string) (string, bool)

// LoadDotEnv は .env ファイルを読み込み、未設定の環境変数だけを補う。
// ファイルが存在しない場合は何もしない。
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf(".envファイルの読み込みに失敗: %s: %w", p, err)
		}
	}
	return nil
}

// Load は設定を読み込む。pathが空の場合はYAMLファイルを読まない。
// YAML内の ${VAR} は環境変数で展開される。
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
		}
		if err := decodeYAML(data, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeYAML は環境変数を展開したYAMLをcfgに上書きデコードする。
func decodeYAML(data []byte, cfg *Config) error {
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("設定ファイルのパースに失敗: %w", err)
	}
	return nil
}

// applyEnv は環境変数で設定を上書きする。
func applyEnv(cfg *Config, lookup LookupFunc) error {
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORTが数値ではありません: %q", v)
		}
		cfg.Server.Port = port
	}
	if v, ok := lookup("XIV_API_PRIVATE_KEY"); ok {
		cfg.XIVAPI.PrivateKey = v
	}
	if v, ok := lookup("XIVAPI_BASE_URL"); ok && v != "" {
		cfg.XIVAPI.BaseURL = v
	}
	if v, ok := lookup("UNIVERSALIS_BASE_URL"); ok && v != "" {
		cfg.Universalis.BaseURL = v
	}
	if v, ok := lookup("DEFAULT_REGION"); ok && v != "" {
		cfg.Server.DefaultRegion = v
	}
	if v, ok := lookup("CORS_ALLOWED_ORIGINS"); ok && v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := lookup("LOG_FORMAT"); ok && v != "" {
		cfg.Log.Format = v
	}
	return nil
}

// splitList はカンマ区切りの文字列を空要素を除いて分割する。
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
