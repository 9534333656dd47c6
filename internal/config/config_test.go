package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapLookup はテスト用の環境変数参照関数を返す。
func mapLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

// writeFile はテスト用の一時ファイルを作成する。
func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestDefault はデフォルト設定を検証する。
func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "North-America", cfg.Server.DefaultRegion)
	assert.Equal(t, "https://beta.xivapi.com/api/1", cfg.XIVAPI.BaseURL)
	assert.Equal(t, "https://universalis.app/api/v2", cfg.Universalis.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.XIVAPI.Timeout)
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Breaker.Enabled)
	assert.NoError(t, cfg.Validate())
}

// TestApplyEnv は環境変数による上書きを検証する。
func TestApplyEnv(t *testing.T) {
	t.Parallel()

	t.Run("環境変数で各項目が上書きされること", func(t *testing.T) {
		t.Parallel()

		cfg := Default()
		err := applyEnv(cfg, mapLookup(map[string]string{
			"PORT":                 "9000",
			"XIV_API_PRIVATE_KEY":  "secret",
			"XIVAPI_BASE_URL":      "http://xivapi.local",
			"UNIVERSALIS_BASE_URL": "http://universalis.local",
			"DEFAULT_REGION":       "Japan",
			"CORS_ALLOWED_ORIGINS": "http://a.example, ,http://b.example",
			"LOG_LEVEL":            "debug",
			"LOG_FORMAT":           "console",
		}))
		require.NoError(t, err)

		assert.Equal(t, 9000, cfg.Server.Port)
		assert.Equal(t, "secret", cfg.XIVAPI.PrivateKey)
		assert.Equal(t, "http://xivapi.local", cfg.XIVAPI.BaseURL)
		assert.Equal(t, "http://universalis.local", cfg.Universalis.BaseURL)
		assert.Equal(t, "Japan", cfg.Server.DefaultRegion)
		assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Server.AllowedOrigins)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
	})

	t.Run("空の環境変数ではデフォルト値が残ること", func(t *testing.T) {
		t.Parallel()

		cfg := Default()
		require.NoError(t, applyEnv(cfg, mapLookup(map[string]string{"PORT": "", "DEFAULT_REGION": ""})))

		assert.Equal(t, DefaultPort, cfg.Server.Port)
		assert.Equal(t, DefaultRegion, cfg.Server.DefaultRegion)
	})

	t.Run("PORTが数値でない場合はエラーになること", func(t *testing.T) {
		t.Parallel()

		cfg := Default()
		err := applyEnv(cfg, mapLookup(map[string]string{"PORT": "eighty"}))
		assert.Error(t, err)
	})
}

// TestDecodeYAML はYAMLの上書きデコードを検証する。
func TestDecodeYAML(t *testing.T) {
	t.Parallel()

	t.Run("書かれた項目だけが上書きされること", func(t *testing.T) {
		t.Parallel()

		cfg := Default()
		err := decodeYAML([]byte(`
server:
  port: 8081
  default_region: Europe
universalis:
  timeout: 5s
breaker:
  enabled: true
  threshold: 3
`), cfg)
		require.NoError(t, err)

		assert.Equal(t, 8081, cfg.Server.Port)
		assert.Equal(t, "Europe", cfg.Server.DefaultRegion)
		assert.Equal(t, 5*time.Second, cfg.Universalis.Timeout)
		assert.Equal(t, DefaultUpstreamTimeout, cfg.XIVAPI.Timeout)
		assert.True(t, cfg.Breaker.Enabled)
		assert.Equal(t, 3, cfg.Breaker.Threshold)
		assert.Equal(t, DefaultBreakerTimeout, cfg.Breaker.Timeout)
	})

	t.Run("不正なYAMLはエラーになること", func(t *testing.T) {
		t.Parallel()

		err := decodeYAML([]byte("server: ["), Default())
		assert.Error(t, err)
	})
}

// TestLoad はファイルと環境変数を組み合わせた読み込みを検証する。
// t.Setenv を使うため並列実行しない。
func TestLoad(t *testing.T) {
	t.Run("YAMLの環境変数展開と環境変数の上書きが反映されること", func(t *testing.T) {
		t.Setenv("TEST_XIVAPI_KEY", "from-yaml-env")
		t.Setenv("PORT", "8123")

		path := writeFile(t, "config.yaml", `
server:
  port: 7000
xivapi:
  private_key: ${TEST_XIVAPI_KEY}
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		require.NoError(t, cfg.Validate())

		assert.Equal(t, 8123, cfg.Server.Port)
		assert.Equal(t, "from-yaml-env", cfg.XIVAPI.PrivateKey)
	})

	t.Run("パスが空の場合はデフォルトと環境変数のみで構成されること", func(t *testing.T) {
		t.Setenv("DEFAULT_REGION", "Oceania")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "Oceania", cfg.Server.DefaultRegion)
	})

	t.Run("存在しないファイルはエラーになること", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

// TestLoadDotEnv は .env 読み込みを検証する。
func TestLoadDotEnv(t *testing.T) {
	t.Run("存在しないファイルは無視されること", func(t *testing.T) {
		assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("未設定の環境変数だけが補われること", func(t *testing.T) {
		t.Setenv("TEST_DOTENV_PRESET", "kept")
		path := writeFile(t, ".env", "TEST_DOTENV_PRESET=overwritten\nTEST_DOTENV_NEW=added\n")
		t.Cleanup(func() { os.Unsetenv("TEST_DOTENV_NEW") })

		require.NoError(t, LoadDotEnv(path))
		assert.Equal(t, "kept", os.Getenv("TEST_DOTENV_PRESET"))
		assert.Equal(t, "added", os.Getenv("TEST_DOTENV_NEW"))
	})
}

// TestValidate は設定の検証を確認する。
func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{name: "ポートが範囲外", modify: func(c *Config) { c.Server.Port = 70000 }},
		{name: "許可オリジンが空", modify: func(c *Config) { c.Server.AllowedOrigins = nil }},
		{name: "デフォルトリージョンが空", modify: func(c *Config) { c.Server.DefaultRegion = "" }},
		{name: "XIVAPIのURLが相対パス", modify: func(c *Config) { c.XIVAPI.BaseURL = "/api/1" }},
		{name: "UniversalisのURLのスキームが不正", modify: func(c *Config) { c.Universalis.BaseURL = "ftp://universalis.app" }},
		{name: "タイムアウトが0", modify: func(c *Config) { c.Universalis.Timeout = 0 }},
		{name: "ログレベルが不正", modify: func(c *Config) { c.Log.Level = "verbose" }},
		{name: "ログ形式が不正", modify: func(c *Config) { c.Log.Format = "xml" }},
		{name: "メトリクスのパスが不正", modify: func(c *Config) { c.Metrics.Path = "metrics" }},
		{name: "ブレーカーの閾値が0", modify: func(c *Config) {
			c.Breaker.Enabled = true
			c.Breaker.Threshold = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name+"の場合はエラーになること", func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	t.Run("ブレーカーが無効なら閾値は検証しないこと", func(t *testing.T) {
		t.Parallel()

		cfg := Default()
		cfg.Breaker.Threshold = 0
		assert.NoError(t, cfg.Validate())
	})
}
