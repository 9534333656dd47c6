package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

// DefaultTimeout はタイムアウト未指定時のリクエストタイムアウト。
const DefaultTimeout = 30 * time.Second

// Observer は上流リクエストの結果を受け取る。
// statusはレスポンスを受け取れなかった場合に0となる。
type Observer interface {
	ObserveUpstream(upstream string, status int, d time.Duration)
}

// Client は上流API用のHTTPクライアント。
type Client struct {
	// httpClient は内部で使用するHTTPクライアント。
	httpClient *http.Client
	// name はメトリクスとログに使う上流の名前。
	name string
	// baseURL は接続先APIのベースURL。
	baseURL string
	// bearerToken は空でなければAuthorizationヘッダーに付与する。
	bearerToken string
	// observer はリクエスト結果の記録先。nilなら記録しない。
	observer Observer
	// breaker はnilでなければすべてのリクエストをブレーカー越しに実行する。
	breaker *gobreaker.CircuitBreaker
}

// Option はClientの設定を変更する。
type Option func(*Client)

// WithTimeout はリクエストタイムアウトを設定する。
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithBearerToken はBearerトークンを設定する。
func WithBearerToken(token string) Option {
	return func(c *Client) {
		c.bearerToken = token
	}
}

// WithObserver はリクエスト結果の記録先を設定する。
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// WithBreaker はサーキットブレーカーを有効にする。
// thresholdはオープンになるまでの連続失敗回数、timeoutはハーフオープンに移るまでの時間。
// onStateChangeには遷移後の状態（0=closed, 1=half-open, 2=open）が渡される。
func WithBreaker(threshold int, timeout time.Duration, onStateChange func(name string, state int)) Option {
	return func(c *Client) {
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    c.name,
			Timeout: timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= uint32(threshold) //nolint:gosec // threshold is validated >= 1
			},
			IsSuccessful: isBreakerSuccess,
			OnStateChange: func(name string, _ gobreaker.State, to gobreaker.State) {
				if onStateChange != nil {
					onStateChange(name, int(to))
				}
			},
		})
	}
}

// New は新しい上流API用HTTPクライアントを生成する。
// baseURLには末尾のスラッシュを含めないベースURL（例: "https://universalis.app/api/v2"）を指定する。
func New(name, baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		name:    name,
		baseURL: baseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name は上流の名前を返す。
func (c *Client) Name() string {
	return c.name
}

// Get は指定パスにGETリクエストを送信し、レスポンスボディを返す。
// 2xx以外は *StatusError、レスポンスを受け取れない場合は ErrNoResponse を包んだエラーを返す。
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.breaker == nil {
		return c.do(ctx, path, query)
	}

	body, err := c.breaker.Execute(func() (any, error) {
		return c.do(ctx, path, query)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %s: %w", ErrNoResponse, c.name, err)
	}
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}

// GetJSON は指定パスにGETリクエストを送信し、レスポンスボディをresultにデシリアライズする。
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, result any) error {
	body, err := c.Get(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("レスポンスボディのデシリアライズに失敗: %w", err)
	}
	return nil
}

// do はGETリクエストを1回実行する共通処理。
func (c *Client) do(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	}

	// コンテキストからリクエストIDを伝播する
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(0, start)
		return nil, fmt.Errorf("%w: %s: %w", ErrNoResponse, c.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	c.observe(resp.StatusCode, start)
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの読み取りに失敗: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       body,
			URL:        fullURL,
		}
	}
	return body, nil
}

// observe はリクエスト結果をObserverに渡す。
func (c *Client) observe(status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveUpstream(c.name, status, time.Since(start))
	}
}

// isBreakerSuccess は4xxを上流の障害とみなさない。
func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return !statusErr.IsServerError()
	}
	return false
}

// contextKey はコンテキストキーの型。
type contextKey string

// contextKeyRequestID はコンテキストにリクエストIDを格納するためのキー。
const contextKeyRequestID contextKey = "request_id"

// WithRequestID はコンテキストにリクエストIDを設定する。
// 上流へのリクエストにX-Request-IDとして伝播される。
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, requestID)
}

// RequestIDFromContext はコンテキストからリクエストIDを取得する。
func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(contextKeyRequestID).(string)
	return requestID
}
