package httpclient

import (
	"errors"
	"fmt"
)

// ErrNoResponse は上流からレスポンスを受け取れなかったことを表す。
// 接続エラー、タイムアウト、サーキットブレーカーのオープン状態がこれにあたる。
var ErrNoResponse = errors.New("上流サーバーから応答がありません")

// StatusError は上流が2xx以外のステータスを返したことを表す。
type StatusError struct {
	// StatusCode は上流のHTTPステータスコード。
	StatusCode int
	// Body は上流のレスポンスボディ。
	Body []byte
	// URL はリクエスト先のURL。
	URL string
}

// Error はエラーメッセージを返す。
func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTPエラー: status=%d, url=%s", e.StatusCode, e.URL)
}

// IsServerError は上流側の障害（5xx）かどうかを返す。
func (e *StatusError) IsServerError() bool {
	return e.StatusCode >= 500
}
