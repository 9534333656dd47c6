package universalis

import "encoding/json"

// unknownErrorMessage はエラーボディからメッセージを取り出せない場合の既定値。
const unknownErrorMessage = "Unknown error"

// ErrorMessage はエラーレスポンスのボディから message を取り出す。
// 無ければ "Unknown error" を返す。
func ErrorMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err != nil || e.Message == "" {
		return unknownErrorMessage
	}
	return e.Message
}
