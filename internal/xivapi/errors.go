package xivapi

import "encoding/json"

// unknownErrorMessage はエラーボディからメッセージを取り出せない場合の既定値。
const unknownErrorMessage = "Unknown error"

// errorBody はXIVAPIのエラーレスポンス。
// エンドポイントによって Message と error のどちらかが使われる。
type errorBody struct {
	Message string `json:"Message"`
	Error   string `json:"error"`
}

// ErrorMessage はエラーレスポンスのボディからメッセージを取り出す。
// Message、error の順に探し、どちらも無ければ "Unknown error" を返す。
func ErrorMessage(body []byte) string {
	var e errorBody
	if err := json.Unmarshal(body, &e); err != nil {
		return unknownErrorMessage
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Error != "" {
		return e.Error
	}
	return unknownErrorMessage
}
