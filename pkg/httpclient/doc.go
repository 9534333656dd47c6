// Package httpclient は上流APIへのHTTP通信を行うクライアントを提供する。
//
// アイテム検索API・マーケットボードAPIの両方がこのクライアントを使う。
// 上流が返したエラーステータス（StatusError）と、レスポンス自体を受け取れなかった
// 場合（ErrNoResponse）を区別して返すため、呼び出し側はerrors.As/Isで分類できる。
package httpclient
