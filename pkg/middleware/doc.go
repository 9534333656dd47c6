// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// CORS設定、リクエストID付与、アクセスログ、メトリクス記録、
// パニックリカバリなど、マーケットプロキシの全ルートで共通して使用するミドルウェアを含む。
package middleware
