// Package marketproxy はマーケットボード用プロキシサービスの内部実装を提供する。
//
// クライアントからのリクエストをアイテム検索API（XIVAPI）とマーケットボードAPI
// （Universalis）に振り分け、レスポンスをクライアント向けの形に整えて返す。
// /data-centers ではデータセンター一覧とワールド一覧を並行に取得して結合する。
package marketproxy
