// Package xivapi はアイテム検索API（XIVAPI）のクライアントを提供する。
//
// 名前の部分一致でItemシートを検索し、上流の行をクライアント向けの
// フラットなアイテムレコードに変換する。秘密鍵はBearerトークンとして転送する。
package xivapi
