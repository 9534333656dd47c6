// Package universalis はマーケットボードAPI（Universalis）のクライアントを提供する。
//
// 現在価格と取引履歴はボディをそのまま返し、データセンター一覧は
// ワールド一覧と並行に取得してワールドIDをワールド名に置き換える。
package universalis
