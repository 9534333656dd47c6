package xivapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// itemIDKey は出力JSONでアイテムIDを表すキー。
const itemIDKey = "itemId"

// Item は検索結果を正規化したアイテム。
// JSONでは itemId と上流のフィールドが同じ階層に並ぶ。
type Item struct {
	// ID は上流の行ID。
	ID int
	// Fields は上流から受け取ったフィールド。
	Fields map[string]json.RawMessage
}

// MarshalJSON は itemId を先頭に、残りのフィールドをキー順に出力する。
// 上流のフィールドに itemId があっても行IDが優先される。
func (i Item) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `{%q:%d`, itemIDKey, i.ID)

	for _, key := range slices.Sorted(maps.Keys(i.Fields)) {
		if key == itemIDKey {
			continue
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("フィールド名のシリアライズに失敗: %w", err)
		}
		value := i.Fields[key]
		if len(value) == 0 {
			value = json.RawMessage("null")
		}
		buf.WriteByte(',')
		buf.Write(encodedKey)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
