package xivapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/nao1215/xivmarket/pkg/httpclient"
)

// UpstreamName はメトリクスとログで使う上流の名前。
const UpstreamName = "xivapi"

// searchSheet は検索対象のシート名。
const searchSheet = "Item"

// Client はXIVAPIのクライアント。
type Client struct {
	// http は上流へのHTTPクライアント。
	http *httpclient.Client
}

// New は新しいXIVAPIクライアントを生成する。
// privateKeyが空でなければBearerトークンとしてすべてのリクエストに付与する。
func New(baseURL, privateKey string, opts ...httpclient.Option) *Client {
	opts = append([]httpclient.Option{httpclient.WithBearerToken(privateKey)}, opts...)
	return &Client{
		http: httpclient.New(UpstreamName, baseURL, opts...),
	}
}

// searchResponse は検索APIのレスポンス。
type searchResponse struct {
	Results []searchResult `json:"results"`
}

// searchResult は検索結果の1行。
type searchResult struct {
	// RowID はシート内の行ID。アイテムIDとして扱う。
	RowID int `json:"row_id"`
	// Fields は行のフィールド。
	Fields map[string]json.RawMessage `json:"fields"`
}

// SearchItems は名前にnameを含むアイテムを検索する。
// 結果が0件の場合は空のスライスを返す。
func (c *Client) SearchItems(ctx context.Context, name string) ([]Item, error) {
	query := url.Values{
		"query":  {fmt.Sprintf("Name~%q", name)},
		"sheets": {searchSheet},
	}

	var resp searchResponse
	if err := c.http.GetJSON(ctx, "/search", query, &resp); err != nil {
		return nil, fmt.Errorf("アイテム検索に失敗: %w", err)
	}

	items := make([]Item, 0, len(resp.Results))
	for _, r := range resp.Results {
		items = append(items, Item{ID: r.RowID, Fields: r.Fields})
	}
	return items, nil
}
