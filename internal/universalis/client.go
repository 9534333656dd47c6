package universalis

import (
	"context"
	"fmt"
	"net/url"

	"github.com/nao1215/xivmarket/pkg/httpclient"
)

// UpstreamName はメトリクスとログで使う上流の名前。
const UpstreamName = "universalis"

// Client はUniversalisのクライアント。
type Client struct {
	// http は上流へのHTTPクライアント。
	http *httpclient.Client
}

// New は新しいUniversalisクライアントを生成する。
func New(baseURL string, opts ...httpclient.Option) *Client {
	return &Client{
		http: httpclient.New(UpstreamName, baseURL, opts...),
	}
}

// CurrentData はワールド・データセンター・リージョン単位の現在の出品情報を取得する。
// ボディは加工せずに返す。
func (c *Client) CurrentData(ctx context.Context, worldDcRegion, itemID string) ([]byte, error) {
	path := "/" + url.PathEscape(worldDcRegion) + "/" + url.PathEscape(itemID)
	body, err := c.http.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("現在価格の取得に失敗: %w", err)
	}
	return body, nil
}

// History は取引履歴を取得する。entriesWithinが空でなければクエリとして付与する。
// ボディは加工せずに返す。
func (c *Client) History(ctx context.Context, worldDcRegion, itemID, entriesWithin string) ([]byte, error) {
	path := "/history/" + url.PathEscape(worldDcRegion) + "/" + url.PathEscape(itemID)

	var query url.Values
	if entriesWithin != "" {
		query = url.Values{"entriesWithin": {entriesWithin}}
	}

	body, err := c.http.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("取引履歴の取得に失敗: %w", err)
	}
	return body, nil
}

// DataCenters はデータセンター一覧を取得する。
func (c *Client) DataCenters(ctx context.Context) ([]DataCenter, error) {
	var dcs []DataCenter
	if err := c.http.GetJSON(ctx, "/data-centers", nil, &dcs); err != nil {
		return nil, fmt.Errorf("データセンター一覧の取得に失敗: %w", err)
	}
	return dcs, nil
}

// Worlds はワールド一覧を取得する。
func (c *Client) Worlds(ctx context.Context) ([]World, error) {
	var worlds []World
	if err := c.http.GetJSON(ctx, "/worlds", nil, &worlds); err != nil {
		return nil, fmt.Errorf("ワールド一覧の取得に失敗: %w", err)
	}
	return worlds, nil
}
