package universalis

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DataCenter は上流のデータセンター。Worldsはワールドのリスト（ID）。
type DataCenter struct {
	Name   string `json:"name"`
	Region string `json:"region"`
	Worlds []int  `json:"worlds"`
}

// World は上流のワールド。
type World struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Server はワールド名に置き換えたデータセンター。
type Server struct {
	Name   string   `json:"name"`
	Region string   `json:"region"`
	Worlds []string `json:"worlds"`
}

// UnknownWorldError はデータセンターが参照するワールドIDがワールド一覧に無いことを表す。
type UnknownWorldError struct {
	// WorldID は見つからなかったワールドID。
	WorldID int
	// DataCenter は参照元のデータセンター名。
	DataCenter string
}

// Error はエラーメッセージを返す。
func (e *UnknownWorldError) Error() string {
	return fmt.Sprintf("データセンター %s が参照するワールド %d がワールド一覧にありません", e.DataCenter, e.WorldID)
}

// ServerList はregionに属するデータセンターをワールド名付きで返す。
// データセンター一覧とワールド一覧は並行に取得し、どちらかが失敗した時点で
// もう一方をキャンセルして全体を失敗とする。
func (c *Client) ServerList(ctx context.Context, region string) ([]Server, error) {
	var (
		dcs    []DataCenter
		worlds []World
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dcs, err = c.DataCenters(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		worlds, err = c.Worlds(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return JoinWorlds(dcs, worlds, region)
}

// JoinWorlds はregionに一致するデータセンターを残し、ワールドIDをワールド名に置き換える。
// regionは大文字小文字を区別して完全一致で比較する。ワールドの順序は上流の順序を保つ。
// 参照先のワールドが無い場合は *UnknownWorldError を返し、部分的な結果は返さない。
func JoinWorlds(dcs []DataCenter, worlds []World, region string) ([]Server, error) {
	names := make(map[int]string, len(worlds))
	for _, w := range worlds {
		names[w.ID] = w.Name
	}

	servers := make([]Server, 0, len(dcs))
	for _, dc := range dcs {
		if dc.Region != region {
			continue
		}

		worldNames := make([]string, 0, len(dc.Worlds))
		for _, id := range dc.Worlds {
			name, ok := names[id]
			if !ok {
				return nil, &UnknownWorldError{WorldID: id, DataCenter: dc.Name}
			}
			worldNames = append(worldNames, name)
		}

		servers = append(servers, Server{
			Name:   dc.Name,
			Region: dc.Region,
			Worlds: worldNames,
		})
	}
	return servers, nil
}
