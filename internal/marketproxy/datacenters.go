package marketproxy

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nao1215/xivmarket/internal/universalis"
	"github.com/nao1215/xivmarket/pkg/middleware"
)

// レスポンスエンベロープのstatus。
const (
	statusSuccess = "success"
	statusError   = "error"
)

// dataCentersResponse は /data-centers のレスポンスエンベロープ。
// 成功時はmessageが、失敗時はdataがnullになる。
type dataCentersResponse struct {
	Status  string          `json:"status"`
	Data    *serverListData `json:"data"`
	Message *string         `json:"message"`
}

// serverListData は成功時のdata。
type serverListData struct {
	ServerList []universalis.Server `json:"serverList"`
}

// handleDataCenters はリージョン内のデータセンターとワールド名の一覧を返すハンドラを返す。
// GET /data-centers?region=<name>
func (s *Server) handleDataCenters() gin.HandlerFunc {
	return func(c *gin.Context) {
		region := c.Query("region")
		if region == "" {
			region = s.defaultRegion
		}

		servers, err := s.universalis.ServerList(c.Request.Context(), region)
		if err != nil {
			message := dataCentersErrorMessage(err)
			s.logger.Error("データセンター一覧の取得に失敗しました",
				zap.String("region", region),
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, dataCentersResponse{
				Status:  statusError,
				Message: &message,
			})
			return
		}
		if servers == nil {
			servers = []universalis.Server{}
		}

		c.JSON(http.StatusOK, dataCentersResponse{
			Status: statusSuccess,
			Data:   &serverListData{ServerList: servers},
		})
	}
}
