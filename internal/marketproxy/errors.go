package marketproxy

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nao1215/xivmarket/internal/universalis"
	"github.com/nao1215/xivmarket/internal/xivapi"
	"github.com/nao1215/xivmarket/pkg/httpclient"
	"github.com/nao1215/xivmarket/pkg/middleware"
)

// クライアントに返すエラーメッセージ。
const (
	msgUnexpected            = "An unexpected error occurred"
	msgMissingItem           = "Missing query parameter: item"
	msgItemNotString         = "Query parameter item must be a string"
	msgNoItems               = "No items found matching your search."
	msgMissingMarketParams   = "Missing required parameters: worldDcRegion and itemId"
	msgNoCurrentData         = "No data found for the requested items."
	msgNoHistoryData         = "No history data found for the requested item."
	msgNoHistoryInRange      = "No history data found within the specified time range."
	msgFailedDataCenters     = "Failed to fetch data centers"
	msgXIVAPINoResponse      = "No response from XIVAPI server"
	msgUniversalisNoResponse = "No response from Universalis API server"
)

// upstreamErrors は上流ごとのエラー応答の組み立て方。
type upstreamErrors struct {
	// name はログに出す上流の名前。
	name string
	// noResponse はレスポンスを受け取れなかった場合のメッセージ。
	noResponse string
	// message はエラーボディからメッセージを取り出す。
	message func(body []byte) string
}

var (
	xivapiErrors = upstreamErrors{
		name:       xivapi.UpstreamName,
		noResponse: msgXIVAPINoResponse,
		message:    xivapi.ErrorMessage,
	}
	universalisErrors = upstreamErrors{
		name:       universalis.UpstreamName,
		noResponse: msgUniversalisNoResponse,
		message:    universalis.ErrorMessage,
	}
)

// respondUpstreamError は上流呼び出しのエラーをクライアント向けのレスポンスに変換する。
//   - 上流が2xx以外を返した場合はそのステータスとボディから取り出したメッセージ
//   - レスポンスを受け取れなかった場合は500と上流ごとの固定メッセージ
//   - それ以外は500と汎用メッセージ
func (s *Server) respondUpstreamError(c *gin.Context, err error, u upstreamErrors) {
	fields := []zap.Field{
		zap.String("upstream", u.name),
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Error(err),
	}

	var statusErr *httpclient.StatusError
	switch {
	case errors.As(err, &statusErr):
		fields = append(fields, zap.Int("upstream_status", statusErr.StatusCode), zap.String("url", statusErr.URL))
		if statusErr.IsServerError() {
			s.logger.Error("上流APIがエラーを返しました", fields...)
		} else {
			s.logger.Warn("上流APIがエラーを返しました", fields...)
		}
		c.JSON(statusErr.StatusCode, gin.H{"message": u.message(statusErr.Body)})
	case errors.Is(err, httpclient.ErrNoResponse):
		s.logger.Error("上流APIから応答がありません", fields...)
		c.JSON(http.StatusInternalServerError, gin.H{"message": u.noResponse})
	default:
		s.logger.Error("上流APIの呼び出しで予期しないエラーが発生しました", fields...)
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgUnexpected})
	}
}

// dataCentersErrorMessage は /data-centers のエラーエンベロープに載せるメッセージを返す。
func dataCentersErrorMessage(err error) string {
	var (
		statusErr  *httpclient.StatusError
		unknownErr *universalis.UnknownWorldError
	)
	switch {
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Request failed with status code %d", statusErr.StatusCode)
	case errors.Is(err, httpclient.ErrNoResponse):
		return msgUniversalisNoResponse
	case errors.As(err, &unknownErr):
		return fmt.Sprintf("world %d referenced by data center %s was not found", unknownErr.WorldID, unknownErr.DataCenter)
	default:
		return msgFailedDataCenters
	}
}
