package marketproxy

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nao1215/xivmarket/pkg/middleware"
)

// jsonContentType は上流のボディをそのまま返すときのContent-Type。
const jsonContentType = "application/json; charset=utf-8"

// marketBoardParams はマーケットボード系エンドポイントの必須パラメーターを取り出す。
// どちらかが欠けていれば400を返してfalseを返す。
func marketBoardParams(c *gin.Context) (worldDcRegion, itemID string, ok bool) {
	worldDcRegion = c.Query("worldDcRegion")
	itemID = c.Query("itemId")
	if worldDcRegion == "" || itemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgMissingMarketParams})
		return "", "", false
	}
	return worldDcRegion, itemID, true
}

// handleMarketBoardCurrent は現在の出品情報を返すハンドラを返す。
// GET /market-board-current?worldDcRegion=<name>&itemId=<ids>
func (s *Server) handleMarketBoardCurrent() gin.HandlerFunc {
	return func(c *gin.Context) {
		worldDcRegion, itemID, ok := marketBoardParams(c)
		if !ok {
			return
		}

		body, err := s.universalis.CurrentData(c.Request.Context(), worldDcRegion, itemID)
		if err != nil {
			s.respondUpstreamError(c, err, universalisErrors)
			return
		}
		if isEmptyBody(body) {
			c.JSON(http.StatusNotFound, gin.H{"message": msgNoCurrentData})
			return
		}

		c.Data(http.StatusOK, jsonContentType, body)
	}
}

// handleMarketBoardHistory は取引履歴を返すハンドラを返す。
// GET /market-board-history?worldDcRegion=<name>&itemId=<id>&entriesWithin=<seconds>
func (s *Server) handleMarketBoardHistory() gin.HandlerFunc {
	return func(c *gin.Context) {
		worldDcRegion, itemID, ok := marketBoardParams(c)
		if !ok {
			return
		}

		body, err := s.universalis.History(c.Request.Context(), worldDcRegion, itemID, c.Query("entriesWithin"))
		if err != nil {
			s.respondUpstreamError(c, err, universalisErrors)
			return
		}
		if isEmptyBody(body) {
			c.JSON(http.StatusNotFound, gin.H{"message": msgNoHistoryData})
			return
		}

		var history map[string]json.RawMessage
		if err := json.Unmarshal(body, &history); err != nil || history == nil {
			s.logger.Error("取引履歴のボディがオブジェクトではありません",
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"message": msgUnexpected})
			return
		}

		if hasEntries(history["entries"]) {
			c.Data(http.StatusOK, jsonContentType, body)
			return
		}

		message, err := json.Marshal(msgNoHistoryInRange)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": msgUnexpected})
			return
		}
		history["message"] = message
		c.JSON(http.StatusOK, history)
	}
}

// isEmptyBody は上流のボディが空（0バイト、null、空文字列）かどうかを判定する。
func isEmptyBody(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) == 0 ||
		bytes.Equal(trimmed, []byte("null")) ||
		bytes.Equal(trimmed, []byte(`""`))
}

// hasEntries は履歴の entries が1件以上あるかどうかを判定する。
// 配列以外の値はそのまま返すため、件数ありとして扱う。
func hasEntries(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return true
	}
	return len(entries) > 0
}
