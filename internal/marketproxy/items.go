package marketproxy

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleSearchItems はアイテムを名前で検索するハンドラを返す。
// GET /items?item=<name>
func (s *Server) handleSearchItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		names, ok := c.GetQueryArray("item")
		if !ok || len(names) == 0 || names[0] == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": msgMissingItem})
			return
		}
		if len(names) > 1 {
			c.JSON(http.StatusBadRequest, gin.H{"message": msgItemNotString})
			return
		}

		items, err := s.xivapi.SearchItems(c.Request.Context(), names[0])
		if err != nil {
			s.respondUpstreamError(c, err, xivapiErrors)
			return
		}
		if len(items) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": msgNoItems})
			return
		}

		c.JSON(http.StatusOK, items)
	}
}
