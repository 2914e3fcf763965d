package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"riskspin-backend/internal/models"
	"riskspin-backend/internal/services"
)

type RankingSnapshotReader interface {
	GetCachedRanking(ctx context.Context) ([]models.RankingRow, error)
}

type RankingHandler struct {
	board *services.Board
	cache RankingSnapshotReader
}

func NewRankingHandler(board *services.Board, cache RankingSnapshotReader) *RankingHandler {
	return &RankingHandler{
		board: board,
		cache: cache,
	}
}

func (h *RankingHandler) GetRanking(c *gin.Context) {
	rows := h.board.Rows()
	updatedAt := h.board.UpdatedAt()

	// nothing polled yet on this instance
	if updatedAt.IsZero() && h.cache != nil {
		cached, err := h.cache.GetCachedRanking(c.Request.Context())
		if err != nil {
			log.Printf("Failed to read cached ranking: %v", err)
		} else if cached != nil {
			rows = cached
		}
	}

	resp := gin.H{
		"success": true,
		"ranking": models.Leaderboard(rows),
		"count":   len(rows),
	}
	if !updatedAt.IsZero() {
		resp["updated_at"] = updatedAt.Unix()
	}
	c.JSON(http.StatusOK, resp)
}
