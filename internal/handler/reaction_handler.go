package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Leonidos67/t-sync-sub000/internal/repository/redis"
	"github.com/Leonidos67/t-sync-sub000/internal/service"
)

type ReactionHandler struct {
	svc *service.ReactionService
}

func NewReactionHandler(db *gorm.DB, cache *redis.ReactionCacheRepository, lock *redis.DistLock) *ReactionHandler {
	return &ReactionHandler{svc: service.NewReactionService(db, cache, lock)}
}

// Toggle flips the caller's membership in the :kind set of post :id and
// replies with the new state and cardinality.
func (h *ReactionHandler) Toggle(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	res, err := h.svc.Toggle(c.Request.Context(), actorID(c), postID, c.Param("kind"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Count reads one reaction set's cardinality.
func (h *ReactionHandler) Count(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	cnt, err := h.svc.Count(c.Request.Context(), actorID(c), postID, c.Param("kind"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": cnt})
}
