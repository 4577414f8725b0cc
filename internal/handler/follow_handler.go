package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Leonidos67/t-sync-sub000/internal/service"
)

type FollowHandler struct {
	svc *service.FollowService
}

func NewFollowHandler(db *gorm.DB) *FollowHandler {
	return &FollowHandler{svc: service.NewFollowService(db)}
}

// Follow creates the edge viewer -> :handle.
func (h *FollowHandler) Follow(c *gin.Context) {
	if err := h.svc.Follow(c.Request.Context(), actorID(c), c.Param("handle")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "following"})
}

// Unfollow removes the edge if present; removing a missing edge still
// succeeds.
func (h *FollowHandler) Unfollow(c *gin.Context) {
	if err := h.svc.Unfollow(c.Request.Context(), actorID(c), c.Param("handle")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "not following"})
}

func (h *FollowHandler) ListFollowers(c *gin.Context) {
	users, err := h.svc.ListFollowers(c.Request.Context(), c.Param("handle"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": toUserViews(users)})
}

func (h *FollowHandler) ListFollowing(c *gin.Context) {
	users, err := h.svc.ListFollowing(c.Request.Context(), c.Param("handle"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": toUserViews(users)})
}
