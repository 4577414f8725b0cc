package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Leonidos67/t-sync-sub000/internal/middleware"
	"github.com/Leonidos67/t-sync-sub000/internal/service"
)

type FeedHandler struct {
	svc *service.FeedService
}

func NewFeedHandler(db *gorm.DB) *FeedHandler {
	return &FeedHandler{svc: service.NewFeedService(db)}
}

// Global serves the chronological feed; anonymous callers get the same
// rows without viewer personalization.
func (h *FeedHandler) Global(c *gin.Context) {
	viewer, _ := middleware.ActorID(c)
	items, err := h.svc.Global(c.Request.Context(), viewer)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": items})
}

// Friends serves posts from actors the viewer follows. Auth required.
func (h *FeedHandler) Friends(c *gin.Context) {
	items, err := h.svc.Friends(c.Request.Context(), actorID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": items})
}

// Popular serves the like-ranked feed.
func (h *FeedHandler) Popular(c *gin.Context) {
	viewer, _ := middleware.ActorID(c)
	items, err := h.svc.Popular(c.Request.Context(), viewer)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": items})
}
