package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Leonidos67/t-sync-sub000/internal/model"
	"github.com/Leonidos67/t-sync-sub000/internal/service"
)

type UserHandler struct {
	svc     *service.UserService
	follows *service.FollowService
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{
		svc:     service.NewUserService(db),
		follows: service.NewFollowService(db),
	}
}

// userView is the public projection of an actor in listings and profiles.
type userView struct {
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Role        string `json:"role,omitempty"`
}

func toUserViews(users []model.User) []userView {
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, userView{
			Handle:      u.Handle,
			DisplayName: u.DisplayName,
			AvatarURL:   u.AvatarURL,
			Role:        u.Role,
		})
	}
	return out
}

// Profile returns public display attributes plus follow counters.
func (h *UserHandler) Profile(c *gin.Context) {
	u, err := h.svc.Profile(c.Request.Context(), c.Param("handle"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"handle":          u.Handle,
		"display_name":    u.DisplayName,
		"avatar_url":      u.AvatarURL,
		"role":            u.Role,
		"follower_count":  u.FollowerCount,
		"following_count": u.FollowingCount,
	})
}
