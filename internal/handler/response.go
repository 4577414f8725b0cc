package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Leonidos67/t-sync-sub000/internal/apperr"
	"github.com/Leonidos67/t-sync-sub000/internal/middleware"
	"github.com/Leonidos67/t-sync-sub000/internal/pkg"
)

// respondErr maps an operation error onto the surface contract: a status
// code, a machine-readable category and a human message.
func respondErr(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError && pkg.Sugar != nil {
		pkg.Sugar.Errorw("internal error",
			"path", c.Request.URL.Path, "err", err)
	}
	c.JSON(status, gin.H{
		"error": gin.H{
			"category": apperr.Category(err),
			"message":  err.Error(),
		},
	})
}

// actorID extracts the verified actor from context. Routes behind the
// required-auth middleware always have one.
func actorID(c *gin.Context) uint64 {
	id, _ := middleware.ActorID(c)
	return id
}
