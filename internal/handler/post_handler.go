package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Leonidos67/t-sync-sub000/internal/apperr"
	"github.com/Leonidos67/t-sync-sub000/internal/service"
)

type PostHandler struct {
	svc *service.PostService
}

func NewPostHandler(db *gorm.DB) *PostHandler {
	return &PostHandler{svc: service.NewPostService(db)}
}

type createPostReq struct {
	ClubID     uint64 `json:"club_id"` // 0 = post as yourself
	Text       string `json:"text"`
	ImageURL   string `json:"image_url"`
	Location   string `json:"location"`
	Visibility string `json:"visibility"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var req createPostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apperr.InvalidInput("invalid params"))
		return
	}

	actor := actorID(c)
	author := service.UserAuthor(actor)
	if req.ClubID != 0 {
		author = service.ClubAuthor(req.ClubID)
	}

	post, err := h.svc.CreatePost(c.Request.Context(), actor, service.CreatePostInput{
		Author:     author,
		Text:       req.Text,
		ImageURL:   req.ImageURL,
		Location:   req.Location,
		Visibility: req.Visibility,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.svc.DeletePost(c.Request.Context(), actorID(c), postID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}
