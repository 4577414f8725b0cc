package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Leonidos67/t-sync-sub000/internal/apperr"
	"github.com/Leonidos67/t-sync-sub000/internal/service"
)

type ClubHandler struct {
	svc *service.ClubService
}

func NewClubHandler(db *gorm.DB) *ClubHandler {
	return &ClubHandler{svc: service.NewClubService(db)}
}

type clubCreateReq struct {
	Name        string `json:"name"`
	Handle      string `json:"handle"`
	Description string `json:"description"`
}

func (h *ClubHandler) Create(c *gin.Context) {
	var req clubCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apperr.InvalidInput("invalid params"))
		return
	}
	club, err := h.svc.CreateClub(c.Request.Context(), actorID(c), req.Name, req.Handle, req.Description)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, club)
}

// Get resolves a club by numeric id or by handle.
func (h *ClubHandler) Get(c *gin.Context) {
	club, err := h.svc.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	members, err := h.svc.MemberIDs(c.Request.Context(), club.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"club": club, "member_ids": members})
}

func (h *ClubHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *ClubHandler) Join(c *gin.Context) {
	if err := h.svc.Join(c.Request.Context(), actorID(c), clubID(c)); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "joined"})
}

func (h *ClubHandler) Leave(c *gin.Context) {
	if err := h.svc.Leave(c.Request.Context(), actorID(c), clubID(c)); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "left"})
}

func (h *ClubHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), actorID(c), clubID(c)); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

type appearanceReq struct {
	ShowCreator *bool `json:"show_creator" binding:"required"`
}

func (h *ClubHandler) UpdateAppearance(c *gin.Context) {
	var req appearanceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apperr.InvalidInput("invalid params"))
		return
	}
	if err := h.svc.UpdateAppearance(c.Request.Context(), actorID(c), clubID(c), *req.ShowCreator); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "updated"})
}

type actionButtonReq struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Label string `json:"label"`
}

func (h *ClubHandler) UpdateActionButton(c *gin.Context) {
	var req actionButtonReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apperr.InvalidInput("invalid params"))
		return
	}
	if err := h.svc.UpdateActionButton(c.Request.Context(), actorID(c), clubID(c), req.Kind, req.Value, req.Label); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "updated"})
}

type avatarReq struct {
	URL string `json:"url"`
}

func (h *ClubHandler) SetAvatar(c *gin.Context) {
	var req avatarReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apperr.InvalidInput("invalid params"))
		return
	}
	if err := h.svc.SetAvatar(c.Request.Context(), actorID(c), clubID(c), req.URL); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "updated"})
}

func (h *ClubHandler) ClearAvatar(c *gin.Context) {
	if err := h.svc.ClearAvatar(c.Request.Context(), actorID(c), clubID(c)); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "cleared"})
}

func clubID(c *gin.Context) uint64 {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	return id
}
