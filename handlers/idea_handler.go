package handlers

import (
	"net/http"

	"blog-platform/helper"
	"blog-platform/models"
	"blog-platform/services"

	"github.com/gin-gonic/gin"
)

type IdeaHandler struct {
	ideaService services.IdeaService
	Helper      *helper.HTTPHelper
}

func NewIdeaHandler(ideaService services.IdeaService, h *helper.HTTPHelper) *IdeaHandler {
	return &IdeaHandler{ideaService: ideaService, Helper: h}
}

func (h *IdeaHandler) GetIdeas(c *gin.Context) {
	var params models.IdeaListParams
	if !h.Helper.BindQuery(c, &params) {
		return
	}

	ideas, err := h.ideaService.GetIdeas(c.Request.Context(), params)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ideas)
}

func (h *IdeaHandler) GetIdea(c *gin.Context) {
	var params models.ViewerParams
	if !h.Helper.BindQuery(c, &params) {
		return
	}

	idea, err := h.ideaService.GetIdea(c.Request.Context(), c.Param("id"), params.UserID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, idea)
}

func (h *IdeaHandler) CreateIdea(c *gin.Context) {
	var req models.CreateIdeaRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	idea, err := h.ideaService.CreateIdea(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, idea)
}

func (h *IdeaHandler) UpdateIdea(c *gin.Context) {
	var req models.UpdateIdeaRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	idea, err := h.ideaService.UpdateIdea(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, idea)
}

func (h *IdeaHandler) DeleteIdea(c *gin.Context) {
	if err := h.ideaService.DeleteIdea(c.Request.Context(), c.Param("id")); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *IdeaHandler) ToggleLike(c *gin.Context) {
	var params models.LikeParams
	if !h.Helper.BindQuery(c, &params) {
		return
	}

	userID := params.UserID
	if userID == "" {
		userID = models.AnonymousUser
	}

	idea, err := h.ideaService.ToggleLike(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, idea)
}

func (h *IdeaHandler) AddComment(c *gin.Context) {
	var req models.CreateCommentRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	comment, err := h.ideaService.AddComment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *IdeaHandler) GetComments(c *gin.Context) {
	comments, err := h.ideaService.GetComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *IdeaHandler) GetAllTags(c *gin.Context) {
	tags, err := h.ideaService.GetAllTags(c.Request.Context())
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tags)
}
