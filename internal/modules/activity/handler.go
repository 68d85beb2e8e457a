package activity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fitflow/internal/domain"
	"fitflow/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tasks", h.Inbox)
	rg.GET("/cases/:id/tasks", h.CaseTasks)
	rg.GET("/cases/:id/activity", h.CaseFeed)
}

func (h *Handler) Inbox(c *gin.Context) {
	role := domain.UserRole(c.GetString("role"))

	tasks, err := h.service.Inbox(c.Request.Context(), role)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tasks": tasks})
}

func (h *Handler) CaseTasks(c *gin.Context) {
	caseID, ok := paramID(c)
	if !ok {
		return
	}

	tasks, err := h.service.CaseTasks(c.Request.Context(), caseID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tasks": tasks})
}

func (h *Handler) CaseFeed(c *gin.Context) {
	caseID, ok := paramID(c)
	if !ok {
		return
	}

	feed, err := h.service.CaseFeed(c.Request.Context(), caseID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"activity": feed})
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid id")
		return 0, false
	}
	return id, true
}
