package procurement

import (
	"errors"
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
	rg.GET("/cases/:id/procurement/unscheduled", h.ListUnscheduled)
	rg.GET("/cases/:id/procurement", h.ListByCase)
	rg.POST("/cases/:id/procurement", h.CreatePlan)

	g := rg.Group("/procurement")
	{
		g.POST("/:id/delivered", h.MarkDelivered)
		g.POST("/:id/invoiced", h.MarkInvoiced)
	}
}

func (h *Handler) ListUnscheduled(c *gin.Context) {
	caseID, ok := paramID(c)
	if !ok {
		return
	}

	lines, err := h.service.ListUnscheduled(c.Request.Context(), caseID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unscheduled": lines})
}

func (h *Handler) ListByCase(c *gin.Context) {
	caseID, ok := paramID(c)
	if !ok {
		return
	}

	plans, err := h.service.ListByCase(c.Request.Context(), caseID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"procurement_plans": plans})
}

func (h *Handler) CreatePlan(c *gin.Context) {
	caseID, ok := paramID(c)
	if !ok {
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	p, err := h.service.CreatePlan(c.Request.Context(), actorID(c), actorRole(c), caseID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) MarkDelivered(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	p, err := h.service.MarkDelivered(c.Request.Context(), actorRole(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) MarkInvoiced(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	p, err := h.service.MarkInvoiced(c.Request.Context(), actorRole(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid id")
		return 0, false
	}
	return id, true
}

func actorID(c *gin.Context) int64 {
	return c.GetInt64("user_id")
}

func actorRole(c *gin.Context) domain.UserRole {
	return domain.UserRole(c.GetString("role"))
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrAlreadyScheduled):
		response.Error(c, http.StatusConflict, "ALREADY_SCHEDULED", err.Error())
	case errors.Is(err, domain.ErrIllegalTransition):
		response.Error(c, http.StatusConflict, "ILLEGAL_TRANSITION", err.Error())
	case errors.Is(err, ErrPlanNotActive):
		response.Error(c, http.StatusConflict, "PLAN_NOT_ACTIVE", err.Error())
	case errors.Is(err, ErrNotInPlan), errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
