package execplan

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
	g := rg.Group("/cases/:id/plan")
	{
		g.POST("", h.SubmitPlan)
		g.POST("/approve", h.Approve)
		g.POST("/reject", h.Reject)
		g.POST("/expenses", h.RecordExpense)
	}
}

func (h *Handler) SubmitPlan(c *gin.Context) {
	caseID, ok := paramCaseID(c)
	if !ok {
		return
	}

	var req SubmitPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	out, err := h.service.SubmitPlan(c.Request.Context(), actorID(c), actorRole(c), caseID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, out)
}

func (h *Handler) Approve(c *gin.Context) {
	caseID, ok := paramCaseID(c)
	if !ok {
		return
	}

	out, err := h.service.Approve(c.Request.Context(), actorID(c), actorRole(c), caseID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Reject(c *gin.Context) {
	caseID, ok := paramCaseID(c)
	if !ok {
		return
	}

	out, err := h.service.Reject(c.Request.Context(), actorID(c), actorRole(c), caseID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) RecordExpense(c *gin.Context) {
	caseID, ok := paramCaseID(c)
	if !ok {
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	out, err := h.service.RecordExpense(c.Request.Context(), actorID(c), actorRole(c), caseID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func paramCaseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid case id")
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
	case errors.Is(err, ErrCaseNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrPlanLocked):
		response.Error(c, http.StatusConflict, "PLAN_LOCKED", err.Error())
	case errors.Is(err, domain.ErrVersionConflict):
		response.Error(c, http.StatusConflict, "VERSION_CONFLICT", err.Error())
	case errors.Is(err, ErrResubmit):
		response.Error(c, http.StatusConflict, "PLAN_ALREADY_SUBMITTED", err.Error())
	case errors.Is(err, ErrNoPlan), errors.Is(err, ErrNoCostCenter):
		response.Error(c, http.StatusConflict, "NO_PLAN", err.Error())
	case errors.Is(err, ErrNoDays), errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
