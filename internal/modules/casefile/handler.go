package casefile

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fitflow/internal/domain"
	"fitflow/internal/pkg/response"
	"fitflow/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/cases")
	{
		g.POST("", h.CreateLead)
		g.GET("", h.List)
		g.GET("/:id", h.GetByID)
		g.POST("/:id/advance", h.AdvanceStatus)
		g.POST("/:id/lost", h.MarkLost)
		g.GET("/:id/documents", h.ListDocuments)

		g.POST("/:id/boqs", h.CreateBOQ)
		g.GET("/:id/boqs", h.ListBOQs)
	}
	rg.PUT("/boqs/:id", h.UpdateBOQ)
}

func (h *Handler) CreateLead(c *gin.Context) {
	var req CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	out, err := h.service.CreateLead(c.Request.Context(), actorRole(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, out)
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	f := repository.CaseFilters{Status: c.Query("status")}
	if v := c.Query("is_project"); v != "" {
		b := v == "true"
		f.IsProject = &b
	}

	cases, total, err := h.service.List(c.Request.Context(), f, page, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cases": cases, "total": total})
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	out, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) AdvanceStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	out, err := h.service.AdvanceStatus(c.Request.Context(), actorID(c), actorRole(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) MarkLost(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	out, err := h.service.MarkLost(c.Request.Context(), actorID(c), actorRole(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) ListDocuments(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	docs, err := h.service.ListDocuments(c.Request.Context(), actorRole(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"documents": docs})
}

func (h *Handler) CreateBOQ(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req BOQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	b, err := h.service.CreateBOQ(c.Request.Context(), actorRole(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) ListBOQs(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	boqs, err := h.service.ListBOQs(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"boqs": boqs})
}

func (h *Handler) UpdateBOQ(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req BOQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	b, err := h.service.UpdateBOQ(c.Request.Context(), actorRole(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
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
	case errors.Is(err, domain.ErrBOQLocked):
		response.Error(c, http.StatusConflict, "BOQ_LOCKED", err.Error())
	case errors.Is(err, domain.ErrVersionConflict):
		response.Error(c, http.StatusConflict, "VERSION_CONFLICT", err.Error())
	case errors.Is(err, ErrNotPresale):
		response.Error(c, http.StatusConflict, "ILLEGAL_TRANSITION", err.Error())
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
