package bidround

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
	g := rg.Group("/bid-rounds")
	{
		g.POST("", h.CreateRound)
		g.GET("/:id", h.GetByID)
		g.POST("/:id/bids", h.SubmitBid)
		g.POST("/:id/select", h.SelectVendor)
		g.POST("/:id/admin-approve", h.SetAdminApproval)
		g.POST("/:id/lock", h.Lock)
		g.POST("/:id/close", h.Close)
	}
	rg.GET("/cases/:id/bid-rounds", h.ListByCase)
}

func (h *Handler) CreateRound(c *gin.Context) {
	var req CreateRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	round, err := h.service.CreateRound(c.Request.Context(), actorID(c), actorRole(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, round)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	round, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, round)
}

func (h *Handler) ListByCase(c *gin.Context) {
	caseID, ok := paramID(c)
	if !ok {
		return
	}

	rounds, err := h.service.ListByCase(c.Request.Context(), caseID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bid_rounds": rounds})
}

func (h *Handler) SubmitBid(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req SubmitBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	round, err := h.service.SubmitBid(c.Request.Context(), actorID(c), actorRole(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, round)
}

func (h *Handler) SelectVendor(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req SelectVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	round, err := h.service.SelectVendor(c.Request.Context(), actorID(c), actorRole(c), id, req.VendorID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, round)
}

func (h *Handler) SetAdminApproval(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	round, err := h.service.SetAdminApproval(c.Request.Context(), actorID(c), actorRole(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, round)
}

func (h *Handler) Lock(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	round, err := h.service.Lock(c.Request.Context(), actorID(c), actorRole(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, round)
}

func (h *Handler) Close(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	round, err := h.service.Close(c.Request.Context(), actorRole(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, round)
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
	case errors.Is(err, domain.ErrRoundLocked):
		response.Error(c, http.StatusConflict, "ROUND_LOCKED", err.Error())
	case errors.Is(err, domain.ErrRoundClosed):
		response.Error(c, http.StatusConflict, "ROUND_CLOSED", err.Error())
	case errors.Is(err, domain.ErrNoVendorSelected):
		response.Error(c, http.StatusConflict, "NO_VENDOR_SELECTED", err.Error())
	case errors.Is(err, domain.ErrNotAdminApproved):
		response.Error(c, http.StatusConflict, "NOT_ADMIN_APPROVED", err.Error())
	case errors.Is(err, ErrNotApproved):
		response.Error(c, http.StatusConflict, "QUOTATION_NOT_APPROVED", err.Error())
	case errors.Is(err, ErrVendorNotInvited), errors.Is(err, ErrNoBidFromVendor),
		errors.Is(err, ErrNoVendors), errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
