package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "mentormatch/internal/errors"
	"mentormatch/internal/models"
	"mentormatch/internal/service"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	services *service.Services
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{services: services}
}

// statusFor maps the booking error taxonomy onto HTTP statuses. Every
// taxonomy error is recoverable by the caller; anything unknown is 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrOfferingNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrReservationNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrNotAvailable),
		errors.Is(err, apperrors.ErrFull),
		errors.Is(err, apperrors.ErrDuplicateBooking),
		errors.Is(err, apperrors.ErrNotPending),
		errors.Is(err, apperrors.ErrCodeRetryExhausted):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// Offerings handlers

// CreateOffering - POST /api/offerings
func (h *Handlers) CreateOffering(c *gin.Context) {
	var req models.CreateOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Offerings.Create(c.Request.Context(), &req)
	if err != nil {
		slog.Error("Failed to create offering", "error", err)
		respondError(c, err, "Failed to create offering")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListOfferings - GET /api/offerings
func (h *Handlers) ListOfferings(c *gin.Context) {
	response, err := h.services.Offerings.List(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list offerings", "error", err)
		respondError(c, err, "Failed to list offerings")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetOffering - GET /api/offerings/:id
// Returns the offering with its reservations.
func (h *Handlers) GetOffering(c *gin.Context) {
	detail, err := h.services.Offerings.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get offering")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Users handlers

// SelectRole - POST /api/users/select-role
func (h *Handlers) SelectRole(c *gin.Context) {
	var req models.SelectRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Users.SelectRole(c.Request.Context(), req.UserID, req.Role); err != nil {
		slog.Error("Failed to select role", "error", err, "user_id", req.UserID)
		respondError(c, err, "Failed to select role")
		return
	}

	c.Status(http.StatusOK)
}

// RegisterMentor - PATCH /api/users/:id/register-mentor
func (h *Handlers) RegisterMentor(c *gin.Context) {
	var req models.RegisterMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Users.RegisterMentor(c.Request.Context(), c.Param("id"), &req); err != nil {
		slog.Error("Failed to register mentor", "error", err, "user_id", c.Param("id"))
		respondError(c, err, "Failed to register mentor")
		return
	}

	c.Status(http.StatusOK)
}
