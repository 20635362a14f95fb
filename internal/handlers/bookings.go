package handlers

import (
	"log/slog"
	"net/http"

	"mentormatch/internal/models"

	"github.com/gin-gonic/gin"
)

// Bookings handlers

// BookOffering - POST /api/offerings/:id/book
// Reserve one seat; returns the booking code and payment deadline.
func (h *Handlers) BookOffering(c *gin.Context) {
	var req models.BookOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Bookings.Book(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			slog.Error("Failed to book offering", "error", err, "offering_id", c.Param("id"))
		}
		respondError(c, err, "Failed to book offering")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetCapacity - GET /api/offerings/:id/capacity
func (h *Handlers) GetCapacity(c *gin.Context) {
	response, err := h.services.Bookings.GetCapacity(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get capacity")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListReservations - GET /api/users/:id/reservations
func (h *Handlers) ListReservations(c *gin.Context) {
	response, err := h.services.Bookings.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		slog.Error("Failed to list reservations", "error", err)
		respondError(c, err, "Failed to list reservations")
		return
	}

	c.JSON(http.StatusOK, response)
}
