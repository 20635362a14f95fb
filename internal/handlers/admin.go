package handlers

import (
	"log/slog"
	"net/http"

	"mentormatch/internal/models"

	"github.com/gin-gonic/gin"
)

// Admin handlers

// VerifyOffering - PATCH /api/admin/offerings/verify
func (h *Handlers) VerifyOffering(c *gin.Context) {
	var req models.VerifyOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Offerings.Verify(c.Request.Context(), req.OfferingID); err != nil {
		slog.Error("Failed to verify offering", "error", err, "offering_id", req.OfferingID)
		respondError(c, err, "Failed to verify offering")
		return
	}

	c.Status(http.StatusOK)
}

// RejectOffering - PATCH /api/admin/offerings/reject
func (h *Handlers) RejectOffering(c *gin.Context) {
	var req models.RejectOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Offerings.Reject(c.Request.Context(), req.OfferingID, req.Reason); err != nil {
		slog.Error("Failed to reject offering", "error", err, "offering_id", req.OfferingID)
		respondError(c, err, "Failed to reject offering")
		return
	}

	c.Status(http.StatusOK)
}

// ReviewReservation - PATCH /api/admin/reservations/review
// Approve or reject a pending payment.
func (h *Handlers) ReviewReservation(c *gin.Context) {
	var req models.ReviewReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Bookings.Review(c.Request.Context(), req.ReservationID, req.Approve); err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			slog.Error("Failed to review reservation", "error", err, "reservation_id", req.ReservationID)
		}
		respondError(c, err, "Failed to review reservation")
		return
	}

	c.Status(http.StatusOK)
}

// RunExpirySweep - POST /api/admin/sweeps/expiry
// On-demand trigger for the sweep the jobs binary runs on a timer.
func (h *Handlers) RunExpirySweep(c *gin.Context) {
	if err := h.services.Lifecycle.RunExpirySweep(c.Request.Context()); err != nil {
		slog.Error("Expiry sweep failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Expiry sweep failed"})
		return
	}

	c.Status(http.StatusOK)
}

// RunStatusReconciliation - POST /api/admin/sweeps/reconcile
func (h *Handlers) RunStatusReconciliation(c *gin.Context) {
	if err := h.services.Lifecycle.RunStatusReconciliation(c.Request.Context()); err != nil {
		slog.Error("Status reconciliation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Status reconciliation failed"})
		return
	}

	c.Status(http.StatusOK)
}
