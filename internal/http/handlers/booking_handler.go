// README: Booking enquiry handler.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"taxifare/internal/modules/booking"
)

type BookingService interface {
	Submit(ctx context.Context, e booking.Enquiry) (booking.Receipt, error)
}

type BookingHandler struct {
	booking BookingService
}

func NewBookingHandler(svc BookingService) *BookingHandler {
	return &BookingHandler{booking: svc}
}

func (h *BookingHandler) Create(c *gin.Context) {
	var e booking.Enquiry
	if err := c.ShouldBindJSON(&e); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	receipt, err := h.booking.Submit(c.Request.Context(), e)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, receipt)
}
