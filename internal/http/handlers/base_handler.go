// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taxifare/internal/modules/booking"
	"taxifare/internal/modules/fare"
	"taxifare/internal/modules/pricing"
	"taxifare/internal/modules/routes"
)

type errorResponse struct {
	Error  string               `json:"error"`
	Fields []booking.FieldError `json:"fields,omitempty"`
}

const maxIDLength = 64

// isValidID accepts uuids and other short slug-like ids.
func isValidID(v string) bool {
	if v == "" || len(v) > maxIDLength {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-' || c == '_' {
			continue
		}
		return false
	}
	return true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeDomainError(c *gin.Context, err error) {
	var verr *booking.ValidationError
	var serr *booking.SubmissionError
	switch {
	case errors.As(err, &verr):
		writeJSON(c, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.As(err, &serr):
		msg := "booking could not be submitted, please try again or call us"
		if serr.Reason != "" {
			msg = serr.Reason
		}
		writeError(c, http.StatusBadGateway, msg)
	case errors.Is(err, fare.ErrInvalidRequest),
		errors.Is(err, fare.ErrUnknownCategory),
		errors.Is(err, pricing.ErrInvalidTripType),
		errors.Is(err, routes.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, routes.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
