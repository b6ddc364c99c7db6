// README: Fare estimate handler for the public estimator form.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taxifare/internal/modules/fare"
	"taxifare/internal/modules/pricing"
)

type FareEstimator interface {
	Estimate(ctx context.Context, req fare.Request) (fare.Result, error)
}

type FareHandler struct {
	fare FareEstimator
	loc  *time.Location
}

func NewFareHandler(svc FareEstimator, loc *time.Location) *FareHandler {
	return &FareHandler{fare: svc, loc: loc}
}

// estimateReq mirrors the estimator form. ScheduledAt (RFC 3339) wins over Date/Time.
type estimateReq struct {
	Pickup      string `json:"pickup"`
	Drop        string `json:"drop"`
	Category    string `json:"category"`
	TripType    string `json:"tripType"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	ScheduledAt string `json:"scheduledAt"`
}

func (r estimateReq) toRequest(loc *time.Location) (fare.Request, error) {
	tripType, err := pricing.ParseTripType(r.TripType)
	if err != nil {
		return fare.Request{}, err
	}
	category, ok := pricing.ParseCategory(r.Category)
	if !ok {
		// Unrecognised names fall through to the rate lookup, which rejects them.
		category = pricing.Category(r.Category)
	}

	var at *time.Time
	if r.ScheduledAt != "" {
		if t, err := time.Parse(time.RFC3339, r.ScheduledAt); err == nil {
			at = &t
		}
	}
	if at == nil {
		at = pricing.ParseScheduledAt(r.Date, r.Time, loc)
	}

	return fare.Request{
		PickupText:  r.Pickup,
		DropText:    r.Drop,
		Category:    category,
		TripType:    tripType,
		ScheduledAt: at,
	}, nil
}

func (h *FareHandler) Estimate(c *gin.Context) {
	var body estimateReq
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req, err := body.toRequest(h.loc)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	res, err := h.fare.Estimate(c.Request.Context(), req)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}
