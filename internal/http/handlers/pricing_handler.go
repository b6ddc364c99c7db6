// README: Rate table handlers: public read, admin update.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taxifare/internal/modules/pricing"
)

type RateTableService interface {
	GetRateTable(ctx context.Context) pricing.RateTable
	SetRateTable(ctx context.Context, t pricing.RateTable) error
}

type PricingHandler struct {
	pricing RateTableService
}

func NewPricingHandler(svc RateTableService) *PricingHandler {
	return &PricingHandler{pricing: svc}
}

func (h *PricingHandler) Get(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.pricing.GetRateTable(c.Request.Context()).Entries())
}

type rateEntryReq struct {
	Category  string   `json:"category"`
	OneWay    *float64 `json:"oneWay"`
	RoundTrip *float64 `json:"roundTrip"`
}

// Update takes a partial list; categories left out keep their current rates.
// A failed push to the pricing backend answers 207: the local table changed,
// the backend did not.
func (h *PricingHandler) Update(c *gin.Context) {
	var body []rateEntryReq
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	ctx := c.Request.Context()
	table := h.pricing.GetRateTable(ctx)
	for _, e := range body {
		category, ok := pricing.ParseCategory(e.Category)
		if !ok {
			writeError(c, http.StatusBadRequest, "unknown category "+e.Category)
			return
		}
		r := table[category]
		if e.OneWay != nil {
			r.OneWay = *e.OneWay
		}
		if e.RoundTrip != nil {
			r.RoundTrip = *e.RoundTrip
		}
		if r.OneWay < 0 || r.RoundTrip < 0 {
			writeError(c, http.StatusBadRequest, "rates must not be negative")
			return
		}
		table[category] = r
	}

	err := h.pricing.SetRateTable(ctx, table)
	switch {
	case err == nil:
		writeJSON(c, http.StatusOK, gin.H{"rates": pricing.BackFill(table).Entries()})
	case errors.Is(err, pricing.ErrRemoteUpdate):
		writeJSON(c, http.StatusMultiStatus, gin.H{
			"rates":   pricing.BackFill(table).Entries(),
			"warning": "saved locally but the pricing backend rejected the update",
		})
	default:
		writeDomainError(c, err)
	}
}
