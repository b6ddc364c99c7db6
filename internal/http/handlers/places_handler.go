// README: Place autocomplete proxy for the pickup/drop inputs.
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taxifare/internal/maps"
)

type PlacesSearcher interface {
	Autocomplete(ctx context.Context, text string) ([]maps.Suggestion, error)
}

const minAutocompleteChars = 2

type PlacesHandler struct {
	places PlacesSearcher
}

// NewPlacesHandler accepts a nil searcher; suggestions are then always empty.
func NewPlacesHandler(places PlacesSearcher) *PlacesHandler {
	return &PlacesHandler{places: places}
}

func (h *PlacesHandler) Autocomplete(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if h.places == nil || len([]rune(q)) < minAutocompleteChars {
		writeJSON(c, http.StatusOK, []maps.Suggestion{})
		return
	}
	list, err := h.places.Autocomplete(c.Request.Context(), q)
	if err != nil {
		writeError(c, http.StatusBadGateway, "place search unavailable")
		return
	}
	writeJSON(c, http.StatusOK, list)
}
