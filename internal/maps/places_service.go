package maps

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"googlemaps.github.io/maps"

	"taxifare/internal/types"
)

// Suggestion is one autocomplete candidate. Point is nil when the provider
// does not return coordinates with its predictions.
type Suggestion struct {
	Name  string       `json:"name"`
	Label string       `json:"label"`
	Point *types.Point `json:"coordinates,omitempty"`
}

// PlacesService handles interactions with Google Places API.
type PlacesService struct {
	client  *maps.Client
	country string
}

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey, country string, httpClient *http.Client) (*PlacesService, error) {
	client, err := maps.NewClient(clientOptions(apiKey, httpClient)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client, country: strings.ToLower(country)}, nil
}

// Autocomplete returns city predictions for the typed prefix.
func (s *PlacesService) Autocomplete(ctx context.Context, text string) ([]Suggestion, error) {
	r := &maps.PlaceAutocompleteRequest{
		Input: text,
		Types: maps.AutocompletePlaceTypeCities,
	}
	if s.country != "" {
		r.Components = map[maps.Component][]string{maps.ComponentCountry: {s.country}}
	}

	resp, err := s.client.PlaceAutocomplete(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	results := make([]Suggestion, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		name := p.StructuredFormatting.MainText
		if name == "" {
			name = p.Description
		}
		results = append(results, Suggestion{Name: name, Label: p.Description})
	}
	return results, nil
}
