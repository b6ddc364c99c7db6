package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"taxifare/internal/types"
)

// PlaceholderAPIKey mirrors the sample-env sentinel; a client holding it never calls out.
const PlaceholderAPIKey = "your-api-key-here"

var (
	ErrNotConfigured = errors.New("routing api key not configured")
	ErrNoRoute       = errors.New("no route found")
)

// ORSClient talks to openrouteservice directions and geocode autocomplete.
type ORSClient struct {
	baseURL string
	apiKey  string
	country string
	http    *http.Client
}

func NewORSClient(baseURL, apiKey, country string, httpClient *http.Client) *ORSClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ORSClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(apiKey),
		country: country,
		http:    httpClient,
	}
}

func (c *ORSClient) configured() bool {
	return c.apiKey != "" && c.apiKey != PlaceholderAPIKey
}

type orsDirectionsResponse struct {
	Features []struct {
		Properties struct {
			Segments []struct {
				Distance float64 `json:"distance"`
			} `json:"segments"`
		} `json:"properties"`
	} `json:"features"`
}

// RouteDistanceMeters returns the first segment distance of the driving route.
func (c *ORSClient) RouteDistanceMeters(ctx context.Context, from, to types.Point) (float64, error) {
	if !c.configured() {
		return 0, ErrNotConfigured
	}

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("start", lonLat(from))
	q.Set("end", lonLat(to))
	endpoint := c.baseURL + "/v2/directions/driving-car?" + q.Encode()

	var out orsDirectionsResponse
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return 0, fmt.Errorf("ors directions: %w", err)
	}
	if len(out.Features) == 0 || len(out.Features[0].Properties.Segments) == 0 {
		return 0, ErrNoRoute
	}
	return out.Features[0].Properties.Segments[0].Distance, nil
}

type orsAutocompleteResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Name  string `json:"name"`
			Label string `json:"label"`
		} `json:"properties"`
	} `json:"features"`
}

// Autocomplete returns place suggestions for a text prefix, restricted to the configured country.
func (c *ORSClient) Autocomplete(ctx context.Context, text string) ([]Suggestion, error) {
	if !c.configured() {
		return nil, ErrNotConfigured
	}

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("text", text)
	if c.country != "" {
		q.Set("boundary.country", c.country)
	}
	endpoint := c.baseURL + "/geocode/autocomplete?" + q.Encode()

	var out orsAutocompleteResponse
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return nil, fmt.Errorf("ors autocomplete: %w", err)
	}

	suggestions := make([]Suggestion, 0, len(out.Features))
	for _, f := range out.Features {
		s := Suggestion{Name: f.Properties.Name, Label: f.Properties.Label}
		if len(f.Geometry.Coordinates) == 2 {
			s.Point = &types.Point{Lng: f.Geometry.Coordinates[0], Lat: f.Geometry.Coordinates[1]}
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, nil
}

func (c *ORSClient) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json, application/geo+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected response status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

func lonLat(p types.Point) string {
	return strconv.FormatFloat(p.Lng, 'f', 6, 64) + "," + strconv.FormatFloat(p.Lat, 'f', 6, 64)
}
