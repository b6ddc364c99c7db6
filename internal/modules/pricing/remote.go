// README: HTTP client for the pricing backend ({base}/pricing, bearer token on writes).
package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type HTTPRemote struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewHTTPRemote(baseURL, token string, httpClient *http.Client) *HTTPRemote {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPRemote{baseURL: strings.TrimRight(baseURL, "/"), token: token, http: httpClient}
}

func (r *HTTPRemote) Fetch(ctx context.Context) (RateTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/pricing", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch pricing: status %d", resp.StatusCode)
	}

	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode pricing: %w", err)
	}
	return FromRecords(records), nil
}

func (r *HTTPRemote) Push(ctx context.Context, t RateTable) error {
	body, err := json.Marshal(t.Records())
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, r.baseURL+"/pricing", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("update pricing: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}
