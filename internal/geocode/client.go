package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"mapa-saude-api/internal/metrics"
)

var ErrNoResults = errors.New("geocoding returned no results")

// Client talks to the Google Maps Geocoding API. Callers treat geocoding as
// best-effort: any error here leaves the establishment's position unset.
type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: "https://maps.googleapis.com/maps/api",
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a free-text address to coordinates.
func (c *Client) Geocode(ctx context.Context, address string) (float64, float64, error) {
	if c.APIKey == "" {
		return 0, 0, errors.New("google maps api key not configured")
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", c.APIKey)
	params.Set("language", "pt-BR")
	params.Set("region", "BR")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/geocode/json?"+params.Encode(), nil)
	if err != nil {
		return 0, 0, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		metrics.GeocodeFailuresTotal.Inc()
		return 0, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.GeocodeFailuresTotal.Inc()
		return 0, 0, fmt.Errorf("geocoding http status %d", resp.StatusCode)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.GeocodeFailuresTotal.Inc()
		return 0, 0, err
	}

	if body.Status != "OK" || len(body.Results) == 0 {
		metrics.GeocodeFailuresTotal.Inc()
		if body.Status != "OK" {
			return 0, 0, fmt.Errorf("geocoding status %s", body.Status)
		}
		return 0, 0, ErrNoResults
	}

	loc := body.Results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}
