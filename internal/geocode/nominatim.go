package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nimbusview/weather-backend/internal/common"
)

// minQueryLen is the shortest place-name query worth sending upstream.
// Shorter queries return an empty candidate list without calling out.
const minQueryLen = 3

// Candidate is one geocoding match, ordered by upstream relevance.
type Candidate struct {
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	City        string  `json:"city,omitempty"`
	Country     string  `json:"country,omitempty"`
}

// Client resolves free-text place names against the OSM Nominatim API.
// It is consumed by the HTTP layer only; the weather core never geocodes.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limit      int
}

func NewClient(client *http.Client) *Client {
	return &Client{
		httpClient: client,
		baseURL:    "https://nominatim.openstreetmap.org/search",
		userAgent:  "weather-backend/1.0",
		limit:      5,
	}
}

// Search returns up to five candidates for a free-text place name.
// Queries shorter than three characters yield an empty list, never an
// error and never an upstream call.
func (c *Client) Search(ctx context.Context, query string) ([]Candidate, error) {
	if len(query) < minQueryLen {
		return []Candidate{}, nil
	}

	values := url.Values{}
	values.Set("format", "json")
	values.Set("city", query)
	values.Set("limit", strconv.Itoa(c.limit))
	values.Set("addressdetails", "1")

	u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding failed: status %d", resp.StatusCode)
	}

	var payload []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
		Address     struct {
			City    string `json:"city"`
			Town    string `json:"town"`
			Village string `json:"village"`
			Country string `json:"country"`
		} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding geocoding response: %w", err)
	}

	candidates := make([]Candidate, 0, len(payload))
	for _, r := range payload {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lon, lonErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lonErr != nil {
			continue
		}

		city := common.FirstNonEmpty(r.Address.City, r.Address.Town, r.Address.Village)

		candidates = append(candidates, Candidate{
			DisplayName: r.DisplayName,
			Lat:         lat,
			Lon:         lon,
			City:        city,
			Country:     r.Address.Country,
		})
	}

	return candidates, nil
}
