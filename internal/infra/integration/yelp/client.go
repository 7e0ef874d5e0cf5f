package yelp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/search"
)

const (
	DefaultBaseURL = "https://api.yelp.com"

	maxRadiusMeters = 40000
	maxLimit        = 50
)

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(apiKey, baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *Client) Name() string { return "yelp" }

func (c *Client) Search(ctx context.Context, req search.Request) ([]search.Record, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("yelp: API key not configured")
	}

	cats := search.ResolveCategories(req.Categories)
	aliases := make([]string, 0, len(cats))
	for _, cat := range cats {
		aliases = append(aliases, cat.YelpAlias)
	}

	q := url.Values{}
	if coords := req.Location.Coordinates; coords != nil {
		q.Set("latitude", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
		q.Set("longitude", strconv.FormatFloat(coords.Lng, 'f', -1, 64))
	} else {
		q.Set("location", req.Location.ZipCode)
	}
	if radius := min(req.RadiusMeters(), maxRadiusMeters); radius > 0 {
		q.Set("radius", strconv.Itoa(radius))
	}
	if len(aliases) > 0 {
		q.Set("categories", strings.Join(aliases, ","))
	}
	q.Set("limit", strconv.Itoa(min(req.EffectiveLimit(), maxLimit)))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v3/businesses/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("yelp: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Code != "" {
			return nil, fmt.Errorf("yelp: status %d: %s: %s", resp.StatusCode, apiErr.Error.Code, apiErr.Error.Description)
		}
		return nil, fmt.Errorf("yelp: status %d: %s", resp.StatusCode, string(body))
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("yelp: decode: %w", err)
	}

	c.logger.Debug("yelp answered",
		zap.Int("results", len(result.Businesses)),
		zap.Int("total", result.Total),
	)

	out := make([]search.Record, 0, len(result.Businesses))
	for _, b := range result.Businesses {
		out = append(out, toRecord(b, cats))
	}
	return out, nil
}

func toRecord(b business, requested []search.Category) search.Record {
	phone := b.DisplayPhone
	if phone == "" {
		phone = b.Phone
	}
	address := strings.Join(b.Location.DisplayAddress, ", ")
	if address == "" {
		address = b.Location.Address1
	}
	return search.Record{
		Name:        b.Name,
		Address:     address,
		City:        b.Location.City,
		ZipCode:     b.Location.ZipCode,
		Phone:       phone,
		Industry:    industryFor(b.Categories, requested),
		ReviewCount: b.ReviewCount,
		Rating:      b.Rating,
		Latitude:    b.Coordinates.Latitude,
		Longitude:   b.Coordinates.Longitude,
	}
}

// industryFor prefers the requested category the business matched, so
// industries line up with the other providers' labels.
func industryFor(got []category, requested []search.Category) string {
	for _, r := range requested {
		for _, g := range got {
			if g.Alias == r.YelpAlias {
				return r.Label
			}
		}
	}
	if len(requested) == 1 {
		return requested[0].Label
	}
	if len(got) > 0 {
		return strings.ToLower(got[0].Title)
	}
	return ""
}
