package googleplaces

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/leadlocal/internal/search"
)

const DefaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// Search results carry no website or phone; each place needs a details call.
const (
	detailsFields      = "website,formatted_phone_number,international_phone_number"
	detailsConcurrency = 5
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

func (c *Client) Name() string { return "google_places" }

// Search runs one query per requested category. Coordinates use Nearby
// Search; a zip code falls back to Text Search.
func (c *Client) Search(ctx context.Context, req search.Request) ([]search.Record, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("google places: API key not configured")
	}

	cats := search.ResolveCategories(req.Categories)
	if len(cats) == 0 {
		cats = []search.Category{{Label: "", PlacesType: "establishment"}}
	}

	var (
		out []search.Record
		ids []string
	)
	for _, cat := range cats {
		places, err := c.query(ctx, req, cat)
		if err != nil {
			return nil, err
		}
		for _, p := range places {
			out = append(out, toRecord(p, cat, req.Location.ZipCode))
			ids = append(ids, p.PlaceID)
		}
	}

	details := c.lookupDetails(ctx, ids)
	for i, id := range ids {
		d, ok := details[id]
		if !ok {
			continue
		}
		out[i].Website = d.Website
		out[i].Phone = d.FormattedPhoneNumber
		if out[i].Phone == "" {
			out[i].Phone = d.InternationalPhoneNumber
		}
	}
	return out, nil
}

// lookupDetails fetches details for each distinct place id. A failed lookup
// only leaves that place without a website and phone.
func (c *Client) lookupDetails(ctx context.Context, ids []string) map[string]placeDetails {
	var (
		mu      sync.Mutex
		details = make(map[string]placeDetails, len(ids))
		seen    = make(map[string]bool, len(ids))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailsConcurrency)
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		g.Go(func() error {
			d, err := c.details(gctx, id)
			if err != nil {
				c.logger.Warn("place details failed", zap.String("place_id", id), zap.Error(err))
				return nil
			}
			mu.Lock()
			details[id] = d
			mu.Unlock()
			return nil
		})
	}
	g.Wait()
	return details
}

func (c *Client) details(ctx context.Context, placeID string) (placeDetails, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("place_id", placeID)
	q.Set("fields", detailsFields)

	var result detailsResponse
	if err := c.get(ctx, c.baseURL+"/details/json?"+q.Encode(), &result); err != nil {
		return placeDetails{}, err
	}
	if result.Status != "OK" {
		return placeDetails{}, fmt.Errorf("google places details: %s %s", result.Status, result.ErrorMessage)
	}
	return result.Result, nil
}

func (c *Client) get(ctx context.Context, target string, v any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("google places: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("google places: status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("google places: decode: %w", err)
	}
	return nil
}

func (c *Client) query(ctx context.Context, req search.Request, cat search.Category) ([]place, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("type", cat.PlacesType)
	if radius := req.RadiusMeters(); radius > 0 {
		q.Set("radius", strconv.Itoa(radius))
	}

	endpoint := c.baseURL + "/nearbysearch/json"
	if coords := req.Location.Coordinates; coords != nil {
		q.Set("location", fmt.Sprintf("%f,%f", coords.Lat, coords.Lng))
	} else {
		endpoint = c.baseURL + "/textsearch/json"
		q.Set("query", fmt.Sprintf("%s in %s", cat.PlacesType, req.Location.ZipCode))
	}

	var result searchResponse
	if err := c.get(ctx, endpoint+"?"+q.Encode(), &result); err != nil {
		return nil, err
	}

	switch result.Status {
	case "OK", "ZERO_RESULTS":
	default:
		return nil, fmt.Errorf("google places: %s %s", result.Status, result.ErrorMessage)
	}

	c.logger.Debug("google places answered",
		zap.String("type", cat.PlacesType),
		zap.Int("results", len(result.Results)),
	)
	return result.Results, nil
}

// toRecord takes city and zip from the address; the requested zip is only
// a fallback since text search can return neighbouring zip codes.
func toRecord(p place, cat search.Category, zip string) search.Record {
	address := p.FormattedAddress
	if address == "" {
		address = p.Vicinity
	}
	parsed := search.ParseAddress(address)
	if parsed.Zip != "" {
		zip = parsed.Zip
	}
	return search.Record{
		Name:        p.Name,
		Address:     address,
		City:        titleCase(parsed.City),
		ZipCode:     zip,
		Industry:    cat.Label,
		ReviewCount: p.UserRatingsTotal,
		Rating:      p.Rating,
		Latitude:    p.Geometry.Location.Lat,
		Longitude:   p.Geometry.Location.Lng,
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
