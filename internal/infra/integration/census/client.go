package census

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

// County Business Patterns, 2021 vintage.
const DefaultBaseURL = "https://api.census.gov/data/2021/cbp"

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

func (c *Client) Name() string { return "census" }

// Search returns one record per requested NAICS sector in the zip code,
// carrying the average employees per establishment. The API is keyed by
// zip code only, so coordinate searches get no census data.
func (c *Client) Search(ctx context.Context, req search.Request) ([]search.Record, error) {
	zip := strings.TrimSpace(req.Location.ZipCode)
	if zip == "" {
		c.logger.Debug("census skipped: no zip code in request")
		return nil, nil
	}

	var out []search.Record
	for _, cat := range search.ResolveCategories(req.Categories) {
		rows, err := c.query(ctx, zip, cat.NAICS)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			out = append(out, toRecord(row, cat, zip))
		}
	}
	return out, nil
}

type row struct {
	label         string
	employees     int
	establishment int
}

func (c *Client) query(ctx context.Context, zip, naics string) ([]row, error) {
	q := url.Values{}
	q.Set("get", "NAICS2017_LABEL,EMP,ESTAB")
	q.Set("for", "zip code:"+zip)
	q.Set("NAICS2017", naics)
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("census: %w", err)
	}
	defer resp.Body.Close()

	// The API answers 204 when the zip/sector pair has no data.
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("census: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var table [][]string
	if err := json.Unmarshal(body, &table); err != nil {
		return nil, fmt.Errorf("census: decode: %w", err)
	}
	return parseTable(table)
}

// parseTable reads the header-first array-of-arrays payload.
func parseTable(table [][]string) ([]row, error) {
	if len(table) == 0 {
		return nil, nil
	}

	col := map[string]int{}
	for i, h := range table[0] {
		col[h] = i
	}
	for _, h := range []string{"NAICS2017_LABEL", "EMP", "ESTAB"} {
		if _, ok := col[h]; !ok {
			return nil, fmt.Errorf("census: missing column %s", h)
		}
	}

	rows := make([]row, 0, len(table)-1)
	for _, r := range table[1:] {
		if len(r) < len(table[0]) {
			continue
		}
		emp, _ := strconv.Atoi(r[col["EMP"]])
		estab, _ := strconv.Atoi(r[col["ESTAB"]])
		rows = append(rows, row{
			label:         r[col["NAICS2017_LABEL"]],
			employees:     emp,
			establishment: estab,
		})
	}
	return rows, nil
}

func toRecord(r row, cat search.Category, zip string) search.Record {
	avg := 0
	if r.establishment > 0 {
		avg = r.employees / r.establishment
	}
	return search.Record{
		Name:          fmt.Sprintf("%s (%s)", r.label, zip),
		ZipCode:       zip,
		Industry:      cat.Label,
		EmployeeCount: avg,
	}
}
