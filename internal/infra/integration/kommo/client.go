package kommo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/entity"
)

var ErrNotConfigured = errors.New("kommo not configured")

type Client struct {
	apiToken   string
	baseURL    string
	statusID   int
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient targets baseURL, e.g. https://<account>.kommo.com/api/v4.
// A zero statusID leaves new leads in the pipeline's first stage.
func NewClient(apiToken, baseURL string, statusID int, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		apiToken:   apiToken,
		baseURL:    strings.TrimRight(baseURL, "/"),
		statusID:   statusID,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("kommo"),
	}
}

// PushLead creates a Kommo lead for a prospect, reusing an existing
// contact matched by phone.
func (c *Client) PushLead(ctx context.Context, lead entity.Lead) (PushResult, error) {
	if c.apiToken == "" || c.baseURL == "" {
		return PushResult{}, ErrNotConfigured
	}

	contactID, err := c.findOrCreateContact(ctx, lead)
	if err != nil {
		return PushResult{}, fmt.Errorf("kommo contact: %w", err)
	}

	p := leadPayload{
		Name:     fmt.Sprintf("%s - LeadLocal (%d)", lead.Name, lead.ReadinessScore),
		StatusID: c.statusID,
	}
	p.Embedded.Tags = []tag{{Name: "leadlocal"}}
	if lead.Industry != "" {
		p.Embedded.Tags = append(p.Embedded.Tags, tag{Name: lead.Industry})
	}
	p.Embedded.Contacts = []idRef{{ID: contactID}}

	var result embeddedIDs
	if err := c.do(ctx, http.MethodPost, "/leads", []leadPayload{p}, &result, http.StatusOK); err != nil {
		return PushResult{}, fmt.Errorf("kommo create lead: %w", err)
	}
	if len(result.Embedded.Leads) == 0 {
		return PushResult{}, fmt.Errorf("kommo create lead: empty response")
	}

	res := PushResult{LeadID: lead.ID, KommoID: result.Embedded.Leads[0].ID, ContactID: contactID}
	c.logger.Info("lead pushed",
		zap.String("lead_id", lead.ID),
		zap.Int("kommo_id", res.KommoID),
	)
	return res, nil
}

func (c *Client) findOrCreateContact(ctx context.Context, lead entity.Lead) (int, error) {
	if lead.Phone != "" {
		id, err := c.findContact(ctx, lead.Phone)
		if err != nil {
			c.logger.Debug("contact lookup failed", zap.Error(err))
		} else if id > 0 {
			return id, nil
		}
	}
	return c.createContact(ctx, lead)
}

func (c *Client) findContact(ctx context.Context, query string) (int, error) {
	var result embeddedIDs
	path := "/contacts?query=" + url.QueryEscape(query)
	// Kommo answers 204 with no body when nothing matches.
	if err := c.do(ctx, http.MethodGet, path, nil, &result, http.StatusOK, http.StatusNoContent); err != nil {
		return 0, err
	}
	if len(result.Embedded.Contacts) == 0 {
		return 0, nil
	}
	return result.Embedded.Contacts[0].ID, nil
}

func (c *Client) createContact(ctx context.Context, lead entity.Lead) (int, error) {
	contact := contactPayload{Name: lead.Name}
	if lead.Phone != "" {
		contact.CustomFields = append(contact.CustomFields, customField{
			FieldCode: "PHONE",
			Values:    []fieldValue{{Value: lead.Phone, EnumCode: "WORK"}},
		})
	}
	if lead.Email != "" {
		contact.CustomFields = append(contact.CustomFields, customField{
			FieldCode: "EMAIL",
			Values:    []fieldValue{{Value: lead.Email, EnumCode: "WORK"}},
		})
	}

	var result embeddedIDs
	if err := c.do(ctx, http.MethodPost, "/contacts", []contactPayload{contact}, &result, http.StatusOK, http.StatusCreated); err != nil {
		return 0, err
	}
	if len(result.Embedded.Contacts) == 0 {
		return 0, fmt.Errorf("contact id missing from response")
	}
	return result.Embedded.Contacts[0].ID, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, okStatus ...int) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	c.addAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	ok := false
	for _, s := range okStatus {
		if resp.StatusCode == s {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("status %d - %s", resp.StatusCode, string(raw))
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) addAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiToken))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
