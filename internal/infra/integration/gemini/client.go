package gemini

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/xavierca1/leadlocal/internal/entity"
)

const DefaultModel = "gemini-2.5-flash"

// Client asks Gemini for a JSON analysis of a lead. The raw response is
// returned untouched; callers validate it with insight.Parse.
type Client struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewClient(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: API key not configured")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Client{client: client, model: model, logger: logger}, nil
}

func (c *Client) Analyze(ctx context.Context, lead entity.Lead) ([]byte, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(BuildPrompt(lead), genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.3),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini: generate: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("gemini: empty response")
	}

	c.logger.Debug("gemini analysis received",
		zap.String("lead_id", lead.ID),
		zap.String("model", c.model),
		zap.Int("bytes", len(text)),
	)
	return []byte(text), nil
}

// BuildPrompt renders the analysis request for a lead. Unknown fields are
// stated as such so the model does not invent them.
func BuildPrompt(lead entity.Lead) string {
	employees := "unknown"
	if lead.EmployeeCount > 0 {
		employees = strconv.Itoa(lead.EmployeeCount)
	}

	var b strings.Builder
	b.WriteString("Analyze this business for AI solution opportunities:\n")
	fmt.Fprintf(&b, "Name: %s\n", orUnknown(lead.Name))
	fmt.Fprintf(&b, "Industry: %s\n", orUnknown(lead.Industry))
	fmt.Fprintf(&b, "Size: %s employees\n", employees)
	fmt.Fprintf(&b, "Website: %s\n", orUnknown(lead.Website))
	if lead.City != "" {
		fmt.Fprintf(&b, "City: %s\n", lead.City)
	}
	b.WriteString(`
Respond with a single JSON object with these keys:
  "readinessScore": AI readiness score from 0 to 100,
  "opportunities": the top 3 AI opportunities for this business,
  "talkingPoints": conversation starters for cold outreach,
  "competitorAnalysis": likely competitors already using AI,
  "recommendedSolutions": recommended AI solutions to pitch.
Every key except readinessScore is an array of short strings.
`)
	return b.String()
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
