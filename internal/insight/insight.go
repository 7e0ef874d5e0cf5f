// Package insight validates LLM analyses of a lead before they touch the
// domain model.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xavierca1/leadlocal/internal/entity"
)

var ErrInvalidInsight = errors.New("invalid insight payload")

const maxListItems = 10

// Analyzer produces the raw JSON analysis of a lead.
type Analyzer interface {
	Analyze(ctx context.Context, lead entity.Lead) ([]byte, error)
}

// payload lists every key shape the endpoint has been seen to return.
type payload struct {
	ReadinessScore       json.RawMessage `json:"readinessScore"`
	Score                json.RawMessage `json:"score"`
	Opportunities        json.RawMessage `json:"opportunities"`
	TalkingPoints        json.RawMessage `json:"talkingPoints"`
	ConversationStarters json.RawMessage `json:"conversationStarters"`
	CompetitorAnalysis   json.RawMessage `json:"competitorAnalysis"`
	Competitors          json.RawMessage `json:"competitors"`
	RecommendedSolutions json.RawMessage `json:"recommendedSolutions"`
}

// Parse decodes and normalizes an analysis. Scores may be numbers or
// numeric strings; lists may be arrays or a single string. Scores are
// clamped to [0,100], blank entries dropped and lists capped.
func Parse(raw []byte) (*entity.Insight, error) {
	raw = bytes.TrimSpace(stripCodeFence(raw))
	if len(raw) == 0 || raw[0] != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidInsight)
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInsight, err)
	}

	score, err := parseScore(firstPresent(p.ReadinessScore, p.Score))
	if err != nil {
		return nil, err
	}

	out := &entity.Insight{Score: score}
	if out.Opportunities, err = parseList(p.Opportunities); err != nil {
		return nil, fmt.Errorf("opportunities: %w", err)
	}
	if out.TalkingPoints, err = parseList(firstPresent(p.TalkingPoints, p.ConversationStarters)); err != nil {
		return nil, fmt.Errorf("talking points: %w", err)
	}
	if out.CompetitorAnalysis, err = parseList(firstPresent(p.CompetitorAnalysis, p.Competitors)); err != nil {
		return nil, fmt.Errorf("competitor analysis: %w", err)
	}
	if out.RecommendedSolutions, err = parseList(p.RecommendedSolutions); err != nil {
		return nil, fmt.Errorf("recommended solutions: %w", err)
	}
	return out, nil
}

// Merge attaches the insight to a copy of the lead.
func Merge(lead entity.Lead, in *entity.Insight) entity.Lead {
	if in == nil {
		return lead
	}
	cp := *in
	lead.Insight = &cp
	return lead
}

func firstPresent(candidates ...json.RawMessage) json.RawMessage {
	for _, c := range candidates {
		if len(c) > 0 && string(c) != "null" {
			return c
		}
	}
	return nil
}

func parseScore(raw json.RawMessage) (int, error) {
	if raw == nil {
		return 0, nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return 0, fmt.Errorf("%w: score must be a number", ErrInvalidInsight)
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "/100")
		if f, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return 0, fmt.Errorf("%w: score %q is not numeric", ErrInvalidInsight, s)
		}
	}
	if math.IsNaN(f) {
		return 0, fmt.Errorf("%w: score is NaN", ErrInvalidInsight)
	}
	return int(math.Round(math.Max(0, math.Min(100, f)))), nil
}

func parseList(raw json.RawMessage) ([]string, error) {
	if raw == nil {
		return nil, nil
	}

	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		var single string
		if json.Unmarshal(raw, &single) != nil {
			return nil, fmt.Errorf("%w: expected string or list of strings", ErrInvalidInsight)
		}
		items = []string{single}
	}

	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
		if len(out) == maxListItems {
			break
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// stripCodeFence removes a ```json ... ``` wrapper some models add.
func stripCodeFence(raw []byte) []byte {
	s := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(s, []byte("```")) {
		return s
	}
	s = s[3:]
	if nl := bytes.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return bytes.TrimSuffix(bytes.TrimSpace(s), []byte("```"))
}
