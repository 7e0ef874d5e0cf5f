package insight

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/leadlocal/internal/entity"
)

func TestParseCanonicalShape(t *testing.T) {
	raw := []byte(`{
		"readinessScore": 72,
		"opportunities": ["Chatbot", "Scheduling", "Invoices"],
		"talkingPoints": ["Ask about phone volume"],
		"competitorAnalysis": ["Rival Co uses AI booking"],
		"recommendedSolutions": ["Voice agent"]
	}`)

	got, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, &entity.Insight{
		Score:                72,
		Opportunities:        []string{"Chatbot", "Scheduling", "Invoices"},
		TalkingPoints:        []string{"Ask about phone volume"},
		CompetitorAnalysis:   []string{"Rival Co uses AI booking"},
		RecommendedSolutions: []string{"Voice agent"},
	}, got)
}

func TestParseMixedShapes(t *testing.T) {
	raw := []byte("```json\n{\"score\": \"85/100\", \"opportunities\": \"Chatbot\", \"conversationStarters\": [\" \", \"Hi\"], \"competitors\": null}\n```")

	got, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, 85, got.Score)
	assert.Equal(t, []string{"Chatbot"}, got.Opportunities)
	assert.Equal(t, []string{"Hi"}, got.TalkingPoints)
	assert.Nil(t, got.CompetitorAnalysis)
}

func TestParseClampsScore(t *testing.T) {
	got, err := Parse([]byte(`{"score": 140.6}`))
	require.NoError(t, err)
	assert.Equal(t, 100, got.Score)

	got, err = Parse([]byte(`{"score": -3}`))
	require.NoError(t, err)
	assert.Equal(t, 0, got.Score)
}

func TestParseCapsLists(t *testing.T) {
	got, err := Parse([]byte(`{"opportunities": ["1","2","3","4","5","6","7","8","9","10","11","12"]}`))
	require.NoError(t, err)
	assert.Len(t, got.Opportunities, maxListItems)
}

func TestParseRejectsBadPayloads(t *testing.T) {
	for _, raw := range []string{
		``,
		`[1,2]`,
		`"text"`,
		`{"score": "high"}`,
		`{"score": {"value": 3}}`,
		`{"opportunities": [1, 2]}`,
		`{"talkingPoints": 5}`,
		`{broken`,
	} {
		_, err := Parse([]byte(raw))
		assert.True(t, errors.Is(err, ErrInvalidInsight), raw)
	}
}

func TestMerge(t *testing.T) {
	in := &entity.Insight{Score: 50}
	lead := Merge(entity.Lead{Name: "Acme", ReadinessScore: 30}, in)

	require.NotNil(t, lead.Insight)
	assert.Equal(t, 50, lead.Insight.Score)
	assert.Equal(t, 30, lead.ReadinessScore, "rubric score is untouched")

	in.Score = 99
	assert.Equal(t, 50, lead.Insight.Score)

	assert.Nil(t, Merge(entity.Lead{}, nil).Insight)
}
