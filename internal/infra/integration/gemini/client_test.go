package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/xavierca1/leadlocal/internal/entity"
)

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(entity.Lead{
		Name:          "Acme Tools",
		Industry:      "manufacturing",
		EmployeeCount: 60,
		Website:       "https://acme.example",
		City:          "Dayton",
	})

	assert.Contains(t, p, "Name: Acme Tools\n")
	assert.Contains(t, p, "Size: 60 employees\n")
	assert.Contains(t, p, "City: Dayton\n")
	assert.Contains(t, p, `"readinessScore"`)
	assert.Contains(t, p, `"recommendedSolutions"`)
}

func TestBuildPromptUnknownFields(t *testing.T) {
	p := BuildPrompt(entity.Lead{Name: "Corner Shop"})

	assert.Contains(t, p, "Industry: unknown\n")
	assert.Contains(t, p, "Size: unknown employees\n")
	assert.Contains(t, p, "Website: unknown\n")
	assert.NotContains(t, p, "City:")
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), "", "", zap.NewNop())
	assert.Error(t, err)
}
