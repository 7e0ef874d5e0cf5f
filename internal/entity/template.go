package entity

type TemplateType string

const (
	TemplateTypeEmail      TemplateType = "email"
	TemplateTypeLinkedIn   TemplateType = "linkedin"
	TemplateTypeSMS        TemplateType = "sms"
	TemplateTypeCallScript TemplateType = "call-script"
)

// Template is a predefined outreach text with {{name}} placeholders.
type Template struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description" yaml:"description"`
	Industry    string       `json:"industry" yaml:"industry"`
	Type        TemplateType `json:"type" yaml:"type"`
	Content     string       `json:"content" yaml:"content"`
	Variables   []Variable   `json:"variables" yaml:"variables"`
	Tags        []string     `json:"tags,omitempty" yaml:"tags"`
	Active      bool         `json:"is_active" yaml:"active"`
	Author      string       `json:"author" yaml:"author"`
	Version     int          `json:"version" yaml:"version"`
}

type Variable struct {
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description" yaml:"description"`
	Required     bool   `json:"required" yaml:"required"`
	DefaultValue string `json:"default_value,omitempty" yaml:"default_value"`
}
