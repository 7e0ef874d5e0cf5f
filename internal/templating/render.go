package templating

import (
	"regexp"
	"strings"

	"github.com/xavierca1/leadlocal/internal/entity"
)

var placeholderPattern = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)

func token(name string) string {
	return "{{" + name + "}}"
}

// Render substitutes the declared variables of t into its content.
//
// A variable with no value (missing or blank) renders as "[name]" so an
// unfilled template can be previewed. Values are inserted in a single pass
// and are never expanded again, even when they contain "{{...}}".
func Render(t entity.Template, values map[string]string) string {
	if len(t.Variables) == 0 {
		return t.Content
	}

	pairs := make([]string, 0, len(t.Variables)*2)
	seen := make(map[string]bool, len(t.Variables))
	for _, v := range t.Variables {
		if seen[v.Name] {
			continue
		}
		seen[v.Name] = true

		value, ok := values[v.Name]
		if !ok || strings.TrimSpace(value) == "" {
			value = "[" + v.Name + "]"
		}
		pairs = append(pairs, token(v.Name), value)
	}

	return strings.NewReplacer(pairs...).Replace(t.Content)
}

// MissingRequired lists required variables with no usable value, in
// declaration order. Render does not enforce it.
func MissingRequired(t entity.Template, values map[string]string) []string {
	var missing []string
	for _, v := range t.Variables {
		if !v.Required {
			continue
		}
		if strings.TrimSpace(values[v.Name]) == "" {
			missing = append(missing, v.Name)
		}
	}
	return missing
}

// Placeholders lists the distinct placeholder names in content, in order of
// first appearance.
func Placeholders(content string) []string {
	var names []string
	seen := map[string]bool{}
	for _, m := range placeholderPattern.FindAllStringSubmatch(content, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// SplitSubject separates a leading "Subject:" line from an email body.
func SplitSubject(text string) (subject, body string) {
	line, rest, found := strings.Cut(text, "\n")
	if !found {
		line, rest = text, ""
	}
	after, ok := strings.CutPrefix(strings.TrimSpace(line), "Subject:")
	if !ok {
		return "", text
	}
	return strings.TrimSpace(after), strings.TrimLeft(rest, "\r\n")
}

// LeadValues maps the standard catalog variables from a lead.
// decision_maker is left out; leads carry no contact person.
func LeadValues(lead entity.Lead) map[string]string {
	return map[string]string{
		"business_name":     lead.Name,
		"business_industry": lead.Industry,
		"city":              lead.City,
	}
}
