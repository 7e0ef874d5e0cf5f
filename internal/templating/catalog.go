// Package templating holds the predefined outreach templates and renders
// them with caller-supplied values.
package templating

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/xavierca1/leadlocal/internal/entity"
)

var ErrTemplateNotFound = errors.New("template not found")

//go:embed catalog.yaml
var catalogYAML []byte

type catalogFile struct {
	Templates []entity.Template `yaml:"templates"`
}

// Catalog is an immutable, ordered set of templates. Lookups return copies.
type Catalog struct {
	templates []entity.Template
	byID      map[string]int
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = ParseCatalog(catalogYAML)
	})
	return defaultCatalog, defaultErr
}

// MustDefault is Default for program start-up, where a broken embedded
// catalog is a build defect.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCatalog decodes a YAML catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode template catalog: %w", err)
	}

	c := &Catalog{
		templates: make([]entity.Template, 0, len(f.Templates)),
		byID:      make(map[string]int, len(f.Templates)),
	}
	for _, t := range f.Templates {
		if t.ID == "" {
			return nil, fmt.Errorf("template %q has no id", t.Name)
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate template id %q", t.ID)
		}
		c.byID[t.ID] = len(c.templates)
		c.templates = append(c.templates, t)
	}
	return c, nil
}

// Get looks up a template by id.
func (c *Catalog) Get(id string) (entity.Template, error) {
	i, ok := c.byID[id]
	if !ok {
		return entity.Template{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	return clone(c.templates[i]), nil
}

// List returns every template in catalog order. An empty typ matches all.
func (c *Catalog) List(typ entity.TemplateType) []entity.Template {
	out := make([]entity.Template, 0, len(c.templates))
	for _, t := range c.templates {
		if typ != "" && t.Type != typ {
			continue
		}
		out = append(out, clone(t))
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.templates)
}

func clone(t entity.Template) entity.Template {
	t.Variables = append([]entity.Variable(nil), t.Variables...)
	t.Tags = append([]string(nil), t.Tags...)
	return t
}
