// Package templates provides the document templates offered for each service.
package templates

import (
	_ "embed"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	qerrors "github.com/gedeza/business-consulting/internal/errors"
)

//go:embed templates.yaml
var builtinYAML []byte

// HourRange is an estimated effort range
type HourRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// Template is a document outline with the regulations it addresses
type Template struct {
	ID             string    `yaml:"id" json:"id"`
	Name           string    `yaml:"name" json:"name"`
	Description    string    `yaml:"description" json:"description"`
	Sections       []string  `yaml:"sections" json:"sections"`
	Compliance     []string  `yaml:"compliance" json:"compliance"`
	EstimatedHours HourRange `yaml:"estimated_hours" json:"estimated_hours"`
}

type serviceTemplates struct {
	Service   string     `yaml:"service"`
	Templates []Template `yaml:"templates"`
}

// Registry maps service names to their templates
type Registry struct {
	order     []string
	byService map[string][]Template
}

// Parse builds a registry from a YAML list of {service, templates}
func Parse(src []byte) (*Registry, error) {
	var doc []serviceTemplates
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, qerrors.Config("cannot parse templates", err)
	}

	r := &Registry{byService: make(map[string][]Template, len(doc))}
	for _, st := range doc {
		if _, dup := r.byService[st.Service]; !dup {
			r.order = append(r.order, st.Service)
		}
		r.byService[st.Service] = append(r.byService[st.Service], st.Templates...)
	}
	return r, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the built-in registry
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := Parse(builtinYAML)
		if err != nil {
			panic(err)
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Services returns the service names that have templates, in file order
func (r *Registry) Services() []string {
	return append([]string(nil), r.order...)
}

// ByService returns the templates for a service, or nil
func (r *Registry) ByService(service string) []Template {
	ts := r.byService[service]
	if ts == nil {
		return nil
	}
	return append([]Template(nil), ts...)
}

// ByID finds a template within a service
func (r *Registry) ByID(service, id string) (Template, bool) {
	for _, t := range r.byService[service] {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// AllCompliances returns every compliance tag, de-duplicated and sorted
func (r *Registry) AllCompliances() []string {
	seen := make(map[string]bool)
	var out []string
	for _, ts := range r.byService {
		for _, t := range ts {
			for _, c := range t.Compliance {
				if !seen[c] {
					seen[c] = true
					out = append(out, c)
				}
			}
		}
	}
	sort.Strings(out)
	return out
}
