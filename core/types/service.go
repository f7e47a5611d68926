// Package types - Service catalog types
package types

import "github.com/shopspring/decimal"

// Task is one billable unit of work within a service
type Task struct {
	// Name is unique within its service
	Name string `json:"name"`

	// Hours is the base estimate
	Hours decimal.Decimal `json:"hours"`

	// Description explains the work
	Description string `json:"description,omitempty"`

	// PerDocument scales the hours by the quote's document count
	PerDocument bool `json:"per_document,omitempty"`
}

// Service is a named, reusable definition of consulting work
type Service struct {
	// Name is the catalog key
	Name string `json:"name"`

	// Description is shown on the quote
	Description string `json:"description"`

	// Tasks in display order
	Tasks []Task `json:"tasks,omitempty"`

	// RequiresDocCount asks the caller for a document count
	RequiresDocCount bool `json:"requires_doc_count,omitempty"`

	// GroundworkReduction enables the completed-task discount
	GroundworkReduction bool `json:"groundwork_reduction"`

	// PricingModel is the model the service is sold under (hourly when empty)
	PricingModel PricingModel `json:"pricing_model,omitempty"`
}

// Model returns the service pricing model, defaulting to hourly
func (s *Service) Model() PricingModel {
	if s.PricingModel == "" {
		return PricingHourly
	}
	return s.PricingModel
}

// Task returns the named task
func (s *Service) Task(name string) (Task, bool) {
	for _, t := range s.Tasks {
		if t.Name == name {
			return t, true
		}
	}
	return Task{}, false
}

// HasPerDocumentTasks reports whether any task scales with the document count
func (s *Service) HasPerDocumentTasks() bool {
	for _, t := range s.Tasks {
		if t.PerDocument {
			return true
		}
	}
	return false
}

// Clone returns a deep copy
func (s Service) Clone() Service {
	out := s
	if s.Tasks != nil {
		out.Tasks = make([]Task, len(s.Tasks))
		copy(out.Tasks, s.Tasks)
	}
	return out
}
