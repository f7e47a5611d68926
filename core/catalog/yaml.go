package catalog

import (
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/gedeza/business-consulting/core/types"
)

type yamlCatalog struct {
	Services []yamlService `yaml:"services"`
}

type yamlService struct {
	Name             string     `yaml:"name"`
	Description      string     `yaml:"description"`
	RequiresDocCount bool       `yaml:"requires_doc_count"`
	Tasks            []yamlTask `yaml:"tasks"`
}

type yamlTask struct {
	Name        string  `yaml:"name"`
	Hours       float64 `yaml:"hours"`
	Description string  `yaml:"description"`
	PerDocument bool    `yaml:"per_document"`
}

// parseYAML decodes a document with a top-level services list
func parseYAML(src []byte) ([]types.Service, error) {
	var doc yamlCatalog
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, err
	}

	services := make([]types.Service, 0, len(doc.Services))
	for _, ys := range doc.Services {
		svc := types.Service{
			Name:             ys.Name,
			Description:      ys.Description,
			RequiresDocCount: ys.RequiresDocCount,
		}
		for _, yt := range ys.Tasks {
			svc.Tasks = append(svc.Tasks, types.Task{
				Name:        yt.Name,
				Hours:       decimal.NewFromFloat(yt.Hours),
				Description: yt.Description,
				PerDocument: yt.PerDocument,
			})
		}
		services = append(services, svc)
	}
	return services, nil
}
