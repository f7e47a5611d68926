package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/gedeza/business-consulting/core/types"
	qerrors "github.com/gedeza/business-consulting/internal/errors"
)

// ImportResult reports what LoadFile did with each service in a file
type ImportResult struct {
	Imported []string          `json:"imported"`
	Rejected map[string]string `json:"rejected,omitempty"`
}

// ParseFile reads custom service definitions from an .hcl, .yaml or .yml file
func ParseFile(path string) ([]types.Service, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, qerrors.Config("cannot read catalog file", eris.Wrapf(err, "catalog: read %s", path))
	}

	var services []types.Service
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		services, err = parseHCL(src, path)
	case ".yaml", ".yml":
		services, err = parseYAML(src)
	default:
		return nil, qerrors.Newf(qerrors.TypeConfig, "unsupported catalog file extension %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, qerrors.Config("cannot parse catalog file", eris.Wrapf(err, "catalog: parse %s", path))
	}
	return services, nil
}

// LoadFile parses path and upserts every service it defines into the custom tier.
// Services failing the shape check are reported in the result, not returned as errors;
// a persistence failure stops the import.
func (c *Catalog) LoadFile(ctx context.Context, path string) (*ImportResult, error) {
	services, err := ParseFile(path)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Rejected: make(map[string]string)}
	for _, svc := range services {
		stored, err := c.UpsertCustom(ctx, svc)
		if err != nil {
			if qerrors.IsInvalidService(err) {
				c.log.Warn("rejected service from catalog file",
					zap.String("file", path),
					zap.String("service", svc.Name),
					zap.Error(err),
				)
				result.Rejected[svc.Name] = err.Error()
				continue
			}
			return result, err
		}
		result.Imported = append(result.Imported, stored.Name)
	}
	return result, nil
}
