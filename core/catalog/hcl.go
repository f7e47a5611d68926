package catalog

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"

	"github.com/gedeza/business-consulting/core/types"
)

var serviceFileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "service", LabelNames: []string{"name"}},
	},
}

var serviceBlockSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description", Required: true},
		{Name: "requires_doc_count"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "task", LabelNames: []string{"name"}},
	},
}

var taskBlockSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "hours", Required: true},
		{Name: "per_document"},
		{Name: "description"},
	},
}

// parseHCL decodes service blocks:
//
//	service "Grant Application" {
//	  description = "..."
//	  task "Eligibility Review" {
//	    hours        = 1.5
//	    per_document = false
//	  }
//	}
func parseHCL(src []byte, filename string) ([]types.Service, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}

	content, diags := file.Body.Content(serviceFileSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	services := make([]types.Service, 0, len(content.Blocks))
	for _, block := range content.Blocks {
		svc, err := decodeServiceBlock(block)
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	return services, nil
}

func decodeServiceBlock(block *hcl.Block) (types.Service, error) {
	svc := types.Service{Name: block.Labels[0]}

	content, diags := block.Body.Content(serviceBlockSchema)
	if diags.HasErrors() {
		return svc, diags
	}

	var err error
	if svc.Description, err = stringAttr(content.Attributes, "description"); err != nil {
		return svc, fmt.Errorf("service %q: %w", svc.Name, err)
	}
	if svc.RequiresDocCount, err = boolAttr(content.Attributes, "requires_doc_count"); err != nil {
		return svc, fmt.Errorf("service %q: %w", svc.Name, err)
	}

	for _, tb := range content.Blocks {
		t, err := decodeTaskBlock(tb)
		if err != nil {
			return svc, fmt.Errorf("service %q: %w", svc.Name, err)
		}
		svc.Tasks = append(svc.Tasks, t)
	}
	return svc, nil
}

func decodeTaskBlock(block *hcl.Block) (types.Task, error) {
	t := types.Task{Name: block.Labels[0]}

	content, diags := block.Body.Content(taskBlockSchema)
	if diags.HasErrors() {
		return t, diags
	}

	var err error
	if t.Hours, err = decimalAttr(content.Attributes, "hours"); err != nil {
		return t, fmt.Errorf("task %q: %w", t.Name, err)
	}
	if t.PerDocument, err = boolAttr(content.Attributes, "per_document"); err != nil {
		return t, fmt.Errorf("task %q: %w", t.Name, err)
	}
	if t.Description, err = stringAttr(content.Attributes, "description"); err != nil {
		return t, fmt.Errorf("task %q: %w", t.Name, err)
	}
	return t, nil
}

// attrValue evaluates a literal attribute. ok is false when the attribute is
// absent or null.
func attrValue(attrs hcl.Attributes, name string) (val cty.Value, ok bool, err error) {
	attr, present := attrs[name]
	if !present {
		return cty.NilVal, false, nil
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, false, diags
	}
	if !val.IsKnown() {
		return cty.NilVal, false, fmt.Errorf("%s: value must be a literal", name)
	}
	return val, !val.IsNull(), nil
}

func stringAttr(attrs hcl.Attributes, name string) (string, error) {
	val, ok, err := attrValue(attrs, name)
	if err != nil || !ok {
		return "", err
	}
	if val.Type() != cty.String {
		return "", fmt.Errorf("%s: expected string, got %s", name, val.Type().FriendlyName())
	}
	return val.AsString(), nil
}

func boolAttr(attrs hcl.Attributes, name string) (bool, error) {
	val, ok, err := attrValue(attrs, name)
	if err != nil || !ok {
		return false, err
	}
	if val.Type() != cty.Bool {
		return false, fmt.Errorf("%s: expected bool, got %s", name, val.Type().FriendlyName())
	}
	return val.True(), nil
}

// decimalAttr keeps the literal's exact value
func decimalAttr(attrs hcl.Attributes, name string) (decimal.Decimal, error) {
	val, ok, err := attrValue(attrs, name)
	if err != nil || !ok {
		return decimal.Zero, err
	}
	if val.Type() != cty.Number {
		return decimal.Zero, fmt.Errorf("%s: expected number, got %s", name, val.Type().FriendlyName())
	}
	return decimal.NewFromString(val.AsBigFloat().Text('f', -1))
}
