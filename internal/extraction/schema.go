package extraction

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const specificationSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "product_type":    {"type": ["string", "null"]},
    "quantity":        {"type": ["integer", "null"]},
    "size":            {"type": ["string", "null"]},
    "paper_type":      {"type": ["string", "null"]},
    "color":           {"type": ["string", "null"]},
    "finishing":       {"type": ["array", "null"], "items": {"type": "string"}},
    "turnaround_days": {"type": ["integer", "null"]},
    "rush":            {"type": ["boolean", "null"]},
    "missing_fields":  {"type": ["array", "null"], "items": {"type": "string"}},
    "min_dpi":         {"type": ["number", "null"]}
  }
}`

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("specification.json", strings.NewReader(specificationSchema)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("specification.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
})

// checkSchema reports how a decoded completion object deviates from the
// specification schema. A nil error means the object conforms.
func checkSchema(v map[string]any) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("completion does not match schema: %w", err)
	}
	return nil
}
