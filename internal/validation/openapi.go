package validation

import "github.com/JaimeStill/estimator/pkg/openapi"

type spec struct {
	Validate *openapi.Operation
}

// Spec documents the validation endpoint.
var Spec = spec{
	Validate: &openapi.Operation{
		Summary:     "Validate a specification",
		Description: "Runs every validation check against a specification without source text.",
		RequestBody: openapi.RequestBodyJSON("ValidateRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Validation result", "ValidationResult"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	decisions := []any{"auto_approved", "needs_review", "rejected"}
	return map[string]*openapi.Schema{
		"Specification": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"product_type":    {Type: "string"},
				"quantity":        {Type: "integer"},
				"size":            {Type: "string", Example: "85x55mm"},
				"paper_type":      {Type: "string", Example: "C300"},
				"color":           {Type: "string", Example: "4/4"},
				"finishing":       {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"turnaround_days": {Type: "integer"},
				"rush":            {Type: "boolean"},
				"missing_fields":  {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"min_dpi":         {Description: "Minimum image resolution, numeric or string"},
			},
		},
		"ValidateRequest": {
			Type:       "object",
			Required:   []string{"spec"},
			Properties: map[string]*openapi.Schema{"spec": openapi.SchemaRef("Specification")},
		},
		"ValidationResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"decision": {Type: "string", Enum: decisions},
				"issues":   {Type: "array", Items: &openapi.Schema{Type: "string"}},
			},
		},
	}
}
