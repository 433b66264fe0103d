package disposition

import "github.com/JaimeStill/estimator/pkg/openapi"

type spec struct {
	Estimate *openapi.Operation
}

// Spec documents the estimate endpoint.
var Spec = spec{
	Estimate: &openapi.Operation{
		Summary:     "Estimate a received order",
		Description: "Extracts, validates and prices the order text, commits the disposition and notifies the workflow. Failed deliveries are logged to the retry queue.",
		RequestBody: openapi.RequestBodyJSON("EstimateRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Resolved order", "EstimateResult"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	number := &openapi.Schema{Type: "number"}
	return map[string]*openapi.Schema{
		"EstimateRequest": {
			Type:     "object",
			Required: []string{"order_id", "raw_text"},
			Properties: map[string]*openapi.Schema{
				"order_id":       {Type: "integer", Format: "int64"},
				"raw_text":       {Type: "string"},
				"customer_email": {Type: "string"},
			},
		},
		"PricingResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"process":            {Type: "string", Enum: []any{"digital", "offset"}},
				"material_unit":      number,
				"material_cost":      number,
				"setup_cost":         number,
				"finishing_cost":     number,
				"margin_pct":         number,
				"rush_surcharge_pct": number,
				"final_price":        number,
				"breakdown": {
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"base":          number,
						"margin_amount": number,
						"rush_amount":   number,
					},
				},
			},
		},
		"EstimateResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"order_id":   {Type: "integer", Format: "int64"},
				"spec":       openapi.SchemaRef("Specification"),
				"validation": openapi.SchemaRef("ValidationResult"),
				"pricing":    openapi.SchemaRef("PricingResult"),
				"decision":   {Type: "string"},
				"notified":   {Type: "boolean"},
			},
		},
	}
}
