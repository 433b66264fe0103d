package dashboard

import "github.com/JaimeStill/estimator/pkg/openapi"

type spec struct {
	Summary *openapi.Operation
	Orders  *openapi.Operation
	Export  *openapi.Operation
	Stats   *openapi.Operation
}

func negotiated(description, schema string) *openapi.Response {
	return &openapi.Response{
		Description: description,
		Content: map[string]*openapi.MediaType{
			"application/json": {Schema: openapi.SchemaRef(schema)},
			"text/html":        {Schema: &openapi.Schema{Type: "string"}},
		},
	}
}

// Spec documents the dashboard endpoints. Each JSON endpoint renders HTML
// when the Accept header asks for it.
var Spec = spec{
	Summary: &openapi.Operation{
		Summary:   "Order totals",
		Responses: map[int]*openapi.Response{200: negotiated("Summary", "DashboardSummary")},
	},
	Orders: &openapi.Operation{
		Summary:   "Order table in id order",
		Responses: map[int]*openapi.Response{200: negotiated("Order rows", "DashboardRows")},
	},
	Export: &openapi.Operation{
		Summary: "Order table as an XLSX workbook",
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Workbook",
				Content: map[string]*openapi.MediaType{
					xlsxType: {Schema: &openapi.Schema{Type: "string", Format: "binary"}},
				},
			},
		},
	},
	Stats: &openapi.Operation{
		Summary:   "Order counts per status",
		Responses: map[int]*openapi.Response{200: negotiated("Stats", "DashboardStats")},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"DashboardSummary": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"total_orders": {Type: "integer"},
				"revenue":      {Type: "number"},
				"pending":      {Type: "integer"},
			},
		},
		"DashboardRows": {
			Type: "array",
			Items: &openapi.Schema{
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"id":           {Type: "integer", Format: "int64"},
					"product_type": {Type: "string"},
					"quantity":     {Type: "integer"},
					"status":       {Type: "string"},
					"final_price":  {Type: "number"},
					"email":        {Type: "string"},
					"issues":       {Type: "string"},
				},
			},
		},
		"DashboardStats": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"by_status": {Type: "object", Description: "Order count keyed by status"},
			},
		},
	}
}
