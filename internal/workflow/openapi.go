package workflow

import "github.com/JaimeStill/estimator/pkg/openapi"

type spec struct {
	Update *openapi.Operation
	MIS    *openapi.Operation
}

// Spec documents the workflow callback and MIS endpoints.
var Spec = spec{
	Update: &openapi.Operation{
		Summary:     "Apply a workflow callback",
		Description: "decision takes precedence over status.",
		RequestBody: openapi.RequestBodyJSON("WorkflowCallback", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Applied callback", "WorkflowCallbackResult"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	MIS: &openapi.Operation{
		Summary: "Hand an order to the MIS",
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content:  map[string]*openapi.MediaType{"application/json": {Schema: &openapi.Schema{Type: "object"}}},
		},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Acknowledged",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{
						Type:       "object",
						Properties: map[string]*openapi.Schema{"message": {Type: "string"}},
					}},
				},
			},
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"WorkflowCallback": {
			Type:     "object",
			Required: []string{"order_id"},
			Properties: map[string]*openapi.Schema{
				"order_id": {Type: "integer", Format: "int64"},
				"status":   {Type: "string"},
				"decision": {Type: "string"},
				"price":    {Type: "number"},
				"issues":   {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"email":    {Type: "string"},
			},
		},
		"WorkflowCallbackResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"ok":          {Type: "boolean"},
				"order_id":    {Type: "integer", Format: "int64"},
				"status":      {Type: "string"},
				"final_price": {Type: "number"},
				"issues":      {Type: "string"},
			},
		},
	}
}
