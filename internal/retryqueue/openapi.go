package retryqueue

import "github.com/JaimeStill/estimator/pkg/openapi"

type spec struct {
	Append *openapi.Operation
	List   *openapi.Operation
}

var Spec = spec{
	Append: &openapi.Operation{
		Summary:     "Log a failed delivery",
		RequestBody: openapi.RequestBodyJSON("RetryItem", true),
		Responses: map[int]*openapi.Response{
			201: {Description: "Logged"},
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	List: &openapi.Operation{
		Summary: "List failed deliveries in append order",
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Retry items",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("RetryItem")}},
				},
			},
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	zero := 0.0
	return map[string]*openapi.Schema{
		"RetryItem": {
			Type:     "object",
			Required: []string{"order_id", "failed_at", "error", "retry_count"},
			Properties: map[string]*openapi.Schema{
				"order_id":    {Type: "string"},
				"failed_at":   {Type: "string", Format: "date-time"},
				"error":       {Type: "string"},
				"retry_count": {Type: "integer", Minimum: &zero},
			},
		},
	}
}
