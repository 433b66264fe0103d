package intake

import "github.com/JaimeStill/estimator/pkg/openapi"

type spec struct {
	Order *openapi.Operation
}

var Spec = spec{
	Order: &openapi.Operation{
		Summary:     "Submit an order",
		Description: "Accepts order text, an email body, a PDF or an image. At least one is required.",
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content: map[string]*openapi.MediaType{
				"multipart/form-data": {
					Schema: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"text":       {Type: "string"},
							"email_body": {Type: "string"},
							"file":       {Type: "string", Format: "binary"},
							"email":      {Type: "string"},
						},
					},
				},
			},
		},
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Received order", "IntakeResponse"),
			400: openapi.ResponseRef("BadRequest"),
			413: openapi.ResponseRef("PayloadTooLarge"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"IntakeResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"order_id": {Type: "integer", Format: "int64"},
				"issues":   {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"raw_text": {Type: "string"},
				"email":    {Type: "string"},
			},
		},
	}
}
