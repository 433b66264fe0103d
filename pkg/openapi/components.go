package openapi

import "maps"

// Shared error responses registered by NewComponents.
var errorResponses = map[string]string{
	"BadRequest":      "Invalid request",
	"NotFound":        "Resource not found",
	"Conflict":        "Resource conflict",
	"PayloadTooLarge": "Request body exceeds the upload limit",
	"BadGateway":      "An upstream service failed",
}

// NewComponents creates Components holding the Error and PageRequest
// schemas plus one response per shared error status.
func NewComponents() *Components {
	c := &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type:     "object",
				Required: []string{"error"},
				Properties: map[string]*Schema{
					"error":      {Type: "string", Description: "Error message"},
					"request_id": {Type: "string", Description: "Correlation id from X-Request-ID"},
				},
			},
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":      {Type: "integer", Description: "Page number (1-indexed)", Example: 1},
					"page_size": {Type: "integer", Description: "Results per page", Example: 25},
					"search":    {Type: "string", Description: "Search query"},
					"sort":      {Type: "string", Description: "Comma-separated sort fields, - prefix for descending", Example: "-created_at"},
				},
			},
		},
		Responses: make(map[string]*Response, len(errorResponses)),
	}
	for name, desc := range errorResponses {
		c.Responses[name] = &Response{
			Description: desc,
			Content: map[string]*MediaType{
				"application/json": {Schema: SchemaRef("Error")},
			},
		}
	}
	return c
}

// AddSchemas merges schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
