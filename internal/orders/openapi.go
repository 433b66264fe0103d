package orders

import "github.com/JaimeStill/estimator/pkg/openapi"

type spec struct {
	List   *openapi.Operation
	Find   *openapi.Operation
	Update *openapi.Operation
}

// Spec documents the order endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary: "List orders",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Search raw text and email", false),
			openapi.QueryParam("sort", "string", "Sort fields, prefix - for descending", false),
			openapi.QueryParam("status", "string", "Filter by status", false),
			openapi.QueryParam("product_type", "string", "Filter by product type", false),
			openapi.QueryParam("email", "string", "Filter by email substring", false),
			openapi.QueryParam("rush", "boolean", "Filter by rush flag", false),
			openapi.QueryParam("min_price", "number", "Lowest final price", false),
			openapi.QueryParam("max_price", "number", "Highest final price", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Order page", "OrderPage"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Find an order",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Order id", "int64")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Order", "Order"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Patch an order's status",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Order id", "int64")},
		RequestBody: openapi.RequestBodyJSON("OrderUpdate", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated order", "Order"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

// Schemas returns the order component schemas.
func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Order": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":              {Type: "integer", Format: "int64"},
				"raw_text":        {Type: "string"},
				"product_type":    {Type: "string"},
				"quantity":        {Type: "integer"},
				"size":            {Type: "string"},
				"paper_type":      {Type: "string"},
				"color":           {Type: "string"},
				"finishing":       {Type: "string", Description: "Comma-joined finishing list"},
				"turnaround_days": {Type: "integer"},
				"rush":            {Type: "boolean"},
				"status":          {Type: "string"},
				"final_price":     {Type: "number"},
				"issues":          {Type: "string", Description: "Comma-joined issue tags"},
				"email":           {Type: "string"},
				"created_at":      {Type: "string", Format: "date-time"},
				"updated_at":      {Type: "string", Format: "date-time"},
			},
		},
		"OrderPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Order")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
				"has_next":    {Type: "boolean"},
			},
		},
		"OrderUpdate": {
			Type:     "object",
			Required: []string{"status", "updated_at"},
			Properties: map[string]*openapi.Schema{
				"status":     {Type: "string"},
				"updated_at": {Type: "string", Format: "date-time"},
				"price":      {Type: "number"},
				"issues":     {Type: "string"},
				"csr_action": {Type: "string"},
			},
		},
	}
}
