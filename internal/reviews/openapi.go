package reviews

import (
	"maps"

	"github.com/JaimeStill/estimator/pkg/openapi"
)

type spec struct {
	Create *openapi.Operation
	Find   *openapi.Operation
}

// Spec documents the review task endpoints.
var Spec = spec{
	Create: &openapi.Operation{
		Summary:     "Create a review task",
		RequestBody: openapi.RequestBodyJSON("ReviewTaskCreate", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created task", "ReviewTaskCreated"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Find a review task",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Task id", "uuid")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Task", "ReviewTask"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	task := map[string]*openapi.Schema{
		"order_id":   {Type: "integer", Format: "int64"},
		"status":     {Type: "string"},
		"issues":     {Type: "string"},
		"price":      {Type: "number"},
		"created_at": {Type: "string", Format: "date-time"},
	}
	withID := map[string]*openapi.Schema{"task_id": {Type: "string", Format: "uuid"}}
	maps.Copy(withID, task)

	return map[string]*openapi.Schema{
		"ReviewTaskCreate": {
			Type:       "object",
			Required:   []string{"order_id", "status", "issues", "created_at"},
			Properties: task,
		},
		"ReviewTask": {Type: "object", Properties: withID},
		"ReviewTaskCreated": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"task_id": {Type: "string", Format: "uuid"},
				"status":  {Type: "string", Example: "created"},
			},
		},
	}
}
