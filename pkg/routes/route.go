package routes

import (
	"net/http"

	"github.com/JaimeStill/estimator/pkg/openapi"
)

// Route binds an HTTP method and pattern to a handler. OpenAPI optionally
// documents the route in the generated spec.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}
