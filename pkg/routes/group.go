package routes

import (
	"net/http"

	"github.com/JaimeStill/estimator/pkg/openapi"
)

// Group organizes routes under a common prefix with shared tags. Children
// nest under the parent prefix.
type Group struct {
	Prefix   string
	Tags     []string
	Routes   []Route
	Children []Group
}

// Walk calls fn for every route in groups with the route's full path and
// the tags of its nearest tagged ancestor.
func Walk(fn func(path string, tags []string, route Route), groups ...Group) {
	for _, g := range groups {
		walk("", nil, g, fn)
	}
}

func walk(parent string, inherited []string, g Group, fn func(string, []string, Route)) {
	prefix := parent + g.Prefix
	tags := g.Tags
	if len(tags) == 0 {
		tags = inherited
	}
	for _, r := range g.Routes {
		fn(prefix+r.Pattern, tags, r)
	}
	for _, child := range g.Children {
		walk(prefix, tags, child, fn)
	}
}

// Register adds all routes from groups to mux.
func Register(mux *http.ServeMux, groups ...Group) {
	Walk(func(path string, _ []string, r Route) {
		mux.HandleFunc(r.Method+" "+path, r.Handler)
	}, groups...)
}

// Describe adds every documented route in groups to spec. Operations
// without tags take their group's.
func Describe(spec *openapi.Spec, groups ...Group) {
	Walk(func(path string, tags []string, r Route) {
		if r.OpenAPI == nil {
			return
		}
		if len(r.OpenAPI.Tags) == 0 {
			r.OpenAPI.Tags = tags
		}
		item, ok := spec.Paths[path]
		if !ok {
			item = &openapi.PathItem{}
			spec.Paths[path] = item
		}
		item.Set(r.Method, r.OpenAPI)
	}, groups...)
}
