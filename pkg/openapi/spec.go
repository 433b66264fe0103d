package openapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Version is the OpenAPI document version produced by NewSpec.
const Version = "3.1.0"

// Spec represents an OpenAPI 3.1 document.
type Spec struct {
	OpenAPI    string               `json:"openapi"`
	Info       *Info                `json:"info"`
	Servers    []*Server            `json:"servers,omitempty"`
	Paths      map[string]*PathItem `json:"paths"`
	Components *Components          `json:"components,omitempty"`
}

func NewSpec(title, version string) *Spec {
	return &Spec{
		OpenAPI:    Version,
		Info:       &Info{Title: title, Version: version},
		Components: NewComponents(),
		Paths:      make(map[string]*PathItem),
	}
}

func (s *Spec) AddServer(url string) {
	s.Servers = append(s.Servers, &Server{URL: url})
}

func (s *Spec) SetDescription(desc string) {
	s.Info.Description = desc
}

// Operation returns the operation documented for method on path, or nil.
func (s *Spec) Operation(method, path string) *Operation {
	item, ok := s.Paths[path]
	if !ok {
		return nil
	}
	return item.Lookup(method)
}

// DanglingRefs lists every $ref in the paths that names a component the
// spec does not define, sorted and without duplicates.
func (s *Spec) DanglingRefs() []string {
	var missing []string
	check := func(ref string) {
		switch {
		case ref == "":
		case strings.HasPrefix(ref, "#/components/schemas/"):
			if _, ok := s.Components.Schemas[strings.TrimPrefix(ref, "#/components/schemas/")]; !ok {
				missing = append(missing, ref)
			}
		case strings.HasPrefix(ref, "#/components/responses/"):
			if _, ok := s.Components.Responses[strings.TrimPrefix(ref, "#/components/responses/")]; !ok {
				missing = append(missing, ref)
			}
		}
	}
	var schema func(*Schema)
	schema = func(sc *Schema) {
		if sc == nil {
			return
		}
		check(sc.Ref)
		schema(sc.Items)
		for _, p := range sc.Properties {
			schema(p)
		}
	}
	content := func(m map[string]*MediaType) {
		for _, mt := range m {
			schema(mt.Schema)
		}
	}

	for _, item := range s.Paths {
		for _, op := range item.operations() {
			for _, p := range op.Parameters {
				schema(p.Schema)
			}
			if op.RequestBody != nil {
				content(op.RequestBody.Content)
			}
			for _, r := range op.Responses {
				check(r.Ref)
				content(r.Content)
			}
		}
	}

	slices.Sort(missing)
	return slices.Compact(missing)
}

// MarshalJSON serializes spec to indented JSON.
func MarshalJSON(spec *Spec) ([]byte, error) {
	return json.MarshalIndent(spec, "", "  ")
}

// MarshalYAML serializes spec to YAML with the same field names as the
// JSON form.
func MarshalYAML(spec *Spec) ([]byte, error) {
	data, err := json.Marshal(spec)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

// Serve returns a handler that writes pre-serialized spec bytes.
func Serve(contentType string, body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}
}
