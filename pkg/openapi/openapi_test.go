package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/estimator/pkg/openapi"
)

func TestNewSpec(t *testing.T) {
	spec := openapi.NewSpec("Estimator", "1.2.0")

	if spec.OpenAPI != openapi.Version {
		t.Errorf("openapi = %s, want %s", spec.OpenAPI, openapi.Version)
	}
	if spec.Info.Title != "Estimator" || spec.Info.Version != "1.2.0" {
		t.Errorf("info = %+v", spec.Info)
	}
	for _, name := range []string{"BadRequest", "NotFound", "Conflict", "PayloadTooLarge", "BadGateway"} {
		r, ok := spec.Components.Responses[name]
		if !ok {
			t.Errorf("missing response %s", name)
			continue
		}
		if ref := r.Content["application/json"].Schema.Ref; ref != "#/components/schemas/Error" {
			t.Errorf("%s schema ref = %s", name, ref)
		}
	}
	if got := spec.DanglingRefs(); len(got) != 0 {
		t.Errorf("empty spec has dangling refs %v", got)
	}
}

func TestPathItem(t *testing.T) {
	var item openapi.PathItem
	get := &openapi.Operation{Summary: "get"}
	put := &openapi.Operation{Summary: "put"}

	item.Set(http.MethodGet, get)
	item.Set(http.MethodPut, put)
	item.Set(http.MethodPatch, &openapi.Operation{Summary: "ignored"})

	if item.Lookup(http.MethodGet) != get || item.Lookup(http.MethodPut) != put {
		t.Error("set operations not returned by Lookup")
	}
	if item.Lookup(http.MethodPatch) != nil || item.Lookup(http.MethodPost) != nil {
		t.Error("unexpected operation")
	}
}

func TestParams(t *testing.T) {
	tests := []struct {
		name string
		got  *openapi.Parameter
		want *openapi.Parameter
	}{
		{
			name: "integer path param",
			got:  openapi.PathParam("id", "Order id", "int64"),
			want: &openapi.Parameter{Name: "id", In: "path", Required: true, Description: "Order id", Schema: &openapi.Schema{Type: "integer", Format: "int64"}},
		},
		{
			name: "uuid path param",
			got:  openapi.PathParam("id", "Task id", "uuid"),
			want: &openapi.Parameter{Name: "id", In: "path", Required: true, Description: "Task id", Schema: &openapi.Schema{Type: "string", Format: "uuid"}},
		},
		{
			name: "query param",
			got:  openapi.QueryParam("rush", "boolean", "Rush flag", false),
			want: &openapi.Parameter{Name: "rush", In: "query", Description: "Rush flag", Schema: &openapi.Schema{Type: "boolean"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDanglingRefs(t *testing.T) {
	spec := openapi.NewSpec("Test", "1.0.0")
	spec.Components.AddSchemas(map[string]*openapi.Schema{"Order": {Type: "object"}})

	item := &openapi.PathItem{}
	item.Set(http.MethodGet, &openapi.Operation{
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("ok", "Order"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Gone"),
		},
	})
	item.Set(http.MethodPost, &openapi.Operation{
		RequestBody: openapi.RequestBodyJSON("Missing", true),
		Responses: map[int]*openapi.Response{
			200: {Description: "list", Content: map[string]*openapi.MediaType{
				"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Missing")}},
			}},
		},
	})
	spec.Paths["/orders"] = item

	want := []string{"#/components/responses/Gone", "#/components/schemas/Missing"}
	if diff := cmp.Diff(want, spec.DanglingRefs()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	if op := spec.Operation(http.MethodPost, "/orders"); op == nil || !op.RequestBody.Required {
		t.Error("Operation did not find POST /orders")
	}
	if spec.Operation(http.MethodGet, "/missing") != nil {
		t.Error("Operation found an undefined path")
	}
}

func TestMarshal(t *testing.T) {
	spec := openapi.NewSpec("Estimator", "1.0.0")
	spec.SetDescription("print orders")
	spec.AddServer("/api")

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	var fromJSON map[string]any
	if err := json.Unmarshal(data, &fromJSON); err != nil {
		t.Fatalf("unmarshal json: %v", err)
	}

	data, err = openapi.MarshalYAML(spec)
	if err != nil {
		t.Fatalf("MarshalYAML: %v", err)
	}
	var fromYAML map[string]any
	if err := yaml.Unmarshal(data, &fromYAML); err != nil {
		t.Fatalf("unmarshal yaml: %v", err)
	}

	for _, key := range []string{"openapi", "info", "servers", "paths", "components"} {
		if _, ok := fromYAML[key]; !ok {
			t.Errorf("yaml missing %q", key)
		}
		if _, ok := fromJSON[key]; !ok {
			t.Errorf("json missing %q", key)
		}
	}
	info, _ := fromYAML["info"].(map[string]any)
	if info["title"] != "Estimator" || info["description"] != "print orders" {
		t.Errorf("yaml info = %v", info)
	}
}

func TestServe(t *testing.T) {
	body := []byte(`{"openapi":"3.1.0"}`)
	rec := httptest.NewRecorder()

	openapi.Serve("application/json", body)(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %s", ct)
	}
	if rec.Body.String() != string(body) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestConfig(t *testing.T) {
	env := &openapi.ConfigEnv{
		Title:  "TEST_OPENAPI_TITLE",
		Server: "TEST_OPENAPI_SERVER",
	}

	tests := []struct {
		name    string
		base    openapi.Config
		overlay openapi.Config
		env     map[string]string
		want    openapi.Config
	}{
		{
			name: "defaults",
			want: openapi.Config{Title: "Print Estimator API", Description: "Print order intake, estimation, and disposition service."},
		},
		{
			name:    "overlay wins over base",
			base:    openapi.Config{Title: "Base", Description: "base"},
			overlay: openapi.Config{Title: "Overlay"},
			want:    openapi.Config{Title: "Overlay", Description: "base"},
		},
		{
			name:    "env wins over overlay",
			overlay: openapi.Config{Title: "Overlay", Server: "https://a.example"},
			env:     map[string]string{"TEST_OPENAPI_TITLE": "Env", "TEST_OPENAPI_SERVER": "https://b.example"},
			want:    openapi.Config{Title: "Env", Description: "Print order intake, estimation, and disposition service.", Server: "https://b.example"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg := tt.base
			cfg.Merge(&tt.overlay)
			if err := cfg.Finalize(env); err != nil {
				t.Fatalf("Finalize: %v", err)
			}
			if diff := cmp.Diff(tt.want, cfg); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
