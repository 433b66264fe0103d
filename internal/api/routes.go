package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/JaimeStill/estimator/internal/config"
	"github.com/JaimeStill/estimator/internal/dashboard"
	"github.com/JaimeStill/estimator/internal/disposition"
	"github.com/JaimeStill/estimator/internal/intake"
	"github.com/JaimeStill/estimator/internal/orders"
	"github.com/JaimeStill/estimator/internal/retryqueue"
	"github.com/JaimeStill/estimator/internal/reviews"
	"github.com/JaimeStill/estimator/internal/validation"
	"github.com/JaimeStill/estimator/internal/workflow"
	"github.com/JaimeStill/estimator/pkg/openapi"
	"github.com/JaimeStill/estimator/pkg/routes"
)

type schemaSource interface {
	Schemas() map[string]*openapi.Schema
}

var schemaSources = []schemaSource{
	orders.Spec,
	validation.Spec,
	disposition.Spec,
	intake.Spec,
	workflow.Spec,
	reviews.Spec,
	retryqueue.Spec,
	dashboard.Spec,
}

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	dash, err := dashboard.NewHandler(domain.Orders, runtime.BasePath, runtime.Logger)
	if err != nil {
		return err
	}
	wf := workflow.NewHandler(domain.Orders, runtime.Logger)

	groups := []routes.Group{
		intake.NewHandler(domain.Orders, runtime.Content, runtime.Logger, runtime.MaxUploadSize).Routes(),
		disposition.NewHandler(domain.Resolver, domain.RetryQueue, runtime.Logger).Routes(),
		validation.NewHandler(runtime.Logger).Routes(),
		domain.Orders.Handler().Routes(),
		wf.Routes(),
		wf.MISRoutes(),
		reviews.NewHandler(domain.Reviews, runtime.Logger).Routes(),
		retryqueue.NewHandler(domain.RetryQueue, runtime.Logger).Routes(),
		dash.Routes(),
	}
	routes.Register(mux, groups...)

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	server := cfg.API.OpenAPI.Server
	if server == "" {
		server = runtime.BasePath
	}
	spec.AddServer(server)
	for _, src := range schemaSources {
		spec.Components.AddSchemas(src.Schemas())
	}
	routes.Describe(spec, groups...)

	if refs := spec.DanglingRefs(); len(refs) > 0 {
		return fmt.Errorf("openapi spec has undefined refs: %s", strings.Join(refs, ", "))
	}

	jsonSpec, err := openapi.MarshalJSON(spec)
	if err != nil {
		return fmt.Errorf("marshal openapi spec: %w", err)
	}
	yamlSpec, err := openapi.MarshalYAML(spec)
	if err != nil {
		return fmt.Errorf("marshal openapi spec: %w", err)
	}
	mux.HandleFunc("GET /openapi.json", openapi.Serve("application/json; charset=utf-8", jsonSpec))
	mux.HandleFunc("GET /openapi.yaml", openapi.Serve("application/yaml; charset=utf-8", yamlSpec))

	return nil
}
