package main

import (
	"encoding/json"
	"net/http"

	"github.com/JaimeStill/estimator/internal/api"
	"github.com/JaimeStill/estimator/internal/config"
	"github.com/JaimeStill/estimator/internal/infrastructure"
	"github.com/JaimeStill/estimator/pkg/module"
)

// Modules holds the mounted application modules.
type Modules struct {
	API *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{API: apiModule}, nil
}

// Mount attaches every module to router.
func (m *Modules) Mount(router *module.Router) error {
	return router.Mount(m.API)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		failed := infra.Lifecycle.Failures()
		ready := infra.Lifecycle.Ready()
		if ready {
			if err := infra.Database.Check(r.Context()); err != nil {
				ready = false
				failed = map[string]string{"database": err.Error()}
			}
		}

		if !ready {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]any{
				"status": "not ready",
				"failed": failed,
			})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	return router
}
