package main

import (
	"net/http"

	"github.com/JaimeStill/detox/internal/api"
	"github.com/JaimeStill/detox/internal/config"
	"github.com/JaimeStill/detox/internal/infrastructure"
	"github.com/JaimeStill/detox/pkg/handlers"
	"github.com/JaimeStill/detox/pkg/module"
)

// Modules holds the mounted HTTP modules.
type Modules struct {
	API *module.Module
}

// NewModules builds every module from the shared infrastructure.
func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{API: apiModule}, nil
}

// Mount attaches every module to router.
func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

type status struct {
	Status string `json:"status"`
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, status{Status: "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, status{Status: "not ready"})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, status{Status: "ready"})
	})

	return router
}
