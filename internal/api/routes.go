package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/detox/internal/config"
	"github.com/JaimeStill/detox/pkg/openapi"
	"github.com/JaimeStill/detox/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, cfg *config.Config) error {
	groups := []routes.Group{
		domain.Analysis.Handler(int64(cfg.API.MaxBodySize)).Routes(),
	}

	spec, err := openapi.MarshalJSON(Spec(cfg, groups...))
	if err != nil {
		return fmt.Errorf("build openapi spec: %w", err)
	}

	routes.Register(mux, groups...)
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))
	return nil
}
