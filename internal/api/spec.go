package api

import (
	"github.com/JaimeStill/detox/internal/analysis"
	"github.com/JaimeStill/detox/internal/config"
	"github.com/JaimeStill/detox/pkg/openapi"
	"github.com/JaimeStill/detox/pkg/routes"
)

// Spec builds the OpenAPI document for the given route groups.
func Spec(cfg *config.Config, groups ...routes.Group) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)
	spec.Components.AddSchemas(analysis.Schemas())

	routes.Describe(spec, groups...)
	return spec
}
