package api

import (
	"github.com/JaimeStill/detox/internal/analysis"
	"github.com/JaimeStill/detox/internal/recommendations"
	"github.com/JaimeStill/detox/internal/risk"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Analysis analysis.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	assessor := risk.New(runtime.Model, runtime.Cache, runtime.Logger)
	engine := recommendations.NewEngine(assessor, nil, runtime.Logger)

	return &Domain{
		Analysis: analysis.New(engine, runtime.Logger),
	}
}
