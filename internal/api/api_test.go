package api_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JaimeStill/detox/internal/api"
	"github.com/JaimeStill/detox/internal/config"
	"github.com/JaimeStill/detox/internal/infrastructure"
	"github.com/JaimeStill/detox/pkg/middleware"
	"github.com/JaimeStill/detox/pkg/module"
)

func setup(t *testing.T) (*config.Config, http.Handler) {
	t.Helper()

	cfg, err := config.LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.API.CORS.Enabled = true
	cfg.API.CORS.Origins = []string{middleware.AnyOrigin}

	infra, err := infrastructure.NewWithLogger(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("infrastructure: %v", err)
	}

	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	router := module.NewRouter()
	router.Mount(m)
	return cfg, router
}

func TestNewModulePrefix(t *testing.T) {
	cfg, _ := setup(t)
	infra, err := infrastructure.NewWithLogger(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("infrastructure: %v", err)
	}

	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}
	if m.Prefix() != "/api" {
		t.Errorf("prefix: got %s, want /api", m.Prefix())
	}
}

func TestAnalyzeThroughModule(t *testing.T) {
	_, router := setup(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(`{"usage":[400,35,60,50]}`))
	req.Header.Set("Origin", "http://mobile.local")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("cors origin: got %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}

	var resp struct {
		Error  bool `json:"error"`
		Bundle struct {
			Category string `json:"category"`
			Risk     struct {
				Level string `json:"risk_level"`
			} `json:"risk"`
		} `json:"bundle"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error || resp.Bundle.Category == "" || resp.Bundle.Risk.Level == "" {
		t.Errorf("response: got %+v", resp)
	}
}

func TestBodyLimit(t *testing.T) {
	cfg, router := setup(t)

	body := `{"usage":[1,2,3,4],"pad":"` + strings.Repeat("x", int(cfg.API.MaxBodySize)) + `"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/analyze", strings.NewReader(body)))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status: got %d, want 413", rec.Code)
	}
}

func TestOpenAPIDocument(t *testing.T) {
	_, router := setup(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/openapi.json", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var doc struct {
		OpenAPI string                    `json:"openapi"`
		Info    struct{ Title string }    `json:"info"`
		Paths   map[string]map[string]any `json:"paths"`
		Servers []struct{ URL string }    `json:"servers"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if doc.OpenAPI != "3.1.0" || doc.Info.Title != "Detox API" {
		t.Errorf("header: got %s %q", doc.OpenAPI, doc.Info.Title)
	}
	if len(doc.Servers) != 1 || doc.Servers[0].URL != "/api" {
		t.Errorf("servers: got %+v", doc.Servers)
	}

	for path, method := range map[string]string{
		"/analyze":         "post",
		"/analyze/samples": "get",
		"/summary":         "post",
	} {
		if _, ok := doc.Paths[path][method]; !ok {
			t.Errorf("missing %s %s", method, path)
		}
	}
}

func TestSpecSchemas(t *testing.T) {
	cfg, _ := setup(t)
	spec := api.Spec(cfg)

	for _, name := range []string{"UsageRequest", "Bundle", "Failure", "SummaryResponse"} {
		if _, ok := spec.Components.Schemas[name]; !ok {
			t.Errorf("missing schema %s", name)
		}
	}
}
