package analysis

import (
	"net/http"

	"github.com/JaimeStill/detox/pkg/openapi"
)

func ptr[T any](v T) *T { return &v }

var stringList = openapi.ArrayOf(&openapi.Schema{Type: "string"})

// Schemas returns the component schemas referenced by the analysis routes.
func Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"UsageRequest": {
			Type:        "object",
			Description: "Daily usage snapshot in canonical feature order",
			Properties: map[string]*openapi.Schema{
				"usage": {
					Type:        "array",
					Description: "screen_time, session_duration, app_switches, night_activity",
					Items:       &openapi.Schema{Type: "number", Minimum: ptr(0.0)},
					MinItems:    ptr(4),
					MaxItems:    ptr(4),
					Example:     []float64{400, 35, 60, 50},
				},
			},
			Required: []string{"usage"},
		},
		"Classification": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"cluster":   {Type: "integer", Enum: []any{0, 1, 2}},
				"label":     {Type: "string", Enum: []any{"light", "moderate", "heavy"}},
				"score":     {Type: "number"},
				"breakdown": {Type: "object", Description: "Weighted contribution per feature"},
			},
		},
		"Assessment": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"prediction":  {Type: "boolean"},
				"probability": {Type: "number", Minimum: ptr(0.0), Maximum: ptr(1.0)},
				"probabilities": {
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"healthy":  {Type: "number"},
						"addicted": {Type: "number"},
					},
				},
				"risk_level": {Type: "string", Enum: []any{"LOW", "MODERATE", "HIGH"}},
				"note":       {Type: "string"},
			},
		},
		"Bundle": {
			Type:        "object",
			Description: "Complete recommendation bundle for one usage snapshot",
			Properties: map[string]*openapi.Schema{
				"id":             {Type: "string", Format: "uuid"},
				"input":          {Type: "object"},
				"classification": openapi.SchemaRef("Classification"),
				"risk":           openapi.SchemaRef("Assessment"),
				"category":       {Type: "string", Enum: []any{"light", "moderate", "heavy", "addicted"}},
				"suggestions":    stringList,
				"targeted_tips":  stringList,
				"goals": {
					Type: "object",
					Properties: map[string]*openapi.Schema{
						"short_term": stringList,
						"long_term":  stringList,
					},
				},
				"reclaimable_time":       {Type: "integer", Description: "Minutes per day"},
				"alternative_activities": stringList,
				"encouragement":          {Type: "string"},
				"insights":               stringList,
				"generated_at":           {Type: "string", Format: "date-time"},
			},
		},
		"AnalyzeResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"error":  {Type: "boolean", Example: false},
				"bundle": openapi.SchemaRef("Bundle"),
			},
		},
		"SummaryResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"report": {Type: "string"},
			},
		},
		"SampleResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"description": {Type: "string"},
				"bundle":      openapi.SchemaRef("Bundle"),
			},
		},
	}
}

func failureResponses() map[int]*openapi.Response {
	return map[int]*openapi.Response{
		http.StatusBadRequest:            openapi.ResponseRef("BadRequest"),
		http.StatusRequestEntityTooLarge: openapi.ResponseRef("PayloadTooLarge"),
		http.StatusInternalServerError:   openapi.ResponseRef("InternalError"),
	}
}

var analyzeOp = &openapi.Operation{
	Summary:     "Analyze a usage snapshot",
	Description: "Validates the snapshot, classifies it, assesses addiction risk, and returns the recommendation bundle.",
	RequestBody: openapi.RequestBodyJSON("UsageRequest", true),
	Responses: withFailures(map[int]*openapi.Response{
		http.StatusOK: openapi.ResponseJSON("Recommendation bundle", "AnalyzeResponse"),
	}),
}

var summaryOp = &openapi.Operation{
	Summary:     "Render the text report",
	Description: "Returns the formatted report as JSON, or as plain text with Accept: text/plain.",
	RequestBody: openapi.RequestBodyJSON("UsageRequest", true),
	Responses: withFailures(map[int]*openapi.Response{
		http.StatusOK: {
			Description: "Formatted report",
			Content: map[string]*openapi.MediaType{
				"application/json": {Schema: openapi.SchemaRef("SummaryResponse")},
				"text/plain":       {Schema: &openapi.Schema{Type: "string"}},
			},
		},
	}),
}

var samplesOp = &openapi.Operation{
	Summary: "Analyze the reference sample users",
	Responses: map[int]*openapi.Response{
		http.StatusOK: {
			Description: "Bundles for every sample user",
			Content: map[string]*openapi.MediaType{
				"application/json": {Schema: openapi.ArrayOf(openapi.SchemaRef("SampleResult"))},
			},
		},
		http.StatusInternalServerError: openapi.ResponseRef("InternalError"),
	},
}

func withFailures(responses map[int]*openapi.Response) map[int]*openapi.Response {
	for code, r := range failureResponses() {
		responses[code] = r
	}
	return responses
}
