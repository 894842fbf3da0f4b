package openapi

import "maps"

func errorContent(schema *Schema) map[string]*MediaType {
	return map[string]*MediaType{
		"application/json": {Schema: schema},
	}
}

// NewComponents creates Components with the shared error responses.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Failure": {
				Type:        "object",
				Description: "Structured client error with an actionable suggestion",
				Properties: map[string]*Schema{
					"error":      {Type: "boolean", Example: true},
					"kind":       {Type: "string", Description: "Machine-readable failure kind", Example: "zero_usage"},
					"message":    {Type: "string", Description: "User-facing message"},
					"suggestion": {Type: "string", Description: "Actionable next step"},
				},
				Required: []string{"error", "kind", "message", "suggestion"},
			},
		},
		Responses: map[string]*Response{
			"BadRequest": {
				Description: "Invalid or malformed input",
				Content:     errorContent(SchemaRef("Failure")),
			},
			"PayloadTooLarge": {
				Description: "Request body exceeds the configured limit",
				Content: errorContent(&Schema{
					Type: "object",
					Properties: map[string]*Schema{
						"error": {Type: "string", Description: "Error message"},
					},
				}),
			},
			"InternalError": {
				Description: "Unexpected server failure",
				Content: errorContent(&Schema{
					Type: "object",
					Properties: map[string]*Schema{
						"error": {Type: "string", Description: "Error message"},
					},
				}),
			},
		},
	}
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
