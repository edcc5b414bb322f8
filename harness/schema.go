package harness

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// NewToolDefinition builds a ToolDefinition whose input schema is reflected
// from a Go struct type using json and jsonschema struct tags.
//
// Example:
//
//	type ConvertParams struct {
//	    Amount   float64 `json:"amount" jsonschema:"required,description=Amount to convert"`
//	    Currency string  `json:"currency" jsonschema:"required,description=ISO currency code"`
//	}
//
//	def, err := harness.NewToolDefinition[ConvertParams]("convert", "Convert an amount between currencies")
func NewToolDefinition[T any](name, description string) (ToolDefinition, error) {
	reflector := &jsonschema.Reflector{
		DoNotReference: true, // Inline all definitions instead of using $ref
		ExpandedStruct: true,
	}

	var zero T
	schema := reflector.Reflect(zero)

	data, err := json.Marshal(schema)
	if err != nil {
		return ToolDefinition{}, fmt.Errorf("generate schema for %T: %w", zero, err)
	}
	var inputSchema map[string]any
	if err := json.Unmarshal(data, &inputSchema); err != nil {
		return ToolDefinition{}, fmt.Errorf("decode schema for %T: %w", zero, err)
	}

	return ToolDefinition{
		Name:        name,
		Description: description,
		InputSchema: inputSchema,
	}, nil
}
