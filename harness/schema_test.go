package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type convertParams struct {
	Amount   float64 `json:"amount" jsonschema:"required,description=Amount to convert"`
	Currency string  `json:"currency" jsonschema:"required,description=ISO currency code"`
}

func TestNewToolDefinition(t *testing.T) {
	def, err := NewToolDefinition[convertParams]("convert", "Convert an amount between currencies")
	require.NoError(t, err)

	assert.Equal(t, "convert", def.Name)
	assert.Equal(t, "Convert an amount between currencies", def.Description)
	assert.Equal(t, "object", def.InputSchema["type"])

	props, ok := def.InputSchema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "amount")
	assert.Contains(t, props, "currency")

	required, ok := def.InputSchema["required"].([]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"amount", "currency"}, required)
}
