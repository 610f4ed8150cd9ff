package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"catalogo/internal/validation"
)

func priceRule() *validation.Rule {
	return validation.Body("price").
		IsNumeric("El precio debe ser un número").
		NotEmpty("Precio de producto obligatorio").
		Custom(func(value interface{}) bool {
			n, ok := validation.AsNumber(value)
			return ok && n > 0
		}, "El precio debe ser mayor a 0")
}

func nameRule() *validation.Rule {
	return validation.Body("name").NotEmpty("Nombre de producto obligatorio")
}

func idRule() *validation.Rule {
	return validation.Param("id").IsInt("ID debe ser un número entero")
}

func TestRun_ValidInput(t *testing.T) {
	failures := validation.Run(
		[]*validation.Rule{nameRule(), priceRule()},
		nil,
		map[string]interface{}{"name": "Monitor curvo", "price": float64(300)},
	)
	assert.Empty(t, failures)
}

func TestRun_PriceChecks(t *testing.T) {
	tests := []struct {
		name     string
		body     map[string]interface{}
		wantMsgs []string
	}{
		{
			name:     "non-positive price fails only the positivity check",
			body:     map[string]interface{}{"price": float64(-5)},
			wantMsgs: []string{"El precio debe ser mayor a 0"},
		},
		{
			name:     "zero price fails only the positivity check",
			body:     map[string]interface{}{"price": float64(0)},
			wantMsgs: []string{"El precio debe ser mayor a 0"},
		},
		{
			name: "non-numeric price fails numeric and positivity checks",
			body: map[string]interface{}{"price": "hola"},
			wantMsgs: []string{
				"El precio debe ser un número",
				"El precio debe ser mayor a 0",
			},
		},
		{
			name: "missing price fails all three checks",
			body: map[string]interface{}{},
			wantMsgs: []string{
				"El precio debe ser un número",
				"Precio de producto obligatorio",
				"El precio debe ser mayor a 0",
			},
		},
		{
			name:     "numeric string price passes",
			body:     map[string]interface{}{"price": "19.99"},
			wantMsgs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failures := validation.Run([]*validation.Rule{priceRule()}, nil, tt.body)
			var msgs []string
			for _, f := range failures {
				msgs = append(msgs, f.Msg)
			}
			assert.Equal(t, tt.wantMsgs, msgs)
		})
	}
}

func TestRun_CollectsAllFailuresInDeclarationOrder(t *testing.T) {
	rules := []*validation.Rule{
		nameRule(),
		priceRule(),
		validation.Body("availability").IsBoolean("Información de disponibilidad no válido"),
	}

	failures := validation.Run(rules, nil, map[string]interface{}{})

	assert.Len(t, failures, 5)
	assert.Equal(t, "Nombre de producto obligatorio", failures[0].Msg)
	assert.Equal(t, "El precio debe ser un número", failures[1].Msg)
	assert.Equal(t, "Precio de producto obligatorio", failures[2].Msg)
	assert.Equal(t, "El precio debe ser mayor a 0", failures[3].Msg)
	assert.Equal(t, "Información de disponibilidad no válido", failures[4].Msg)
}

func TestRun_ParamInteger(t *testing.T) {
	rules := []*validation.Rule{idRule()}

	failures := validation.Run(rules, map[string]string{"id": "42"}, nil)
	assert.Empty(t, failures)

	failures = validation.Run(rules, map[string]string{"id": "not-valid-id"}, nil)
	if assert.Len(t, failures, 1) {
		assert.Equal(t, "ID debe ser un número entero", failures[0].Msg)
		assert.Equal(t, "id", failures[0].Path)
		assert.Equal(t, "params", failures[0].Location)
		assert.Equal(t, "not-valid-id", failures[0].Value)
	}
}

func TestRun_BooleanCheck(t *testing.T) {
	rule := validation.Body("availability").IsBoolean("Información de disponibilidad no válido")

	failures := validation.Run([]*validation.Rule{rule}, nil, map[string]interface{}{"availability": true})
	assert.Empty(t, failures)

	failures = validation.Run([]*validation.Rule{rule}, nil, map[string]interface{}{"availability": "maybe"})
	assert.Len(t, failures, 1)
}

func TestCoercionHelpers(t *testing.T) {
	n, ok := validation.AsNumber(float64(300))
	assert.True(t, ok)
	assert.Equal(t, float64(300), n)

	n, ok = validation.AsNumber("250.5")
	assert.True(t, ok)
	assert.Equal(t, 250.5, n)

	_, ok = validation.AsNumber("hola")
	assert.False(t, ok)

	b, ok := validation.AsBool(true)
	assert.True(t, ok)
	assert.True(t, b)

	b, ok = validation.AsBool("false")
	assert.True(t, ok)
	assert.False(t, b)

	_, ok = validation.AsBool("maybe")
	assert.False(t, ok)

	assert.Equal(t, "Monitor curvo", validation.AsString("Monitor curvo"))
	assert.Equal(t, "300", validation.AsString(float64(300)))
	assert.Equal(t, "", validation.AsString(nil))
}

func TestRun_FieldErrorShape(t *testing.T) {
	failures := validation.Run([]*validation.Rule{nameRule()}, nil, map[string]interface{}{"name": ""})

	if assert.Len(t, failures, 1) {
		assert.Equal(t, "field", failures[0].Type)
		assert.Equal(t, "name", failures[0].Path)
		assert.Equal(t, "body", failures[0].Location)
		assert.Equal(t, "", failures[0].Value)
	}
}
