package validator

import (
	"testing"

	"casos_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type casoInput struct {
	Titulo string             `json:"titulo" validate:"required"`
	Estado *models.CasoEstado `json:"estado" validate:"omitempty,caso-estado"`
	Areas  []uint             `json:"areas" validate:"omitempty,dive,gt=0"`
}

func TestValidate_UsesJSONNames(t *testing.T) {
	v := New()

	err := v.Validate(&casoInput{})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Errors, "titulo")
	assert.Equal(t, "Este campo es obligatorio", vErr.Errors["titulo"])
}

func TestValidate_CasoEstado(t *testing.T) {
	v := New()

	ok := models.EstadoEnProceso
	assert.NoError(t, v.Validate(&casoInput{Titulo: "t", Estado: &ok}))

	bad := models.CasoEstado("Cerrado")
	err := v.Validate(&casoInput{Titulo: "t", Estado: &bad})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Errors, "estado")
}

func TestValidate_NilEstadoIsAllowed(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(&casoInput{Titulo: "t"}))
}
