package dto

import "casos_backend/internal/models"

type CreateSeguimientoRequest struct {
	CasoID            uint               `json:"id_caso" validate:"required,gt=0"`
	Retroalimentacion string             `json:"retroalimentacion" validate:"required"`
	Estado            *models.CasoEstado `json:"estado" validate:"omitempty,caso-estado"`
}

type CreateSeguimientoResponse struct {
	ID uint `json:"id_seguimiento"`
}

// UpdateSeguimientoRequest - оба поля необязательны, но хотя бы одно нужно
type UpdateSeguimientoRequest struct {
	Retroalimentacion *string            `json:"retroalimentacion"`
	Estado            *models.CasoEstado `json:"estado" validate:"omitempty,caso-estado"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
