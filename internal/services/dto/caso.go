package dto

import (
	"casos_backend/internal/models"
)

// CasoListQuery - фильтры GET /casos
type CasoListQuery struct {
	Estado *models.CasoEstado `form:"estado" json:"estado" validate:"omitempty,caso-estado"`
	AreaID *uint              `form:"id_area" json:"id_area"`
}

// CreateCasoRequest - создание кейса с привязкой к областям
type CreateCasoRequest struct {
	Titulo      string             `json:"titulo" validate:"required"`
	Descripcion *string            `json:"descripcion"`
	Tipo        string             `json:"tipo" validate:"required"`
	Estado      *models.CasoEstado `json:"estado" validate:"omitempty,caso-estado"`
	Areas       []uint             `json:"areas" validate:"omitempty,dive,gt=0"`
}

type CreateCasoResponse struct {
	ID uint `json:"id_caso"`
}

// CasoListItem - строка списка кейсов с агрегированными областями
// и областью запрашивающего пользователя
type CasoListItem struct {
	models.Caso
	AreasAsignadas         *string `json:"areas_asignadas"`
	AreaUsuario            string  `json:"area_usuario"`
	DescripcionAreaUsuario string  `json:"descripcion_area_usuario"`
}

// CasoAreaItem - область, назначенная кейсу
type CasoAreaItem struct {
	ID          uint    `json:"id_area"`
	Nombre      string  `json:"nombre"`
	ListaCorreo *string `json:"listaCorreo"`
}

// SeguimientoItem - запись журнала с автором и его областью
type SeguimientoItem struct {
	models.Seguimiento
	Usuario                string  `json:"usuario"`
	AreaUsuario            *string `json:"area_usuario"`
	DescripcionAreaUsuario *string `json:"descripcion_area_usuario"`
}

// CasoDetailResponse - полный кейс: поля, области, журнал, вложения
type CasoDetailResponse struct {
	Caso         models.Caso       `json:"caso"`
	Areas        []CasoAreaItem    `json:"areas"`
	Seguimientos []SeguimientoItem `json:"seguimientos"`
	Adjuntos     []models.Adjunto  `json:"adjuntos"`
}
