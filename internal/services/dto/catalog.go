package dto

type CreateAreaRequest struct {
	Nombre      string  `json:"nombre" validate:"required"`
	Descripcion *string `json:"descripcion"`
	ListaCorreo *string `json:"listaCorreo"`
}

type CreateAreaResponse struct {
	ID uint `json:"id_area"`
}

type CreateRolRequest struct {
	Nombre      string  `json:"nombre" validate:"required"`
	Descripcion *string `json:"descripcion"`
}

type CreateRolResponse struct {
	ID uint `json:"id_rol"`
}
