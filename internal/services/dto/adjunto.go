package dto

import "mime/multipart"

// UploadRequest - разобранный multipart запрос загрузки
type UploadRequest struct {
	UserID        uint
	CasoID        *uint
	SeguimientoID *uint
	FileName      string
	ContentType   string
	Size          int64
	File          multipart.File
}

type UploadResponse struct {
	ID            uint   `json:"id_adjunto"`
	Path          string `json:"path"`
	URL           string `json:"url"`
	NombreArchivo string `json:"nombre_archivo"`
	TipoMime      string `json:"tipo_mime"`
}
