package models

import "time"

type Caso struct {
	ID            uint       `gorm:"column:id_caso;primaryKey;autoIncrement" json:"id_caso"`
	Titulo        string     `gorm:"column:titulo;type:varchar(255);not null" json:"titulo"`
	Descripcion   *string    `gorm:"column:descripcion;type:text" json:"descripcion"`
	Tipo          string     `gorm:"column:tipo;type:varchar(100);not null" json:"tipo"`
	Estado        CasoEstado `gorm:"column:estado;type:varchar(20);not null;index" json:"estado"`
	FechaCreacion time.Time  `gorm:"column:fecha_creacion;autoCreateTime;index" json:"fecha_creacion"`
	FechaCierre   *time.Time `gorm:"column:fecha_cierre" json:"fecha_cierre"`
}

func (Caso) TableName() string { return "Caso" }

// CasoArea - связь кейса с областью, без собственного идентификатора
type CasoArea struct {
	CasoID  uint    `gorm:"column:id_caso;primaryKey;autoIncrement:false"`
	AreaID  uint    `gorm:"column:id_area;primaryKey;autoIncrement:false;index"`
	RolArea *string `gorm:"column:rol_area;type:varchar(100)"`
}

func (CasoArea) TableName() string { return "CasoArea" }

type Seguimiento struct {
	ID                uint       `gorm:"column:id_seguimiento;primaryKey;autoIncrement" json:"id_seguimiento"`
	CasoID            uint       `gorm:"column:id_caso;not null;index" json:"id_caso"`
	UsuarioID         uint       `gorm:"column:id_usuario;not null;index" json:"id_usuario"`
	Retroalimentacion string     `gorm:"column:retroalimentacion;type:text;not null" json:"retroalimentacion"`
	Estado            CasoEstado `gorm:"column:estado;type:varchar(20);not null" json:"estado"`
	FechaSeguimiento  time.Time  `gorm:"column:fecha_seguimiento;autoCreateTime" json:"fecha_seguimiento"`
}

func (Seguimiento) TableName() string { return "Seguimiento" }

// Adjunto - метаданные загруженного файла. Хотя бы одна из ссылок (кейс или
// сопровождение) заполнена всегда.
type Adjunto struct {
	ID            uint      `gorm:"column:id_adjunto;primaryKey;autoIncrement" json:"id_adjunto"`
	CasoID        *uint     `gorm:"column:id_caso;index" json:"id_caso"`
	SeguimientoID *uint     `gorm:"column:id_seguimiento;index" json:"id_seguimiento"`
	NombreArchivo string    `gorm:"column:nombre_archivo;type:varchar(255);not null" json:"nombre_archivo"`
	TipoMime      string    `gorm:"column:tipo_mime;type:varchar(255)" json:"tipo_mime"`
	RutaArchivo   string    `gorm:"column:ruta_archivo;type:varchar(500);not null" json:"ruta_archivo"`
	UsuarioID     uint      `gorm:"column:id_usuario;not null" json:"id_usuario"`
	FechaSubida   time.Time `gorm:"column:fecha_subida;autoCreateTime" json:"fecha_subida"`
}

func (Adjunto) TableName() string { return "Adjunto" }
