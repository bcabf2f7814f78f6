package models

type Area struct {
	ID          uint    `gorm:"column:id_area;primaryKey;autoIncrement" json:"id_area"`
	Nombre      string  `gorm:"column:nombre;type:varchar(150);not null" json:"nombre"`
	Descripcion *string `gorm:"column:descripcion;type:varchar(500)" json:"descripcion"`
	ListaCorreo *string `gorm:"column:listaCorreo;type:varchar(1000)" json:"listaCorreo"`
}

func (Area) TableName() string { return "Area" }

type Rol struct {
	ID          uint    `gorm:"column:id_rol;primaryKey;autoIncrement" json:"id_rol"`
	Nombre      string  `gorm:"column:nombre;type:varchar(100);not null" json:"nombre"`
	Descripcion *string `gorm:"column:descripcion;type:varchar(500)" json:"descripcion"`
}

func (Rol) TableName() string { return "Rol" }
