package models

// Usuario - профиль пользователя. Хэш пароля хранится отдельно в UsersAuth.
type Usuario struct {
	ID        uint   `gorm:"column:id_usuario;primaryKey;autoIncrement" json:"id_usuario"`
	AreaID    uint   `gorm:"column:id_area;not null;index" json:"id_area"`
	RolID     uint   `gorm:"column:id_rol;not null;index" json:"id_rol"`
	Username  string `gorm:"column:username;type:varchar(100);uniqueIndex;not null" json:"username"`
	Nombres   string `gorm:"column:nombres;type:varchar(150);not null" json:"nombres"`
	Apellidos string `gorm:"column:apellidos;type:varchar(150);not null" json:"apellidos"`
}

func (Usuario) TableName() string { return "Usuario" }

// FullName - "apellidos nombres", как показывается в сопровождениях
func (u *Usuario) FullName() string {
	return u.Apellidos + " " + u.Nombres
}

// UsersAuth - учетные данные. Существует ровно тогда, когда существует Usuario.
type UsersAuth struct {
	UsuarioID    uint   `gorm:"column:id_usuario;primaryKey;autoIncrement:false"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null"`
}

func (UsersAuth) TableName() string { return "UsersAuth" }
