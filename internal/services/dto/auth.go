package dto

// RegisterRequest - запрос регистрации
type RegisterRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	AreaID    uint   `json:"id_area" validate:"required,gt=0"`
	RolID     uint   `json:"id_rol" validate:"required,gt=0"`
	Nombres   string `json:"nombres" validate:"required"`
	Apellidos string `json:"apellidos" validate:"required"`
}

// LoginRequest - запрос входа
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse - публичный профиль пользователя
type UserResponse struct {
	ID        uint   `json:"id_usuario"`
	Username  string `json:"username"`
	Nombres   string `json:"nombres"`
	Apellidos string `json:"apellidos"`
	AreaID    uint   `json:"id_area"`
	RolID     uint   `json:"id_rol"`
}

// LoginResponse - токен и профиль
type LoginResponse struct {
	Token   string        `json:"token"`
	Usuario *UserResponse `json:"usuario"`
}

type RegisterResponse struct {
	ID uint `json:"id_usuario"`
}
