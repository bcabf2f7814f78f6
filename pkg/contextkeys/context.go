package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// DBContextKey - это ключ, по которому мы храним *gorm.DB в context
const DBContextKey = contextKey("db")

// UserIDKey - ключ gin.Context, под которым AuthMiddleware кладет id пользователя
const UserIDKey = "userID"
