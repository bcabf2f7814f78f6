package apperrors

import (
	"net/http"
)

/*
Предопределенные переменные для частых, статичных ошибок домена.
Сервисы возвращают их напрямую, хэндлеры отдают через HandleError.
*/

// --- Auth ---

// ErrDuplicateUser - username уже занят.
var ErrDuplicateUser = New(
	CodeAlreadyExists,
	"auth",
	"El nombre de usuario ya existe",
	http.StatusBadRequest,
)

// ErrInvalidCredentials - неверный username или пароль.
// Одинаковый ответ для обоих случаев, чтобы не раскрывать существование пользователя.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Credenciales inválidas",
	http.StatusBadRequest,
)

// ErrInvalidToken - подпись не сходится, токен испорчен или просрочен.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Token inválido o expirado",
	http.StatusUnauthorized,
)

// ErrMissingToken - нет заголовка Authorization или схема не Bearer.
var ErrMissingToken = New(
	CodeUnauthorized,
	"auth",
	"Token de autenticación requerido",
	http.StatusUnauthorized,
)

// ErrUserNotFound - пользователь не найден.
var ErrUserNotFound = New(
	CodeNotFound,
	"usuario",
	"Usuario no encontrado",
	http.StatusNotFound,
)

// --- Casos & Seguimientos ---

// ErrCasoNotFound - кейс не найден.
var ErrCasoNotFound = New(
	CodeNotFound,
	"caso",
	"Caso no encontrado",
	http.StatusNotFound,
)

// ErrSeguimientoNotFound - запись сопровождения не найдена.
var ErrSeguimientoNotFound = New(
	CodeNotFound,
	"seguimiento",
	"Seguimiento no encontrado",
	http.StatusNotFound,
)

// ErrNothingToUpdate - в PUT не передано ни одного поля.
var ErrNothingToUpdate = New(
	CodeInvalidOperation,
	"seguimiento",
	"Nada que actualizar",
	http.StatusBadRequest,
)

// ErrUnknownArea - в списке областей кейса есть несуществующий id.
var ErrUnknownArea = New(
	CodeValidationFailed,
	"caso",
	"Una o más áreas no existen",
	http.StatusBadRequest,
)

// --- Adjuntos ---

// ErrFileTooLarge - файл больше лимита (10MB).
var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"adjunto",
	"El archivo es demasiado grande (máximo 10MB)",
	http.StatusRequestEntityTooLarge,
)

// ErrTooManyFiles - в запросе больше файлов, чем разрешено (5).
var ErrTooManyFiles = New(
	CodeLimitExceeded,
	"adjunto",
	"Demasiados archivos (máximo 5)",
	http.StatusBadRequest,
)

// ErrUnexpectedFile - файл пришел не в поле "file" или их несколько.
var ErrUnexpectedFile = New(
	CodeValidationFailed,
	"adjunto",
	"Campo de archivo inesperado",
	http.StatusBadRequest,
)

// ErrFileRequired - в запросе нет файла.
var ErrFileRequired = New(
	CodeValidationFailed,
	"adjunto",
	"Archivo requerido",
	http.StatusBadRequest,
)

// ErrOwnerRequired - не передан ни id_caso, ни id_seguimiento.
var ErrOwnerRequired = New(
	CodeValidationFailed,
	"adjunto",
	"Se requiere id_caso o id_seguimiento",
	http.StatusBadRequest,
)
