package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"casos_backend/internal/logger"
	"casos_backend/internal/services"
	"casos_backend/internal/services/dto"
	"casos_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const (
	uploadFileField = "file"
	multipartMemory = 8 << 20
	bodySlack       = 1 << 20
)

// UploadLimits - ограничения multipart запроса
type UploadLimits struct {
	MaxFileSize int64
	MaxFiles    int
}

type AdjuntoHandler struct {
	*BaseHandler
	adjuntoService services.AdjuntoService
	limits         UploadLimits
}

func NewAdjuntoHandler(base *BaseHandler, adjuntoService services.AdjuntoService, limits UploadLimits) *AdjuntoHandler {
	return &AdjuntoHandler{
		BaseHandler:    base,
		adjuntoService: adjuntoService,
		limits:         limits,
	}
}

func (h *AdjuntoHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	adjuntos := rg.Group("/adjuntos")
	adjuntos.Use(authMW)
	{
		adjuntos.POST("/upload", h.Upload)
	}
}

// Upload - POST /adjuntos/upload, поля id_caso / id_seguimiento и один файл "file"
func (h *AdjuntoHandler) Upload(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	// Тело ограничено сверху, чтобы не читать заведомо лишнее
	maxBody := int64(h.limits.MaxFiles)*h.limits.MaxFileSize + bodySlack
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBody)

	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		if isBodyTooLarge(err) {
			logger.CtxWarn(ctx, "Upload body exceeds limit", "limit", maxBody)
			apperrors.HandleError(c, apperrors.ErrFileTooLarge)
			return
		}
		logger.CtxWithError(ctx, "Failed to parse multipart form", err)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Formulario multipart inválido"))
		return
	}
	form := c.Request.MultipartForm
	defer form.RemoveAll()

	header, err := pickUploadFile(form, h.limits)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	casoID, err := parseOptionalID(form.Value["id_caso"], "id_caso")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	segID, err := parseOptionalID(form.Value["id_seguimiento"], "id_seguimiento")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	file, err := header.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	resp, err := h.adjuntoService.Upload(ctx, h.GetDB(c), &dto.UploadRequest{
		UserID:        userID,
		CasoID:        casoID,
		SeguimientoID: segID,
		FileName:      header.Filename,
		ContentType:   header.Header.Get("Content-Type"),
		Size:          header.Size,
		File:          file,
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// pickUploadFile проверяет файлы формы: общее число, имена полей,
// ровно один "file" и его размер
func pickUploadFile(form *multipart.Form, limits UploadLimits) (*multipart.FileHeader, error) {
	total := 0
	for _, files := range form.File {
		total += len(files)
	}
	if limits.MaxFiles > 0 && total > limits.MaxFiles {
		return nil, apperrors.ErrTooManyFiles
	}

	for field := range form.File {
		if field != uploadFileField {
			return nil, apperrors.ErrUnexpectedFile
		}
	}

	files := form.File[uploadFileField]
	switch {
	case len(files) == 0:
		return nil, apperrors.ErrFileRequired
	case len(files) > 1:
		return nil, apperrors.ErrUnexpectedFile
	}

	if limits.MaxFileSize > 0 && files[0].Size > limits.MaxFileSize {
		return nil, apperrors.ErrFileTooLarge
	}
	return files[0], nil
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
