package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"casos_backend/internal/logger"
	"casos_backend/internal/models"
	"casos_backend/internal/repositories"
	"casos_backend/internal/services/dto"
	"casos_backend/internal/storage"
	"casos_backend/pkg/apperrors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const octetStream = "application/octet-stream"

type AdjuntoService interface {
	Upload(ctx context.Context, db *gorm.DB, req *dto.UploadRequest) (*dto.UploadResponse, error)
}

// UploadConfig - лимиты загрузки
type UploadConfig struct {
	MaxFileSize int64
	MaxFiles    int
}

type AdjuntoServiceImpl struct {
	adjuntoRepo repositories.AdjuntoRepository
	casoRepo    repositories.CasoRepository
	segRepo     repositories.SeguimientoRepository
	storage     storage.Storage
	config      UploadConfig
}

func NewAdjuntoService(
	adjuntoRepo repositories.AdjuntoRepository,
	casoRepo repositories.CasoRepository,
	segRepo repositories.SeguimientoRepository,
	storage storage.Storage,
	config UploadConfig,
) AdjuntoService {
	return &AdjuntoServiceImpl{
		adjuntoRepo: adjuntoRepo,
		casoRepo:    casoRepo,
		segRepo:     segRepo,
		storage:     storage,
		config:      config,
	}
}

// Upload сохраняет файл и затем его метаданные. Если метаданные не записались,
// файл удаляется; ошибка удаления только логируется.
func (s *AdjuntoServiceImpl) Upload(ctx context.Context, db *gorm.DB, req *dto.UploadRequest) (*dto.UploadResponse, error) {
	if req.File == nil {
		return nil, apperrors.ErrFileRequired
	}
	if s.config.MaxFileSize > 0 && req.Size > s.config.MaxFileSize {
		return nil, apperrors.ErrFileTooLarge
	}
	if req.CasoID == nil && req.SeguimientoID == nil {
		return nil, apperrors.ErrOwnerRequired
	}

	if err := s.checkOwners(db, req); err != nil {
		return nil, err
	}

	tipoMime, err := detectMime(req.File, req.ContentType)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	name := uuid.NewString() + filepath.Ext(req.FileName)
	if err := s.storage.Save(ctx, name, req.File); err != nil {
		logger.CtxWithError(ctx, "Failed to store attachment", err, "file", name)
		return nil, apperrors.InternalError(err)
	}

	adjunto := &models.Adjunto{
		CasoID:        req.CasoID,
		SeguimientoID: req.SeguimientoID,
		NombreArchivo: req.FileName,
		TipoMime:      tipoMime,
		RutaArchivo:   s.storage.Path(name),
		UsuarioID:     req.UserID,
	}

	if err := s.adjuntoRepo.Create(db, adjunto); err != nil {
		if delErr := s.storage.Delete(ctx, name); delErr != nil {
			logger.CtxWithError(ctx, "Failed to clean up stored file", delErr, "file", name)
		}
		return nil, apperrors.PersistenceError(err)
	}

	logger.CtxInfo(ctx, "Attachment uploaded",
		"id_adjunto", adjunto.ID,
		"file", name,
		"size", req.Size,
	)

	return &dto.UploadResponse{
		ID:            adjunto.ID,
		Path:          adjunto.RutaArchivo,
		URL:           s.storage.URL(name),
		NombreArchivo: adjunto.NombreArchivo,
		TipoMime:      adjunto.TipoMime,
	}, nil
}

func (s *AdjuntoServiceImpl) checkOwners(db *gorm.DB, req *dto.UploadRequest) error {
	if req.CasoID != nil {
		exists, err := s.casoRepo.Exists(db, *req.CasoID)
		if err != nil {
			return apperrors.PersistenceError(err)
		}
		if !exists {
			return apperrors.ErrCasoNotFound
		}
	}

	if req.SeguimientoID != nil {
		exists, err := s.segRepo.Exists(db, *req.SeguimientoID)
		if err != nil {
			return apperrors.PersistenceError(err)
		}
		if !exists {
			return apperrors.ErrSeguimientoNotFound
		}
	}
	return nil
}

// detectMime берет тип из заголовка части, иначе определяет по содержимому
func detectMime(f io.ReadSeeker, header string) (string, error) {
	if header != "" && header != octetStream {
		return header, nil
	}

	mt, err := mimetype.DetectReader(f)
	if _, seekErr := f.Seek(0, io.SeekStart); seekErr != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", seekErr)
	}
	if err != nil {
		return octetStream, nil
	}
	return mt.String(), nil
}
