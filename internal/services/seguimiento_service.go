package services

import (
	"time"

	"casos_backend/internal/models"
	"casos_backend/internal/repositories"
	"casos_backend/internal/services/dto"
	"casos_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type SeguimientoService interface {
	AddSeguimiento(db *gorm.DB, authorID uint, req *dto.CreateSeguimientoRequest) (uint, error)
	UpdateSeguimiento(db *gorm.DB, id uint, req *dto.UpdateSeguimientoRequest) error
	DeleteSeguimiento(db *gorm.DB, id uint) error
}

type SeguimientoServiceImpl struct {
	segRepo  repositories.SeguimientoRepository
	casoRepo repositories.CasoRepository
	now      func() time.Time
}

func NewSeguimientoService(segRepo repositories.SeguimientoRepository, casoRepo repositories.CasoRepository) SeguimientoService {
	return &SeguimientoServiceImpl{
		segRepo:  segRepo,
		casoRepo: casoRepo,
		now:      time.Now,
	}
}

// AddSeguimiento добавляет запись в журнал и переносит ее состояние на кейс.
// Состояние по умолчанию (En proceso) тоже переносится.
func (s *SeguimientoServiceImpl) AddSeguimiento(db *gorm.DB, authorID uint, req *dto.CreateSeguimientoRequest) (uint, error) {
	estado := models.EstadoEnProceso
	if req.Estado != nil && *req.Estado != "" {
		estado = *req.Estado
	}

	seg := &models.Seguimiento{
		CasoID:            req.CasoID,
		UsuarioID:         authorID,
		Retroalimentacion: req.Retroalimentacion,
		Estado:            estado,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		exists, err := s.casoRepo.Exists(tx, req.CasoID)
		if err != nil {
			return err
		}
		if !exists {
			return repositories.ErrCasoNotFound
		}

		if err := s.segRepo.Create(tx, seg); err != nil {
			return err
		}
		return s.casoRepo.UpdateEstado(tx, req.CasoID, estado, s.now())
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrCasoNotFound) {
			return 0, apperrors.ErrCasoNotFound
		}
		return 0, apperrors.PersistenceError(err)
	}

	return seg.ID, nil
}

// UpdateSeguimiento меняет только переданные поля. Существование проверяется
// раньше, чем пустой запрос.
func (s *SeguimientoServiceImpl) UpdateSeguimiento(db *gorm.DB, id uint, req *dto.UpdateSeguimientoRequest) error {
	seg, err := s.segRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSeguimientoNotFound) {
			return apperrors.ErrSeguimientoNotFound
		}
		return apperrors.PersistenceError(err)
	}

	// Пустые строки считаются отсутствующими полями, как и при создании
	fields := map[string]interface{}{}
	if req.Retroalimentacion != nil && *req.Retroalimentacion != "" {
		fields["retroalimentacion"] = *req.Retroalimentacion
	}
	var estado models.CasoEstado
	if req.Estado != nil && *req.Estado != "" {
		estado = *req.Estado
		fields["estado"] = estado
	}
	if len(fields) == 0 {
		return apperrors.ErrNothingToUpdate
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.segRepo.Update(tx, id, fields); err != nil {
			return err
		}
		if estado != "" {
			return s.casoRepo.UpdateEstado(tx, seg.CasoID, estado, s.now())
		}
		return nil
	})
	if err != nil {
		return apperrors.PersistenceError(err)
	}
	return nil
}

// DeleteSeguimiento удаляет запись. Вложения остаются, состояние кейса
// не пересчитывается.
func (s *SeguimientoServiceImpl) DeleteSeguimiento(db *gorm.DB, id uint) error {
	if err := s.segRepo.Delete(db, id); err != nil {
		if apperrors.Is(err, repositories.ErrSeguimientoNotFound) {
			return apperrors.ErrSeguimientoNotFound
		}
		return apperrors.PersistenceError(err)
	}
	return nil
}
