package services

import (
	"casos_backend/internal/models"
	"casos_backend/internal/repositories"
	"casos_backend/internal/services/dto"
	"casos_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// CatalogService - справочники областей и ролей
type CatalogService interface {
	ListAreas(db *gorm.DB) ([]models.Area, error)
	CreateArea(db *gorm.DB, req *dto.CreateAreaRequest) (uint, error)
	ListRoles(db *gorm.DB) ([]models.Rol, error)
	CreateRol(db *gorm.DB, req *dto.CreateRolRequest) (uint, error)
}

type CatalogServiceImpl struct {
	areaRepo repositories.AreaRepository
	rolRepo  repositories.RolRepository
}

func NewCatalogService(areaRepo repositories.AreaRepository, rolRepo repositories.RolRepository) CatalogService {
	return &CatalogServiceImpl{
		areaRepo: areaRepo,
		rolRepo:  rolRepo,
	}
}

func (s *CatalogServiceImpl) ListAreas(db *gorm.DB) ([]models.Area, error) {
	areas, err := s.areaRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}
	return areas, nil
}

func (s *CatalogServiceImpl) CreateArea(db *gorm.DB, req *dto.CreateAreaRequest) (uint, error) {
	area := &models.Area{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		ListaCorreo: req.ListaCorreo,
	}
	if err := s.areaRepo.Create(db, area); err != nil {
		return 0, apperrors.PersistenceError(err)
	}
	return area.ID, nil
}

func (s *CatalogServiceImpl) ListRoles(db *gorm.DB) ([]models.Rol, error) {
	roles, err := s.rolRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}
	return roles, nil
}

func (s *CatalogServiceImpl) CreateRol(db *gorm.DB, req *dto.CreateRolRequest) (uint, error) {
	rol := &models.Rol{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
	}
	if err := s.rolRepo.Create(db, rol); err != nil {
		return 0, apperrors.PersistenceError(err)
	}
	return rol.ID, nil
}
