package repositories

import (
	"errors"

	"casos_backend/internal/models"

	"gorm.io/gorm"
)

type AreaRepository interface {
	FindAll(db *gorm.DB) ([]models.Area, error)
	FindByID(db *gorm.DB, id uint) (*models.Area, error)
	FindByIDs(db *gorm.DB, ids []uint) (map[uint]models.Area, error)
	CountByIDs(db *gorm.DB, ids []uint) (int64, error)
	Create(db *gorm.DB, area *models.Area) error
}

type AreaRepositoryImpl struct{}

func NewAreaRepository() AreaRepository {
	return &AreaRepositoryImpl{}
}

func (r *AreaRepositoryImpl) FindAll(db *gorm.DB) ([]models.Area, error) {
	areas := []models.Area{}
	err := db.Order("id_area ASC").Find(&areas).Error
	return areas, err
}

// FindByID возвращает (nil, nil), если области нет
func (r *AreaRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Area, error) {
	var area models.Area
	err := db.First(&area, "id_area = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &area, nil
}

func (r *AreaRepositoryImpl) FindByIDs(db *gorm.DB, ids []uint) (map[uint]models.Area, error) {
	result := make(map[uint]models.Area, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var areas []models.Area
	if err := db.Where("id_area IN ?", ids).Find(&areas).Error; err != nil {
		return nil, err
	}
	for _, a := range areas {
		result[a.ID] = a
	}
	return result, nil
}

func (r *AreaRepositoryImpl) CountByIDs(db *gorm.DB, ids []uint) (int64, error) {
	var count int64
	if len(ids) == 0 {
		return 0, nil
	}
	err := db.Model(&models.Area{}).Where("id_area IN ?", ids).Count(&count).Error
	return count, err
}

func (r *AreaRepositoryImpl) Create(db *gorm.DB, area *models.Area) error {
	return db.Create(area).Error
}

type RolRepository interface {
	FindAll(db *gorm.DB) ([]models.Rol, error)
	Create(db *gorm.DB, rol *models.Rol) error
}

type RolRepositoryImpl struct{}

func NewRolRepository() RolRepository {
	return &RolRepositoryImpl{}
}

func (r *RolRepositoryImpl) FindAll(db *gorm.DB) ([]models.Rol, error) {
	roles := []models.Rol{}
	err := db.Order("id_rol ASC").Find(&roles).Error
	return roles, err
}

func (r *RolRepositoryImpl) Create(db *gorm.DB, rol *models.Rol) error {
	return db.Create(rol).Error
}
