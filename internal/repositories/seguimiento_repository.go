package repositories

import (
	"errors"

	"casos_backend/internal/models"

	"gorm.io/gorm"
)

type SeguimientoRepository interface {
	Create(db *gorm.DB, seg *models.Seguimiento) error
	FindByID(db *gorm.DB, id uint) (*models.Seguimiento, error)
	Exists(db *gorm.DB, id uint) (bool, error)
	FindByCaso(db *gorm.DB, casoID uint) ([]models.Seguimiento, error)
	Update(db *gorm.DB, id uint, fields map[string]interface{}) error
	Delete(db *gorm.DB, id uint) error
}

type SeguimientoRepositoryImpl struct{}

func NewSeguimientoRepository() SeguimientoRepository {
	return &SeguimientoRepositoryImpl{}
}

func (r *SeguimientoRepositoryImpl) Create(db *gorm.DB, seg *models.Seguimiento) error {
	return db.Create(seg).Error
}

func (r *SeguimientoRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Seguimiento, error) {
	var seg models.Seguimiento
	err := db.First(&seg, "id_seguimiento = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeguimientoNotFound
		}
		return nil, err
	}
	return &seg, nil
}

func (r *SeguimientoRepositoryImpl) Exists(db *gorm.DB, id uint) (bool, error) {
	var count int64
	err := db.Model(&models.Seguimiento{}).Where("id_seguimiento = ?", id).Count(&count).Error
	return count > 0, err
}

// FindByCaso - хронологический журнал кейса
func (r *SeguimientoRepositoryImpl) FindByCaso(db *gorm.DB, casoID uint) ([]models.Seguimiento, error) {
	segs := []models.Seguimiento{}
	err := db.Where("id_caso = ?", casoID).
		Order("fecha_seguimiento ASC").Order("id_seguimiento ASC").
		Find(&segs).Error
	return segs, err
}

func (r *SeguimientoRepositoryImpl) Update(db *gorm.DB, id uint, fields map[string]interface{}) error {
	// MySQL не считает строки без изменений, поэтому существование проверяет сервис
	return db.Model(&models.Seguimiento{}).Where("id_seguimiento = ?", id).Updates(fields).Error
}

func (r *SeguimientoRepositoryImpl) Delete(db *gorm.DB, id uint) error {
	result := db.Where("id_seguimiento = ?", id).Delete(&models.Seguimiento{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSeguimientoNotFound
	}
	return nil
}
