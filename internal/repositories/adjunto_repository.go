package repositories

import (
	"casos_backend/internal/models"

	"gorm.io/gorm"
)

type AdjuntoRepository interface {
	Create(db *gorm.DB, adjunto *models.Adjunto) error
	FindByCaso(db *gorm.DB, casoID uint) ([]models.Adjunto, error)
}

type AdjuntoRepositoryImpl struct{}

func NewAdjuntoRepository() AdjuntoRepository {
	return &AdjuntoRepositoryImpl{}
}

func (r *AdjuntoRepositoryImpl) Create(db *gorm.DB, adjunto *models.Adjunto) error {
	return db.Create(adjunto).Error
}

func (r *AdjuntoRepositoryImpl) FindByCaso(db *gorm.DB, casoID uint) ([]models.Adjunto, error) {
	adjuntos := []models.Adjunto{}
	err := db.Where("id_caso = ?", casoID).Order("id_adjunto ASC").Find(&adjuntos).Error
	return adjuntos, err
}
