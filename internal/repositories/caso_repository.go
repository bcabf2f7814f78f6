package repositories

import (
	"errors"
	"time"

	"casos_backend/internal/models"

	"gorm.io/gorm"
)

// CasoFilter - необязательные фильтры списка кейсов (объединяются через AND)
type CasoFilter struct {
	Estado *models.CasoEstado
	AreaID *uint
}

type CasoRepository interface {
	Create(db *gorm.DB, caso *models.Caso) error
	LinkAreas(db *gorm.DB, casoID uint, areaIDs []uint) error
	FindByID(db *gorm.DB, id uint) (*models.Caso, error)
	Exists(db *gorm.DB, id uint) (bool, error)
	List(db *gorm.DB, filter CasoFilter) ([]models.Caso, error)
	AreaIDsByCasos(db *gorm.DB, casoIDs []uint) (map[uint][]uint, error)
	UpdateEstado(db *gorm.DB, id uint, estado models.CasoEstado, at time.Time) error
}

type CasoRepositoryImpl struct{}

func NewCasoRepository() CasoRepository {
	return &CasoRepositoryImpl{}
}

func (r *CasoRepositoryImpl) Create(db *gorm.DB, caso *models.Caso) error {
	return db.Create(caso).Error
}

func (r *CasoRepositoryImpl) LinkAreas(db *gorm.DB, casoID uint, areaIDs []uint) error {
	if len(areaIDs) == 0 {
		return nil
	}

	links := make([]models.CasoArea, 0, len(areaIDs))
	for _, areaID := range areaIDs {
		links = append(links, models.CasoArea{CasoID: casoID, AreaID: areaID})
	}
	return db.Create(&links).Error
}

func (r *CasoRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Caso, error) {
	var caso models.Caso
	err := db.First(&caso, "id_caso = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCasoNotFound
		}
		return nil, err
	}
	return &caso, nil
}

func (r *CasoRepositoryImpl) Exists(db *gorm.DB, id uint) (bool, error) {
	var count int64
	err := db.Model(&models.Caso{}).Where("id_caso = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *CasoRepositoryImpl) List(db *gorm.DB, filter CasoFilter) ([]models.Caso, error) {
	query := db.Model(&models.Caso{})

	if filter.Estado != nil {
		query = query.Where("estado = ?", *filter.Estado)
	}

	// Фильтр по области через подзапрос, чтобы у кейса остались все его области
	if filter.AreaID != nil {
		sub := db.Model(&models.CasoArea{}).Select("id_caso").Where("id_area = ?", *filter.AreaID)
		query = query.Where("id_caso IN (?)", sub)
	}

	casos := []models.Caso{}
	err := query.Order("fecha_creacion DESC").Order("id_caso DESC").Find(&casos).Error
	return casos, err
}

// AreaIDsByCasos возвращает id областей каждого кейса по возрастанию
func (r *CasoRepositoryImpl) AreaIDsByCasos(db *gorm.DB, casoIDs []uint) (map[uint][]uint, error) {
	result := make(map[uint][]uint, len(casoIDs))
	if len(casoIDs) == 0 {
		return result, nil
	}

	var links []models.CasoArea
	err := db.Where("id_caso IN ?", casoIDs).
		Order("id_caso ASC").Order("id_area ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}

	for _, l := range links {
		result[l.CasoID] = append(result[l.CasoID], l.AreaID)
	}
	return result, nil
}

// UpdateEstado перезаписывает состояние кейса. Переход в Finalizado
// проставляет fecha_cierre, любой другой переход ее очищает.
func (r *CasoRepositoryImpl) UpdateEstado(db *gorm.DB, id uint, estado models.CasoEstado, at time.Time) error {
	updates := map[string]interface{}{
		"estado":       estado,
		"fecha_cierre": nil,
	}
	if estado == models.EstadoFinalizado {
		updates["fecha_cierre"] = at
	}

	return db.Model(&models.Caso{}).Where("id_caso = ?", id).Updates(updates).Error
}
