package services

import (
	"strings"

	"casos_backend/internal/models"
	"casos_backend/internal/repositories"
	"casos_backend/internal/services/dto"
	"casos_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	defaultAreaUsuario = "Sin área asignada"
	areasSeparator     = ", "
)

type CasoService interface {
	ListCasos(db *gorm.DB, requesterID uint, query *dto.CasoListQuery) ([]dto.CasoListItem, error)
	CreateCaso(db *gorm.DB, req *dto.CreateCasoRequest) (uint, error)
	GetCaso(db *gorm.DB, casoID uint) (*dto.CasoDetailResponse, error)
}

type CasoServiceImpl struct {
	casoRepo    repositories.CasoRepository
	areaRepo    repositories.AreaRepository
	userRepo    repositories.UserRepository
	segRepo     repositories.SeguimientoRepository
	adjuntoRepo repositories.AdjuntoRepository
}

func NewCasoService(
	casoRepo repositories.CasoRepository,
	areaRepo repositories.AreaRepository,
	userRepo repositories.UserRepository,
	segRepo repositories.SeguimientoRepository,
	adjuntoRepo repositories.AdjuntoRepository,
) CasoService {
	return &CasoServiceImpl{
		casoRepo:    casoRepo,
		areaRepo:    areaRepo,
		userRepo:    userRepo,
		segRepo:     segRepo,
		adjuntoRepo: adjuntoRepo,
	}
}

// ListCasos возвращает кейсы по фильтрам. Каждая строка несет список всех
// областей кейса и область запрашивающего пользователя.
func (s *CasoServiceImpl) ListCasos(db *gorm.DB, requesterID uint, query *dto.CasoListQuery) ([]dto.CasoListItem, error) {
	filter := repositories.CasoFilter{}
	if query != nil {
		if query.Estado != nil && *query.Estado != "" {
			filter.Estado = query.Estado
		}
		if query.AreaID != nil && *query.AreaID != 0 {
			filter.AreaID = query.AreaID
		}
	}

	areaUsuario, descripcionAreaUsuario, err := s.requesterArea(db, requesterID)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	casos, err := s.casoRepo.List(db, filter)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	casoIDs := make([]uint, 0, len(casos))
	for _, c := range casos {
		casoIDs = append(casoIDs, c.ID)
	}

	links, err := s.casoRepo.AreaIDsByCasos(db, casoIDs)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	areas, err := s.areaRepo.FindByIDs(db, uniqueAreaIDs(links))
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	items := make([]dto.CasoListItem, 0, len(casos))
	for _, c := range casos {
		items = append(items, dto.CasoListItem{
			Caso:                   c,
			AreasAsignadas:         joinAreaNames(links[c.ID], areas),
			AreaUsuario:            areaUsuario,
			DescripcionAreaUsuario: descripcionAreaUsuario,
		})
	}
	return items, nil
}

// CreateCaso создает кейс и связи с областями в одной транзакции.
// Неизвестная область откатывает все.
func (s *CasoServiceImpl) CreateCaso(db *gorm.DB, req *dto.CreateCasoRequest) (uint, error) {
	estado := models.EstadoIniciado
	if req.Estado != nil && *req.Estado != "" {
		estado = *req.Estado
	}

	areaIDs := dedupe(req.Areas)

	caso := &models.Caso{
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		Tipo:        req.Tipo,
		Estado:      estado,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if len(areaIDs) > 0 {
			count, err := s.areaRepo.CountByIDs(tx, areaIDs)
			if err != nil {
				return err
			}
			if count != int64(len(areaIDs)) {
				return apperrors.ErrUnknownArea
			}
		}

		if err := s.casoRepo.Create(tx, caso); err != nil {
			return err
		}
		return s.casoRepo.LinkAreas(tx, caso.ID, areaIDs)
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUnknownArea) {
			return 0, apperrors.ErrUnknownArea
		}
		return 0, apperrors.PersistenceError(err)
	}

	return caso.ID, nil
}

// GetCaso собирает кейс целиком. При отсутствии кейса частичный ответ не отдается.
func (s *CasoServiceImpl) GetCaso(db *gorm.DB, casoID uint) (*dto.CasoDetailResponse, error) {
	caso, err := s.casoRepo.FindByID(db, casoID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCasoNotFound) {
			return nil, apperrors.ErrCasoNotFound
		}
		return nil, apperrors.PersistenceError(err)
	}

	areas, err := s.casoAreas(db, casoID)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	seguimientos, err := s.casoSeguimientos(db, casoID)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	adjuntos, err := s.adjuntoRepo.FindByCaso(db, casoID)
	if err != nil {
		return nil, apperrors.PersistenceError(err)
	}

	return &dto.CasoDetailResponse{
		Caso:         *caso,
		Areas:        areas,
		Seguimientos: seguimientos,
		Adjuntos:     adjuntos,
	}, nil
}

func (s *CasoServiceImpl) casoAreas(db *gorm.DB, casoID uint) ([]dto.CasoAreaItem, error) {
	links, err := s.casoRepo.AreaIDsByCasos(db, []uint{casoID})
	if err != nil {
		return nil, err
	}

	areaIDs := links[casoID]
	byID, err := s.areaRepo.FindByIDs(db, areaIDs)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CasoAreaItem, 0, len(areaIDs))
	for _, id := range areaIDs {
		area, ok := byID[id]
		if !ok {
			continue
		}
		items = append(items, dto.CasoAreaItem{
			ID:          area.ID,
			Nombre:      area.Nombre,
			ListaCorreo: area.ListaCorreo,
		})
	}
	return items, nil
}

func (s *CasoServiceImpl) casoSeguimientos(db *gorm.DB, casoID uint) ([]dto.SeguimientoItem, error) {
	segs, err := s.segRepo.FindByCaso(db, casoID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uint, 0, len(segs))
	for _, seg := range segs {
		userIDs = append(userIDs, seg.UsuarioID)
	}
	users, err := s.userRepo.FindByIDs(db, dedupe(userIDs))
	if err != nil {
		return nil, err
	}

	areaIDs := make([]uint, 0, len(users))
	for _, u := range users {
		areaIDs = append(areaIDs, u.AreaID)
	}
	areas, err := s.areaRepo.FindByIDs(db, dedupe(areaIDs))
	if err != nil {
		return nil, err
	}

	items := make([]dto.SeguimientoItem, 0, len(segs))
	for _, seg := range segs {
		item := dto.SeguimientoItem{Seguimiento: seg}
		if user, ok := users[seg.UsuarioID]; ok {
			item.Usuario = user.FullName()
			if area, ok := areas[user.AreaID]; ok {
				nombre := area.Nombre
				item.AreaUsuario = &nombre
				item.DescripcionAreaUsuario = area.Descripcion
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// requesterArea - область пользователя с подстановкой значений по умолчанию
func (s *CasoServiceImpl) requesterArea(db *gorm.DB, userID uint) (string, string, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return defaultAreaUsuario, "", nil
		}
		return "", "", err
	}

	area, err := s.areaRepo.FindByID(db, user.AreaID)
	if err != nil {
		return "", "", err
	}
	if area == nil || area.Nombre == "" {
		return defaultAreaUsuario, "", nil
	}

	descripcion := ""
	if area.Descripcion != nil {
		descripcion = *area.Descripcion
	}
	return area.Nombre, descripcion, nil
}

func joinAreaNames(areaIDs []uint, areas map[uint]models.Area) *string {
	names := make([]string, 0, len(areaIDs))
	for _, id := range areaIDs {
		if area, ok := areas[id]; ok {
			names = append(names, area.Nombre)
		}
	}
	if len(names) == 0 {
		return nil
	}
	joined := strings.Join(names, areasSeparator)
	return &joined
}

func uniqueAreaIDs(links map[uint][]uint) []uint {
	var all []uint
	for _, ids := range links {
		all = append(all, ids...)
	}
	return dedupe(all)
}

// dedupe удаляет повторы, сохраняя порядок первого вхождения
func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
