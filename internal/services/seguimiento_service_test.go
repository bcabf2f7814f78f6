package services

import (
	"testing"
	"time"

	"casos_backend/internal/models"
	"casos_backend/internal/repositories"
	"casos_backend/internal/services/dto"
	"casos_backend/internal/testutil"
	"casos_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newSeguimientoService() SeguimientoService {
	svc := NewSeguimientoService(repositories.NewSeguimientoRepository(), repositories.NewCasoRepository()).(*SeguimientoServiceImpl)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func reloadCaso(t *testing.T, db *gorm.DB, id uint) models.Caso {
	t.Helper()
	var caso models.Caso
	require.NoError(t, db.First(&caso, "id_caso = ?", id).Error)
	return caso
}

func estadoPtr(e models.CasoEstado) *models.CasoEstado { return &e }

func TestSeguimientoService_AddPropagatesEstado(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newSeguimientoService()
	caso := testutil.SeedCaso(t, db, "caso")

	id, err := svc.AddSeguimiento(db, 7, &dto.CreateSeguimientoRequest{
		CasoID:            caso.ID,
		Retroalimentacion: "cerrado",
		Estado:            estadoPtr(models.EstadoFinalizado),
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	updated := reloadCaso(t, db, caso.ID)
	assert.Equal(t, models.EstadoFinalizado, updated.Estado)
	require.NotNil(t, updated.FechaCierre)
	assert.WithinDuration(t, fixedNow, *updated.FechaCierre, time.Second)
}

func TestSeguimientoService_AddDefaultsToEnProceso(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newSeguimientoService()
	caso := testutil.SeedCaso(t, db, "caso")

	_, err := svc.AddSeguimiento(db, 7, &dto.CreateSeguimientoRequest{
		CasoID:            caso.ID,
		Retroalimentacion: "revisión",
	})
	require.NoError(t, err)

	updated := reloadCaso(t, db, caso.ID)
	assert.Equal(t, models.EstadoEnProceso, updated.Estado)
	assert.Nil(t, updated.FechaCierre)
}

func TestSeguimientoService_AddUnknownCaso(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newSeguimientoService()

	_, err := svc.AddSeguimiento(db, 7, &dto.CreateSeguimientoRequest{CasoID: 999, Retroalimentacion: "x"})
	assert.ErrorIs(t, err, apperrors.ErrCasoNotFound)
	assert.Equal(t, int64(0), testutil.CountRows(t, db, &models.Seguimiento{}))
}

func TestSeguimientoService_AddRollsBackWhenInsertFails(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newSeguimientoService()
	caso := testutil.SeedCaso(t, db, "caso")
	testutil.FailCreates(t, db, "Seguimiento")

	_, err := svc.AddSeguimiento(db, 7, &dto.CreateSeguimientoRequest{
		CasoID:            caso.ID,
		Retroalimentacion: "x",
		Estado:            estadoPtr(models.EstadoFinalizado),
	})
	require.Error(t, err)
	assert.Equal(t, models.EstadoIniciado, reloadCaso(t, db, caso.ID).Estado)
}

func TestSeguimientoService_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newSeguimientoService()
	caso := testutil.SeedCaso(t, db, "caso")
	seg := testutil.SeedSeguimiento(t, db, caso.ID, 7, models.EstadoEnProceso)

	// Только текст: состояние кейса не меняется
	texto := "nuevo texto"
	require.NoError(t, svc.UpdateSeguimiento(db, seg.ID, &dto.UpdateSeguimientoRequest{Retroalimentacion: &texto}))
	assert.Equal(t, models.EstadoIniciado, reloadCaso(t, db, caso.ID).Estado)

	var stored models.Seguimiento
	require.NoError(t, db.First(&stored, "id_seguimiento = ?", seg.ID).Error)
	assert.Equal(t, "nuevo texto", stored.Retroalimentacion)
	assert.Equal(t, models.EstadoEnProceso, stored.Estado)

	// Состояние: переносится на кейс
	require.NoError(t, svc.UpdateSeguimiento(db, seg.ID, &dto.UpdateSeguimientoRequest{Estado: estadoPtr(models.EstadoFinalizado)}))
	updated := reloadCaso(t, db, caso.ID)
	assert.Equal(t, models.EstadoFinalizado, updated.Estado)
	assert.NotNil(t, updated.FechaCierre)

	// Возврат в работу очищает дату закрытия
	require.NoError(t, svc.UpdateSeguimiento(db, seg.ID, &dto.UpdateSeguimientoRequest{Estado: estadoPtr(models.EstadoEnProceso)}))
	assert.Nil(t, reloadCaso(t, db, caso.ID).FechaCierre)
}

func TestSeguimientoService_UpdateNotFoundBeforeNoOp(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newSeguimientoService()

	err := svc.UpdateSeguimiento(db, 999, &dto.UpdateSeguimientoRequest{})
	assert.ErrorIs(t, err, apperrors.ErrSeguimientoNotFound)

	caso := testutil.SeedCaso(t, db, "caso")
	seg := testutil.SeedSeguimiento(t, db, caso.ID, 7, models.EstadoEnProceso)
	err = svc.UpdateSeguimiento(db, seg.ID, &dto.UpdateSeguimientoRequest{})
	assert.ErrorIs(t, err, apperrors.ErrNothingToUpdate)
}

func TestSeguimientoService_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newSeguimientoService()
	caso := testutil.SeedCaso(t, db, "caso")
	seg := testutil.SeedSeguimiento(t, db, caso.ID, 7, models.EstadoFinalizado)
	require.NoError(t, db.Model(caso).Update("estado", models.EstadoFinalizado).Error)

	segID := seg.ID
	require.NoError(t, db.Create(&models.Adjunto{
		SeguimientoID: &segID, NombreArchivo: "a.txt", RutaArchivo: "uploads/a.txt", UsuarioID: 7,
	}).Error)

	require.NoError(t, svc.DeleteSeguimiento(db, seg.ID))
	assert.Equal(t, int64(0), testutil.CountRows(t, db, &models.Seguimiento{}))

	// Вложение остается, состояние кейса не пересчитывается
	assert.Equal(t, int64(1), testutil.CountRows(t, db, &models.Adjunto{}))
	assert.Equal(t, models.EstadoFinalizado, reloadCaso(t, db, caso.ID).Estado)

	assert.ErrorIs(t, svc.DeleteSeguimiento(db, seg.ID), apperrors.ErrSeguimientoNotFound)
}

func TestSeguimientoService_UpdateIgnoresEmptyValues(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newSeguimientoService()
	caso := testutil.SeedCaso(t, db, "caso")
	require.NoError(t, db.Model(caso).Update("estado", models.EstadoEnProceso).Error)
	seg := testutil.SeedSeguimiento(t, db, caso.ID, 7, models.EstadoEnProceso)

	empty := models.CasoEstado("")
	texto := ""
	err := svc.UpdateSeguimiento(db, seg.ID, &dto.UpdateSeguimientoRequest{Estado: &empty})
	assert.ErrorIs(t, err, apperrors.ErrNothingToUpdate)

	err = svc.UpdateSeguimiento(db, seg.ID, &dto.UpdateSeguimientoRequest{Estado: &empty, Retroalimentacion: &texto})
	assert.ErrorIs(t, err, apperrors.ErrNothingToUpdate)

	// Пустое состояние рядом с текстом не затирает ни запись, ни кейс
	texto = "revisado"
	require.NoError(t, svc.UpdateSeguimiento(db, seg.ID, &dto.UpdateSeguimientoRequest{Estado: &empty, Retroalimentacion: &texto}))

	var stored models.Seguimiento
	require.NoError(t, db.First(&stored, "id_seguimiento = ?", seg.ID).Error)
	assert.Equal(t, models.EstadoEnProceso, stored.Estado)
	assert.Equal(t, "revisado", stored.Retroalimentacion)
	assert.Equal(t, models.EstadoEnProceso, reloadCaso(t, db, caso.ID).Estado)
}
