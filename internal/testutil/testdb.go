// Package testutil - общие помощники тестов: БД sqlite в памяти и сиды.
package testutil

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"casos_backend/database"
	"casos_backend/internal/auth"
	"casos_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var dbCounter atomic.Int64

// ErrInjected - ошибка, которую возвращает FailCreates
var ErrInjected = errors.New("injected database failure")

// NewTestDB открывает отдельную sqlite БД в памяти и мигрирует схему.
// Одно соединение: транзакции и обычные запросы видят одни и те же данные.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbCounter.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "Не удалось открыть тестовую БД")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db), "Не удалось выполнить AutoMigrate")

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

// FailCreates заставляет каждый INSERT в таблицу завершаться ошибкой ErrInjected
func FailCreates(t *testing.T, db *gorm.DB, table string) {
	t.Helper()

	err := db.Callback().Create().Before("gorm:create").Register("testutil:fail_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			tx.AddError(ErrInjected)
		}
	})
	require.NoError(t, err)
}

func SeedArea(t *testing.T, db *gorm.DB, nombre string) *models.Area {
	t.Helper()
	area := &models.Area{Nombre: nombre}
	require.NoError(t, db.Create(area).Error)
	return area
}

func SeedRol(t *testing.T, db *gorm.DB, nombre string) *models.Rol {
	t.Helper()
	rol := &models.Rol{Nombre: nombre}
	require.NoError(t, db.Create(rol).Error)
	return rol
}

// SeedUser создает пользователя вместе с учетными данными
func SeedUser(t *testing.T, db *gorm.DB, username, password string, areaID, rolID uint) *models.Usuario {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.Usuario{
		Username:  username,
		AreaID:    areaID,
		RolID:     rolID,
		Nombres:   "Juan Carlos",
		Apellidos: "Pérez González",
	}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&models.UsersAuth{UsuarioID: user.ID, PasswordHash: hash}).Error)
	return user
}

// SeedCaso создает кейс в состоянии Iniciado и связывает его с областями
func SeedCaso(t *testing.T, db *gorm.DB, titulo string, areaIDs ...uint) *models.Caso {
	t.Helper()

	caso := &models.Caso{Titulo: titulo, Tipo: "Accidente", Estado: models.EstadoIniciado}
	require.NoError(t, db.Create(caso).Error)
	for _, areaID := range areaIDs {
		require.NoError(t, db.Create(&models.CasoArea{CasoID: caso.ID, AreaID: areaID}).Error)
	}
	return caso
}

func SeedSeguimiento(t *testing.T, db *gorm.DB, casoID, userID uint, estado models.CasoEstado) *models.Seguimiento {
	t.Helper()

	seg := &models.Seguimiento{
		CasoID:            casoID,
		UsuarioID:         userID,
		Retroalimentacion: "Inspección inicial",
		Estado:            estado,
	}
	require.NoError(t, db.Create(seg).Error)
	return seg
}

// CountRows - количество строк модели
func CountRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}
