package repositories

import (
	"errors"

	"casos_backend/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	FindByID(db *gorm.DB, id uint) (*models.Usuario, error)
	FindByUsername(db *gorm.DB, username string) (*models.Usuario, error)
	Create(db *gorm.DB, user *models.Usuario) error
	CreateCredentials(db *gorm.DB, creds *models.UsersAuth) error
	FindCredentials(db *gorm.DB, userID uint) (*models.UsersAuth, error)
	FindByIDs(db *gorm.DB, ids []uint) (map[uint]models.Usuario, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Usuario, error) {
	var user models.Usuario
	err := db.First(&user, "id_usuario = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByUsername(db *gorm.DB, username string) (*models.Usuario, error) {
	var user models.Usuario
	err := db.First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.Usuario) error {
	// Check if user already exists
	var count int64
	if err := db.Model(&models.Usuario{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUserAlreadyExists
	}

	// Уникальный индекс ловит гонку двух одновременных регистраций
	if err := db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) CreateCredentials(db *gorm.DB, creds *models.UsersAuth) error {
	return db.Create(creds).Error
}

func (r *UserRepositoryImpl) FindCredentials(db *gorm.DB, userID uint) (*models.UsersAuth, error) {
	var creds models.UsersAuth
	err := db.First(&creds, "id_usuario = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredentialsNotFound
		}
		return nil, err
	}
	return &creds, nil
}

// FindByIDs возвращает пользователей, проиндексированных по id
func (r *UserRepositoryImpl) FindByIDs(db *gorm.DB, ids []uint) (map[uint]models.Usuario, error) {
	result := make(map[uint]models.Usuario, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var users []models.Usuario
	if err := db.Where("id_usuario IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}
