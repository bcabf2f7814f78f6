package services

import (
	"context"

	"casos_backend/internal/auth"
	"casos_backend/internal/logger"
	"casos_backend/internal/models"
	"casos_backend/internal/repositories"
	"casos_backend/internal/services/dto"
	"casos_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (uint, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	VerifyToken(token string) (uint, error)
	GetUser(db *gorm.DB, userID uint) (*dto.UserResponse, error)
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenManager
}

func NewAuthService(userRepo repositories.UserRepository, tokens *auth.TokenManager) AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register - регистрация нового пользователя. Профиль и учетные данные
// пишутся в одной транзакции.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (uint, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}

	user := &models.Usuario{
		Username:  req.Username,
		AreaID:    req.AreaID,
		RolID:     req.RolID,
		Nombres:   req.Nombres,
		Apellidos: req.Apellidos,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}
		return s.userRepo.CreateCredentials(tx, &models.UsersAuth{
			UsuarioID:    user.ID,
			PasswordHash: hash,
		})
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return 0, apperrors.ErrDuplicateUser
		}
		return 0, apperrors.PersistenceError(err)
	}

	return user.ID, nil
}

// Login - аутентификация пользователя
func (s *AuthServiceImpl) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(db, req.Username)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			logger.CtxInfo(ctx, "Login rejected: unknown username", "username", req.Username)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.PersistenceError(err)
	}

	creds, err := s.userRepo.FindCredentials(db, user.ID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCredentialsNotFound) {
			logger.CtxWarn(ctx, "Login rejected: user has no credentials", "user_id", user.ID)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.PersistenceError(err)
	}

	if !auth.CheckPasswordHash(req.Password, creds.PasswordHash) {
		logger.CtxInfo(ctx, "Login rejected: wrong password", "user_id", user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		Token:   token,
		Usuario: toUserResponse(user),
	}, nil
}

// VerifyToken возвращает id пользователя из валидного токена
func (s *AuthServiceImpl) VerifyToken(token string) (uint, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return 0, apperrors.ErrInvalidToken
	}
	return userID, nil
}

func (s *AuthServiceImpl) GetUser(db *gorm.DB, userID uint) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.PersistenceError(err)
	}
	return toUserResponse(user), nil
}

func toUserResponse(user *models.Usuario) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Nombres:   user.Nombres,
		Apellidos: user.Apellidos,
		AreaID:    user.AreaID,
		RolID:     user.RolID,
	}
}
