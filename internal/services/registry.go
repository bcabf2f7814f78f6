package services

import (
	"casos_backend/internal/auth"
	"casos_backend/internal/email"
	"casos_backend/internal/repositories"
	"casos_backend/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService        AuthService
	CatalogService     CatalogService
	CasoService        CasoService
	SeguimientoService SeguimientoService
	AdjuntoService     AdjuntoService
	EmailService       *EmailService
}

// Dependencies - внешние зависимости, из которых собираются сервисы
type Dependencies struct {
	Tokens        *auth.TokenManager
	Storage       storage.Storage
	EmailProvider email.Provider
	Upload        UploadConfig
}

// NewServiceContainer создает все репозитории и сервисы
func NewServiceContainer(deps Dependencies) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	areaRepo := repositories.NewAreaRepository()
	rolRepo := repositories.NewRolRepository()
	casoRepo := repositories.NewCasoRepository()
	segRepo := repositories.NewSeguimientoRepository()
	adjuntoRepo := repositories.NewAdjuntoRepository()

	return &ServiceContainer{
		AuthService:        NewAuthService(userRepo, deps.Tokens),
		CatalogService:     NewCatalogService(areaRepo, rolRepo),
		CasoService:        NewCasoService(casoRepo, areaRepo, userRepo, segRepo, adjuntoRepo),
		SeguimientoService: NewSeguimientoService(segRepo, casoRepo),
		AdjuntoService:     NewAdjuntoService(adjuntoRepo, casoRepo, segRepo, deps.Storage, deps.Upload),
		EmailService:       NewEmailService(deps.EmailProvider),
	}
}
