package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	CatalogHandler     *CatalogHandler
	CasoHandler        *CasoHandler
	SeguimientoHandler *SeguimientoHandler
	AdjuntoHandler     *AdjuntoHandler
	EmailHandler       *EmailHandler
}
