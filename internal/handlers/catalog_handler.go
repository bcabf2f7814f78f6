package handlers

import (
	"net/http"

	"casos_backend/internal/services"
	"casos_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// CatalogHandler - справочники областей и ролей
type CatalogHandler struct {
	*BaseHandler
	catalogService services.CatalogService
}

func NewCatalogHandler(base *BaseHandler, catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler:    base,
		catalogService: catalogService,
	}
}

// RegisterRoutes: создание области требует токен, создание роли - нет
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	areas := rg.Group("/areas")
	{
		areas.GET("", h.ListAreas)
		areas.POST("", authMW, h.CreateArea)
	}

	roles := rg.Group("/roles")
	{
		roles.GET("", h.ListRoles)
		roles.POST("", h.CreateRol)
	}
}

func (h *CatalogHandler) ListAreas(c *gin.Context) {
	areas, err := h.catalogService.ListAreas(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, areas)
}

func (h *CatalogHandler) CreateArea(c *gin.Context) {
	var req dto.CreateAreaRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	id, err := h.catalogService.CreateArea(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CreateAreaResponse{ID: id})
}

func (h *CatalogHandler) ListRoles(c *gin.Context) {
	roles, err := h.catalogService.ListRoles(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

func (h *CatalogHandler) CreateRol(c *gin.Context) {
	var req dto.CreateRolRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	id, err := h.catalogService.CreateRol(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CreateRolResponse{ID: id})
}
