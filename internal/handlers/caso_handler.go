package handlers

import (
	"net/http"

	"casos_backend/internal/services"
	"casos_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CasoHandler struct {
	*BaseHandler
	casoService services.CasoService
}

func NewCasoHandler(base *BaseHandler, casoService services.CasoService) *CasoHandler {
	return &CasoHandler{
		BaseHandler: base,
		casoService: casoService,
	}
}

func (h *CasoHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	casos := rg.Group("/casos")
	casos.Use(authMW)
	{
		casos.GET("", h.ListCasos)
		casos.POST("", h.CreateCaso)
		casos.GET("/:id", h.GetCaso)
	}
}

// ListCasos - GET /casos?estado=&id_area=
func (h *CasoHandler) ListCasos(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.CasoListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	casos, err := h.casoService.ListCasos(h.GetDB(c), userID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, casos)
}

func (h *CasoHandler) CreateCaso(c *gin.Context) {
	var req dto.CreateCasoRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	id, err := h.casoService.CreateCaso(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CreateCasoResponse{ID: id})
}

func (h *CasoHandler) GetCaso(c *gin.Context) {
	id, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	caso, err := h.casoService.GetCaso(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, caso)
}
