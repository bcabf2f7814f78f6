package handlers

import (
	"net/http"

	"casos_backend/internal/services"
	"casos_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SeguimientoHandler struct {
	*BaseHandler
	seguimientoService services.SeguimientoService
}

func NewSeguimientoHandler(base *BaseHandler, seguimientoService services.SeguimientoService) *SeguimientoHandler {
	return &SeguimientoHandler{
		BaseHandler:        base,
		seguimientoService: seguimientoService,
	}
}

func (h *SeguimientoHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	segs := rg.Group("/seguimientos")
	segs.Use(authMW)
	{
		segs.POST("", h.AddSeguimiento)
		segs.PUT("/:id", h.UpdateSeguimiento)
		segs.DELETE("/:id", h.DeleteSeguimiento)
	}
}

func (h *SeguimientoHandler) AddSeguimiento(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSeguimientoRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	id, err := h.seguimientoService.AddSeguimiento(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CreateSeguimientoResponse{ID: id})
}

func (h *SeguimientoHandler) UpdateSeguimiento(c *gin.Context) {
	id, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateSeguimientoRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.seguimientoService.UpdateSeguimiento(h.GetDB(c), id, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Seguimiento actualizado"})
}

func (h *SeguimientoHandler) DeleteSeguimiento(c *gin.Context) {
	id, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.seguimientoService.DeleteSeguimiento(h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Seguimiento eliminado"})
}
