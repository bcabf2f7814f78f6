package handlers

import (
	"net/http"

	"casos_backend/internal/services"
	"casos_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type EmailHandler struct {
	*BaseHandler
	emailService *services.EmailService
}

func NewEmailHandler(base *BaseHandler, emailService *services.EmailService) *EmailHandler {
	return &EmailHandler{
		BaseHandler:  base,
		emailService: emailService,
	}
}

func (h *EmailHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/email/send", h.Send)
}

func (h *EmailHandler) Send(c *gin.Context) {
	var req dto.SendEmailRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.emailService.Send(c.Request.Context(), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Correo enviado correctamente"})
}
