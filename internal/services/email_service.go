package services

import (
	"context"
	"strings"

	"casos_backend/internal/email"
	"casos_backend/internal/logger"
	"casos_backend/internal/services/dto"
	"casos_backend/pkg/apperrors"
)

// EmailService предоставляет высокоуровневый интерфейс для работы с email
type EmailService struct {
	provider email.Provider
}

// NewEmailService создает новый экземпляр EmailService
func NewEmailService(provider email.Provider) *EmailService {
	return &EmailService{
		provider: provider,
	}
}

// Send отправляет письмо через настроенное реле, без повторов
func (s *EmailService) Send(ctx context.Context, req *dto.SendEmailRequest) error {
	to := splitRecipients(req.To)
	if len(to) == 0 {
		return apperrors.ValidationError(map[string]string{"to": "Este campo es obligatorio"})
	}

	msg := &email.Email{
		To:       to,
		Subject:  req.Subject,
		Body:     req.Text,
		HTMLBody: req.HTML,
	}

	if err := s.provider.Send(ctx, msg); err != nil {
		logger.CtxWithError(ctx, "Email delivery failed", err, "to", to)
		return apperrors.DeliveryFailed(err)
	}

	logger.CtxInfo(ctx, "Email sent", "to", to, "subject", req.Subject)
	return nil
}

func splitRecipients(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
