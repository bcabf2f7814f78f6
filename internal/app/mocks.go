package app

import (
	"context"

	"casos_backend/internal/email"
	"casos_backend/internal/logger"
)

// LogEmailProvider используется, когда SMTP не настроен: письмо только логируется.
type LogEmailProvider struct{}

func (m *LogEmailProvider) Send(ctx context.Context, msg *email.Email) error {
	logger.CtxInfo(ctx, "SMTP is not configured, email logged instead of sent",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}

func (m *LogEmailProvider) Validate() error { return nil }
