package email

// SMTPConfig содержит конфигурацию SMTP реле
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *SMTPConfig {
	return &SMTPConfig{
		Port:     587,
		FromName: "Sistema de Casos",
	}
}
