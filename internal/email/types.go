package email

// Email представляет структуру email сообщения.
// Body - текстовая часть, HTMLBody - HTML; достаточно одной из них.
type Email struct {
	From     string
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}
