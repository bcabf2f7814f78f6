package dto

// SendEmailRequest - to может содержать несколько адресов через запятую
type SendEmailRequest struct {
	To      string `json:"to" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}
