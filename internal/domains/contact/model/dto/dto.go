package dto

import "lunabay/infras/mailer"

type ContactRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Email   string `json:"email"   validate:"required,email,max=100"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=2000"`
}

func (c *ContactRequest) ToMessage() mailer.ContactMessage {
	return mailer.ContactMessage{
		Name:    c.Name,
		Email:   c.Email,
		Subject: c.Subject,
		Body:    c.Message,
	}
}
