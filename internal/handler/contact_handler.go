package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/brijnamkeen/store_api/internal/service"
	"github.com/brijnamkeen/store_api/internal/utils"
)

// ContactHandler handles public contact-form submissions.
type ContactHandler struct {
	mailService *service.MailService
}

// NewContactHandler constructs a ContactHandler.
func NewContactHandler(mailService *service.MailService) *ContactHandler {
	return &ContactHandler{mailService: mailService}
}

type contactRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"omitempty,max=20"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required,min=10,max=2000"`
}

// Submit handles POST /api/contact. The notification email is sent in the
// background so a slow SMTP server never blocks the response.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Please fill in all required fields correctly")
		return
	}
	if !service.ValidContactSubject(req.Subject) {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid subject")
		return
	}

	msg := &service.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}

	go func() {
		if err := h.mailService.SendContactNotification(msg); err != nil {
			log.Error().Err(err).Str("email", msg.Email).Msg("Failed to send contact notification")
		}
	}()

	utils.Success(c, 200, "Message sent successfully. We will get back to you soon!", nil)
}
