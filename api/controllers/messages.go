package controllers

import (
	"net/http"

	"github.com/atlastours/rentals-backend/api/responses"
	"github.com/atlastours/rentals-backend/api/validators"
	"github.com/atlastours/rentals-backend/internal/messages"
	"github.com/atlastours/rentals-backend/pkg/logger"
)

// MessageController accepts contact-form submissions and serves the inbox to
// the back office.
type MessageController struct {
	svc  messages.Service
	logg *logger.Logger
}

func NewMessageController(svc messages.Service, logg *logger.Logger) *MessageController {
	return &MessageController{svc: svc, logg: logg}
}

type submitMessageRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject"`
	Body    string `json:"body" validate:"required"`
}

func (c *MessageController) Submit(w http.ResponseWriter, r *http.Request) {
	var body submitMessageRequest
	if err := validators.DecodeJSONBody(r, &body); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	message, err := c.svc.Submit(r.Context(), messages.SubmitInput{
		Name:    body.Name,
		Email:   body.Email,
		Subject: body.Subject,
		Body:    body.Body,
	})
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, message)
}

func (c *MessageController) List(w http.ResponseWriter, r *http.Request) {
	rows, err := c.svc.List(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, rows)
}

func (c *MessageController) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "messageID")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	if err := c.svc.MarkRead(r.Context(), id); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, map[string]bool{"read": true})
}

func (c *MessageController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "messageID")
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	if err := c.svc.Delete(r.Context(), id); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusNoContent, nil)
}
