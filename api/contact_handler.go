package api

import (
	"encoding/json"
	"net/http"

	"github.com/rohityadav-alpha/rohit-portfolio/errs"
	"github.com/rohityadav-alpha/rohit-portfolio/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contactMessageStore interface {
	FindAll() ([]*models.ContactMessage, error)
	Add(message *models.ContactMessage) error
}

// contactNotifier sends the site owner a heads-up about a new message.
// Delivery is best effort and never blocks the submission from persisting.
type contactNotifier interface {
	NotifyNewMessage(message models.ContactMessage) error
}

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     contactMessageStore
	notifier  contactNotifier
}

func newContactHandler(store contactMessageStore, notifier contactNotifier) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		notifier:  notifier,
	}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// submitContactMessage persists a contact form submission and notifies the
// site owner by email when a notifier is configured
func (h contactHandler) submitContactMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode contact request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("contact message", err))
			return
		}

		if req.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}
		if req.Email == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
			return
		}
		if req.Message == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("message"))
			return
		}

		contactMessage := models.ContactMessage{
			Name:    req.Name,
			Email:   req.Email,
			Message: req.Message,
		}

		if err := h.store.Add(&contactMessage); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create contact message", "contact_message", err))
			return
		}

		if err := h.notifier.NotifyNewMessage(contactMessage); err != nil {
			h.logger.Error().Err(err).
				Str("contactMessageId", contactMessage.ID.String()).
				Msg("Failed to send contact notification email")
		}

		h.responder.WriteSuccess(w, http.StatusCreated, map[string]any{
			"message": "Thank you for your message! I will get back to you soon.",
			"contact": map[string]any{
				"id":        contactMessage.ID,
				"createdAt": contactMessage.CreatedAt,
			},
		})
	}
}

// listContactMessages returns all submissions, newest first
func (h contactHandler) listContactMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contactMessages, err := h.store.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find contact messages", "contact_messages", err))
			return
		}
		if contactMessages == nil {
			contactMessages = []*models.ContactMessage{}
		}

		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{"contacts": contactMessages})
	}
}
