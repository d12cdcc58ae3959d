package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rohityadav-alpha/rohit-portfolio/auth"
	"github.com/rohityadav-alpha/rohit-portfolio/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type adminHandler struct {
	responder     Responder
	logger        zerolog.Logger
	sessions      *auth.Service
	secureCookies bool
}

func newAdminHandler(sessions *auth.Service, secureCookies bool) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		sessions:      sessions,
		secureCookies: secureCookies,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

// login verifies the admin password and issues a session token, set both as
// an HttpOnly cookie and returned in the body for clients that prefer a
// bearer header
func (h adminHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode login request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("login", err))
			return
		}

		if req.Password == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("password"))
			return
		}

		token, err := h.sessions.Login(req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrWrongPassword) {
				h.logger.Warn().Str("ip", clientIP(r)).Msg("Failed admin login attempt")
				h.responder.WriteError(w, errs.NewUnauthorizedError("invalid password"))
				return
			}
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("login failed", err))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     auth.SessionCookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(h.sessions.TTL().Seconds()),
			HttpOnly: true,
			Secure:   h.secureCookies,
			SameSite: http.SameSiteLaxMode,
		})

		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{"token": token})
	}
}

// logout clears the session cookie. The token itself stays valid until its
// expiry; there is no server-side revocation list.
func (h adminHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     auth.SessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.secureCookies,
			SameSite: http.SameSiteLaxMode,
		})

		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{
			"message": "Logged out successfully",
		})
	}
}
