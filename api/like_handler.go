package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rohityadav-alpha/rohit-portfolio/errs"
	"github.com/rohityadav-alpha/rohit-portfolio/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type likeStore interface {
	Toggle(like *models.Like) (liked bool, err error)
	CountForPost(postID uuid.UUID, postType models.PostType) (int64, error)
	UserLiked(postID uuid.UUID, postType models.PostType, userID string) (bool, error)
}

type likeHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     likeStore
	refs      postRefStore
}

func newLikeHandler(store likeStore, refs postRefStore) likeHandler {
	logger := log.With().Str("handlerName", "likeHandler").Logger()

	return likeHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		refs:      refs,
	}
}

type toggleLikeRequest struct {
	PostID   uuid.UUID `json:"postId"`
	PostType string    `json:"postType"`
	UserID   string    `json:"userId"`
}

// getLikeCount returns the like total for a post and whether the given user
// (explicit userId or the visitor cookie) has liked it
func (h likeHandler) getLikeCount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuid.Parse(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid postId"))
			return
		}

		postType, err := postTypeFromQuery(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		userID := r.URL.Query().Get("userId")
		if userID == "" {
			userID = ctxVisitorID(r.Context())
		}

		totalLikes, err := h.store.CountForPost(postID, postType)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count likes", "likes", err))
			return
		}

		userLiked := false
		if userID != "" {
			userLiked, err = h.store.UserLiked(postID, postType, userID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("check user like", "likes", err))
				return
			}
		}

		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{
			"totalLikes": totalLikes,
			"userLiked":  userLiked,
		})
	}
}

// toggleLike flips the like state for (postId, userId, postType) and returns
// the new state plus the recomputed total. The store's unique index makes the
// flip itself race-free; this is deliberately a toggle, not an idempotent set.
func (h likeHandler) toggleLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req toggleLikeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode like toggle request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("like toggle", err))
			return
		}

		if req.PostID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("postId"))
			return
		}
		if req.PostType == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("postType"))
			return
		}
		if req.UserID == "" {
			req.UserID = ctxVisitorID(r.Context())
		}
		if req.UserID == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("userId"))
			return
		}

		postType := models.PostType(req.PostType)
		if !postType.Valid() {
			h.responder.WriteError(w, errs.NewInvalidFieldError("postType", "must be blog or project"))
			return
		}

		exists, err := h.refs.Exists(req.PostID, postType)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("resolve post reference", "like", err))
			return
		}
		if !exists {
			h.responder.WriteError(w, errs.NewNotFoundError("post not found"))
			return
		}

		liked, err := h.store.Toggle(&models.Like{
			PostID:    req.PostID,
			PostType:  postType,
			UserID:    req.UserID,
			IPAddress: clientIP(r),
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("toggle like", "like", err))
			return
		}

		totalLikes, err := h.store.CountForPost(req.PostID, postType)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count likes", "likes", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{
			"liked":      liked,
			"totalLikes": totalLikes,
		})
	}
}
