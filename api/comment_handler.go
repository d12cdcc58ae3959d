package api

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rohityadav-alpha/rohit-portfolio/database"
	"github.com/rohityadav-alpha/rohit-portfolio/errs"
	"github.com/rohityadav-alpha/rohit-portfolio/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// emailShape is a shape check, not RFC validation: something@something.tld
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type commentStore interface {
	FindApprovedForPost(postID uuid.UUID, postType models.PostType) ([]*models.Comment, error)
	FindForModeration(filter database.ModerationFilter, postType models.PostType, query string) ([]*models.Comment, error)
	FindByID(id uuid.UUID) (*models.Comment, error)
	Add(comment *models.Comment) error
	Approve(id uuid.UUID) error
	Delete(id uuid.UUID) error
}

type postRefStore interface {
	Exists(postID uuid.UUID, postType models.PostType) (bool, error)
}

type commentHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     commentStore
	refs      postRefStore
	sanitizer *bluemonday.Policy
}

func newCommentHandler(store commentStore, refs postRefStore) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		refs:      refs,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

type commentRequest struct {
	UserName  string     `json:"userName"`
	UserEmail string     `json:"userEmail"`
	Comment   string     `json:"comment"`
	PostType  string     `json:"postType"`
	UserID    string     `json:"userId"`
	ParentID  *uuid.UUID `json:"parentId"`
}

// postTypeFromQuery reads the postType query parameter, defaulting to blog.
func postTypeFromQuery(r *http.Request) (models.PostType, error) {
	postType := models.PostType(r.URL.Query().Get("postType"))
	if postType == "" {
		postType = models.PostTypeBlog
	}
	if !postType.Valid() {
		return "", errs.NewInvalidFieldError("postType", "must be blog or project")
	}
	return postType, nil
}

// listComments returns the approved top-level comments of a post, newest
// first, each with its approved replies oldest first. Pending comments and
// replies never appear here.
func (h commentHandler) listComments() http.HandlerFunc {
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

		comments, err := h.store.FindApprovedForPost(postID, postType)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find comments", "comments", err))
			return
		}
		if comments == nil {
			comments = []*models.Comment{}
		}

		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{"comments": comments})
	}
}

// createComment submits a comment for moderation. It starts unapproved and
// stays invisible publicly until an admin approves it.
func (h commentHandler) createComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuid.Parse(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid postId"))
			return
		}

		var req commentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode comment request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("comment", err))
			return
		}

		if req.UserID == "" {
			req.UserID = ctxVisitorID(r.Context())
		}

		for field, value := range map[string]string{
			"userName":  req.UserName,
			"userEmail": req.UserEmail,
			"comment":   req.Comment,
			"postType":  req.PostType,
			"userId":    req.UserID,
		} {
			if value == "" {
				h.responder.WriteError(w, errs.NewMissingRequiredFieldError(field))
				return
			}
		}

		postType := models.PostType(req.PostType)
		if !postType.Valid() {
			h.responder.WriteError(w, errs.NewInvalidFieldError("postType", "must be blog or project"))
			return
		}

		if !emailShape.MatchString(req.UserEmail) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("userEmail", "not a valid email address"))
			return
		}

		exists, err := h.refs.Exists(postID, postType)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("resolve post reference", "comment", err))
			return
		}
		if !exists {
			h.responder.WriteError(w, errs.NewNotFoundError("post not found"))
			return
		}

		// one-level threading: a reply must target an existing top-level
		// comment of the same post
		if req.ParentID != nil {
			parent, err := h.store.FindByID(*req.ParentID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find parent comment", "comment", err))
				return
			}
			if parent == nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("parentId", "parent comment does not exist"))
				return
			}
			if !parent.TopLevel() {
				h.responder.WriteError(w, errs.NewInvalidFieldError("parentId", "replies can only target top-level comments"))
				return
			}
			if parent.PostID != postID || parent.PostType != postType {
				h.responder.WriteError(w, errs.NewInvalidFieldError("parentId", "parent comment belongs to a different post"))
				return
			}
		}

		comment := models.Comment{
			PostID:    postID,
			PostType:  postType,
			UserName:  req.UserName,
			UserEmail: req.UserEmail,
			Body:      h.sanitizer.Sanitize(req.Comment),
			UserID:    req.UserID,
			ParentID:  req.ParentID,
			IPAddress: clientIP(r),
			Approved:  false,
		}

		if err := h.store.Add(&comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create comment", "comment", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusCreated, map[string]any{
			"comment": comment,
			"message": "Comment submitted for approval",
		})
	}
}

// adminListComments returns comments for the moderation view, ignoring the
// approved flag unless filter narrows it. Unknown filters fall back to all,
// matching the public site's admin page expectations.
func (h commentHandler) adminListComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := database.ModerationFilter(r.URL.Query().Get("filter"))
		switch filter {
		case database.ModerationFilterPending, database.ModerationFilterApproved:
		default:
			filter = database.ModerationFilterAll
		}

		var postType models.PostType
		if raw := r.URL.Query().Get("postType"); raw != "" {
			postType = models.PostType(raw)
			if !postType.Valid() {
				h.responder.WriteError(w, errs.NewInvalidFieldError("postType", "must be blog or project"))
				return
			}
		}

		comments, err := h.store.FindForModeration(filter, postType, r.URL.Query().Get("q"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find comments", "comments", err))
			return
		}
		if comments == nil {
			comments = []*models.Comment{}
		}

		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{"comments": comments})
	}
}

// approveComment flips a pending comment to approved
func (h commentHandler) approveComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid comment id"))
			return
		}

		if err := h.store.Approve(id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("approve comment", "comment", err))
			return
		}

		comment, err := h.store.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find approved comment", "comment", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{"comment": comment})
	}
}

// deleteComment removes a comment; its replies cascade with it
func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid comment id"))
			return
		}

		if err := h.store.Delete(id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete comment", "comment", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{
			"message": "Comment deleted successfully",
		})
	}
}
