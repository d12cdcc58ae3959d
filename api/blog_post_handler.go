package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rohityadav-alpha/rohit-portfolio/errs"
	"github.com/rohityadav-alpha/rohit-portfolio/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type blogPostStore interface {
	FindAll() ([]*models.BlogPost, error)
	FindBySlug(slug string) (*models.BlogPost, error)
	Add(blogPost *models.BlogPost) error
	Update(blogPost *models.BlogPost) error
	DeleteBySlug(slug string) error
}

type blogPostHandler struct {
	responder     Responder
	logger        zerolog.Logger
	store         blogPostStore
	defaultAuthor string
}

func newBlogPostHandler(store blogPostStore, defaultAuthor string) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		store:         store,
		defaultAuthor: defaultAuthor,
	}
}

// blogPostRequest carries the mutable fields of a blog post; the slug is
// always derived server-side from the title.
type blogPostRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Excerpt   string   `json:"excerpt"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	ImageURL  string   `json:"imageUrl"`
	Published bool     `json:"published"`
	Author    string   `json:"author"`
}

// getAllBlogPosts retrieves all blog posts, newest first
func (h blogPostHandler) getAllBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPosts, err := h.store.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog posts", "blog_posts", err))
			return
		}
		if blogPosts == nil {
			blogPosts = []*models.BlogPost{}
		}

		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{"blogs": blogPosts})
	}
}

// getBlogPost retrieves a single blog post by slug
func (h blogPostHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		blogPost, err := h.store.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}
		if blogPost == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{"blog": blogPost})
	}
}

// createBlogPost creates a new blog post with a server-generated unique slug
func (h blogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req blogPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode blog post request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("blog post", err))
			return
		}

		if req.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		if req.Content == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("content"))
			return
		}
		if req.Category == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("category"))
			return
		}

		author := req.Author
		if author == "" {
			author = h.defaultAuthor
		}

		blogPost := models.BlogPost{
			Title:     req.Title,
			Content:   req.Content,
			Excerpt:   req.Excerpt,
			Category:  req.Category,
			Tags:      datatypes.NewJSONSlice(req.Tags),
			ImageURL:  req.ImageURL,
			Published: req.Published,
			Author:    author,
		}

		if err := allocateUniqueSlug(req.Title, func(slug string) error {
			blogPost.Slug = slug
			return h.store.Add(&blogPost)
		}); err != nil {
			var apiErr *errs.ApiErr
			if !errors.As(err, &apiErr) {
				err = wrapDatabaseError("create blog post", "blog_post", err)
			}
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusCreated, map[string]any{"blog": blogPost})
	}
}

// updateBlogPost replaces the mutable fields of a blog post; the slug stays
func (h blogPostHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		existing, err := h.store.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
			return
		}

		var req blogPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode blog post request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("blog post", err))
			return
		}

		if req.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		if req.Content == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("content"))
			return
		}
		if req.Category == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("category"))
			return
		}

		existing.Title = req.Title
		existing.Content = req.Content
		existing.Excerpt = req.Excerpt
		existing.Category = req.Category
		existing.Tags = datatypes.NewJSONSlice(req.Tags)
		existing.ImageURL = req.ImageURL
		existing.Published = req.Published
		if req.Author != "" {
			existing.Author = req.Author
		}

		if err := h.store.Update(existing); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update blog post", "blog_post", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{"blog": existing})
	}
}

// deleteBlogPost deletes a blog post by slug
func (h blogPostHandler) deleteBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		existing, err := h.store.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
			return
		}

		if err := h.store.DeleteBySlug(slug); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete blog post", "blog_post", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{
			"message": "Blog deleted successfully",
		})
	}
}
