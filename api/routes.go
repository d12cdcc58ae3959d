package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/rohityadav-alpha/rohit-portfolio/auth"
)

// setupRoutes mounts the public and admin route groups under /api. Admin
// routes share the public URL space but sit behind the session check.
func setupRoutes(r chi.Router, handlers *routeHandlers, sessions *auth.Service) {
	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Get("/blogs", handlers.blogPostHandler.getAllBlogPosts())
			r.Get("/blogs/{slug}", handlers.blogPostHandler.getBlogPost())

			r.Get("/projects", handlers.projectHandler.getAllProjects())
			r.Get("/projects/{slug}", handlers.projectHandler.getProject())

			r.Get("/comments/{postID}", handlers.commentHandler.listComments())
			r.Post("/comments/{postID}", handlers.commentHandler.createComment())

			r.Get("/likes/count/{postID}", handlers.likeHandler.getLikeCount())
			r.Post("/likes/toggle", handlers.likeHandler.toggleLike())

			r.Post("/contact", handlers.contactHandler.submitContactMessage())

			r.Post("/admin/login", handlers.adminHandler.login())
			r.Post("/admin/logout", handlers.adminHandler.logout())
		})

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin(sessions))

			r.Post("/blogs", handlers.blogPostHandler.createBlogPost())
			r.Put("/blogs/{slug}", handlers.blogPostHandler.updateBlogPost())
			r.Delete("/blogs/{slug}", handlers.blogPostHandler.deleteBlogPost())

			r.Post("/projects", handlers.projectHandler.createProject())
			r.Put("/projects/{slug}", handlers.projectHandler.updateProject())
			r.Delete("/projects/{slug}", handlers.projectHandler.deleteProject())

			r.Get("/comments/admin", handlers.commentHandler.adminListComments())
			r.Post("/comments/approve/{id}", handlers.commentHandler.approveComment())
			r.Delete("/comments/delete/{id}", handlers.commentHandler.deleteComment())

			r.Get("/contact", handlers.contactHandler.listContactMessages())
		})
	})
}
