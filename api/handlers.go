package api

import (
	"github.com/rohityadav-alpha/rohit-portfolio/auth"
	"github.com/rohityadav-alpha/rohit-portfolio/config"
	"github.com/rohityadav-alpha/rohit-portfolio/database"
	"github.com/rohityadav-alpha/rohit-portfolio/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, c map[string]string, sessions *auth.Service) *routeHandlers {
	defaultAuthor := config.GetString(c, "SITE_AUTHOR", "Rohit Yadav")
	secureCookies := config.GetBool(c, "SECURE_COOKIES", false)

	return &routeHandlers{
		blogPostHandler: newBlogPostHandler(database.BlogPostRepo(), defaultAuthor),
		projectHandler:  newProjectHandler(database.ProjectRepo()),
		commentHandler:  newCommentHandler(database.CommentRepo(), database.PostRefRepo()),
		likeHandler:     newLikeHandler(database.LikeRepo(), database.PostRefRepo()),
		contactHandler:  newContactHandler(database.ContactMessageRepo(), services.NewContactNotifier(c)),
		adminHandler:    newAdminHandler(sessions, secureCookies),
	}
}
