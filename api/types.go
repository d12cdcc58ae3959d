package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	blogPostHandler blogPostHandler
	projectHandler  projectHandler
	commentHandler  commentHandler
	likeHandler     likeHandler
	contactHandler  contactHandler
	adminHandler    adminHandler
}
