package database

import (
	"github.com/rohityadav-alpha/rohit-portfolio/models"
	"gorm.io/gorm"
)

type Database struct {
	blogPostRepo       *BlogPostRepo
	projectRepo        *ProjectRepo
	commentRepo        *CommentRepo
	likeRepo           *LikeRepo
	contactMessageRepo *ContactMessageRepo
	postRefRepo        *PostRefRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		blogPostRepo:       NewBlogPostRepo(db),
		projectRepo:        NewProjectRepo(db),
		commentRepo:        NewCommentRepo(db),
		likeRepo:           NewLikeRepo(db),
		contactMessageRepo: NewContactMessageRepo(db),
		postRefRepo:        NewPostRefRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) LikeRepo() *LikeRepo {
	return d.likeRepo
}

func (d Database) ContactMessageRepo() *ContactMessageRepo {
	return d.contactMessageRepo
}

func (d Database) PostRefRepo() *PostRefRepo {
	return d.postRefRepo
}

// AutoMigrate creates or updates the schema for every entity, including the
// unique indexes that back slug allocation and like toggling.
func (d Database) AutoMigrate() error {
	return d.blogPostRepo.db.AutoMigrate(
		&models.BlogPost{},
		&models.Project{},
		&models.Comment{},
		&models.Like{},
		&models.ContactMessage{},
	)
}
