package database

import (
	"errors"

	"github.com/rohityadav-alpha/rohit-portfolio/errs"
	"github.com/rohityadav-alpha/rohit-portfolio/models"
	"gorm.io/gorm"
)

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// FindAll returns all blog posts, newest first
func (r *BlogPostRepo) FindAll() ([]*models.BlogPost, error) {
	var blogPosts []*models.BlogPost
	err := r.db.Order("created_at DESC").Find(&blogPosts).Error
	return blogPosts, err
}

// FindBySlug returns the blog post with the given slug, or nil when there is none
func (r *BlogPostRepo) FindBySlug(slug string) (*models.BlogPost, error) {
	var blogPost models.BlogPost
	err := r.db.Where("slug = ?", slug).First(&blogPost).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blogPost, nil
}

// Add inserts a new blog post. A slug collision surfaces as
// errs.ErrAlreadyExists so callers can retry with the next suffix; the unique
// index is the arbiter, there is no probe-then-insert window.
func (r *BlogPostRepo) Add(blogPost *models.BlogPost) error {
	err := r.db.Create(blogPost).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewAlreadyExists("blog post slug")
	}
	return err
}

// Update updates an existing blog post in the database
func (r *BlogPostRepo) Update(blogPost *models.BlogPost) error {
	return r.db.Save(blogPost).Error
}

// DeleteBySlug removes the blog post with the given slug
func (r *BlogPostRepo) DeleteBySlug(slug string) error {
	result := r.db.Where("slug = ?", slug).Delete(&models.BlogPost{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
