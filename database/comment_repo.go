package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rohityadav-alpha/rohit-portfolio/models"
	"gorm.io/gorm"
)

// ModerationFilter selects which comments the admin listing returns.
type ModerationFilter string

const (
	ModerationFilterAll      ModerationFilter = "all"
	ModerationFilterPending  ModerationFilter = "pending"
	ModerationFilterApproved ModerationFilter = "approved"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// FindApprovedForPost returns the approved top-level comments of a post,
// newest first, each with its approved replies attached oldest first.
// Unapproved replies never leave the database.
func (r *CommentRepo) FindApprovedForPost(postID uuid.UUID, postType models.PostType) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.
		Where("post_id = ? AND post_type = ? AND approved = ? AND parent_id IS NULL", postID, postType, true).
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Where("approved = ?", true).Order("created_at ASC")
		}).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// FindForModeration returns comments for the admin view, newest first,
// ignoring the approved flag unless the filter narrows it. postType and query
// (a case-insensitive substring of commenter name or email) are optional.
func (r *CommentRepo) FindForModeration(filter ModerationFilter, postType models.PostType, query string) ([]*models.Comment, error) {
	q := r.db.Order("created_at DESC")

	switch filter {
	case ModerationFilterPending:
		q = q.Where("approved = ?", false)
	case ModerationFilterApproved:
		q = q.Where("approved = ?", true)
	}

	if postType != "" {
		q = q.Where("post_type = ?", postType)
	}

	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(user_name) LIKE ? OR LOWER(user_email) LIKE ?", like, like)
	}

	var comments []*models.Comment
	err := q.Find(&comments).Error
	return comments, err
}

// FindByID returns the comment with the given id, or nil when there is none
func (r *CommentRepo) FindByID(id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Where("id = ?", id).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Add inserts a new comment into the database
func (r *CommentRepo) Add(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// Approve flips a pending comment to approved
func (r *CommentRepo) Approve(id uuid.UUID) error {
	result := r.db.Model(&models.Comment{}).Where("id = ?", id).Update("approved", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a comment; replies cascade through the self-FK
func (r *CommentRepo) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
