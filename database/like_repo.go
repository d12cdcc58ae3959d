package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rohityadav-alpha/rohit-portfolio/models"
	"gorm.io/gorm"
)

type LikeRepo struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) *LikeRepo {
	return &LikeRepo{db}
}

// Toggle flips the like state for like's (post, user, kind) triple and reports
// the new state. It attempts the insert first and treats a duplicate-key
// rejection as "already liked", so two concurrent toggles cannot double-insert:
// the unique index arbitrates, not a prior read.
func (r *LikeRepo) Toggle(like *models.Like) (liked bool, err error) {
	err = r.db.Create(like).Error
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, err
	}

	result := r.db.
		Where("post_id = ? AND user_id = ? AND post_type = ?", like.PostID, like.UserID, like.PostType).
		Delete(&models.Like{})
	return false, result.Error
}

// CountForPost returns the number of likes a post has
func (r *LikeRepo) CountForPost(postID uuid.UUID, postType models.PostType) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("post_id = ? AND post_type = ?", postID, postType).
		Count(&count).Error
	return count, err
}

// UserLiked reports whether the given user has liked the post
func (r *LikeRepo) UserLiked(postID uuid.UUID, postType models.PostType, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("post_id = ? AND post_type = ? AND user_id = ?", postID, postType, userID).
		Count(&count).Error
	return count > 0, err
}
