package models

import (
	"time"

	"github.com/google/uuid"
)

// Like records that a visitor liked a post. The composite unique index keeps
// at most one row per (post, user, kind) triple; like toggling leans on that
// index instead of a read-then-write check.
type Like struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	PostID    uuid.UUID `json:"postId" db:"post_id" gorm:"type:uuid;not null;uniqueIndex:idx_like_post_user_type"`
	PostType  PostType  `json:"postType" db:"post_type" gorm:"type:text;not null;uniqueIndex:idx_like_post_user_type"`
	UserID    string    `json:"userId" db:"user_id" gorm:"type:text;not null;uniqueIndex:idx_like_post_user_type"`
	IPAddress string    `json:"ipAddress" db:"ip_address" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
