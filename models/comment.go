package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment represents a visitor comment on a blog post or project. Comments
// start unapproved and only surface publicly once an admin approves them.
// Threading is a single level deep: a reply's ParentID references a top-level
// comment of the same post.
type Comment struct {
	ID        uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	PostID    uuid.UUID  `json:"postId" db:"post_id" gorm:"type:uuid;not null;index:idx_comment_post"`
	PostType  PostType   `json:"postType" db:"post_type" gorm:"type:text;not null;index:idx_comment_post"`
	UserName  string     `json:"userName" db:"user_name" gorm:"type:text;not null"`
	UserEmail string     `json:"userEmail" db:"user_email" gorm:"type:text;not null"`
	Body      string     `json:"comment" db:"body" gorm:"column:body;type:text;not null"`
	UserID    string     `json:"userId" db:"user_id" gorm:"type:text;not null"`
	ParentID  *uuid.UUID `json:"parentId,omitempty" db:"parent_id" gorm:"type:uuid;index:idx_comment_parent"`
	IPAddress string     `json:"ipAddress" db:"ip_address" gorm:"type:text"`
	Approved  bool       `json:"approved" db:"approved" gorm:"not null;default:false"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`

	Replies []Comment `json:"replies,omitempty" gorm:"foreignKey:ParentID;references:ID;constraint:OnDelete:CASCADE"`
}

// TopLevel reports whether the comment starts a thread.
func (c Comment) TopLevel() bool {
	return c.ParentID == nil
}
