package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BlogPost represents a blog article, draft or published
type BlogPost struct {
	ID        uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Slug      string                      `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_blog_post_slug"`
	Title     string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Content   string                      `json:"content" db:"content" gorm:"type:text;not null"`
	Excerpt   string                      `json:"excerpt" db:"excerpt" gorm:"type:text"`
	Category  string                      `json:"category" db:"category" gorm:"type:text;not null"`
	Tags      datatypes.JSONSlice[string] `json:"tags" db:"tags"`
	ImageURL  string                      `json:"imageUrl" db:"image_url" gorm:"type:text"`
	Published bool                        `json:"published" db:"published" gorm:"not null;default:false"`
	Author    string                      `json:"author" db:"author" gorm:"type:text;not null"`
	CreatedAt time.Time                   `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time                   `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
