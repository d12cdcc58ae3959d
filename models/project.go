package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project represents a portfolio project with metadata
type Project struct {
	ID          uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Slug        string                      `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_project_slug"`
	Title       string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Description string                      `json:"description" db:"description" gorm:"type:text;not null"`
	TechStack   datatypes.JSONSlice[string] `json:"techStack" db:"tech_stack"`
	GithubURL   string                      `json:"githubUrl" db:"github_url" gorm:"type:text"`
	LiveURL     string                      `json:"liveUrl" db:"live_url" gorm:"type:text"`
	Category    string                      `json:"category" db:"category" gorm:"type:text;not null"`
	ImageURLs   datatypes.JSONSlice[string] `json:"imageUrls" db:"image_urls"`
	CreatedAt   time.Time                   `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
