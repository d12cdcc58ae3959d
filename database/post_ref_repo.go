package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rohityadav-alpha/rohit-portfolio/models"
	"gorm.io/gorm"
)

// PostRefRepo resolves (PostID, PostType) pairs to the content record they
// reference. Engagement rows carry the tagged pair instead of a plain foreign
// key, so existence is checked per kind here before a comment or like is
// written.
type PostRefRepo struct {
	db *gorm.DB
}

func NewPostRefRepo(db *gorm.DB) *PostRefRepo {
	return &PostRefRepo{db}
}

// Exists reports whether the referenced blog post or project exists.
func (r *PostRefRepo) Exists(postID uuid.UUID, postType models.PostType) (bool, error) {
	var count int64
	var err error

	switch postType {
	case models.PostTypeBlog:
		err = r.db.Model(&models.BlogPost{}).Where("id = ?", postID).Count(&count).Error
	case models.PostTypeProject:
		err = r.db.Model(&models.Project{}).Where("id = ?", postID).Count(&count).Error
	default:
		return false, fmt.Errorf("unknown post type %q", postType)
	}

	if err != nil {
		return false, err
	}
	return count > 0, nil
}
