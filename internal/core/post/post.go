package post

import (
	"time"

	"github.com/gofrs/uuid"

	"quill/internal/core/group"
	"quill/internal/core/user"
)

// Post text, group and image are editable by the author; AuthorID and
// CreatedAt are fixed at creation.
type Post struct {
	ID        uuid.UUID    `gorm:"primary_key;type:char(36)"`
	Text      string       `gorm:"type:text;not null"`
	AuthorID  uuid.UUID    `gorm:"type:char(36);not null;index"`
	Author    user.User    `gorm:"foreignkey:AuthorID"`
	GroupID   *uuid.UUID   `gorm:"type:char(36);index"`
	Group     *group.Group `gorm:"foreignkey:GroupID"`
	Image     string       `gorm:"size:255"`
	CreatedAt time.Time    `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time    `gorm:"autoUpdateTime"`
}
