package comment

import (
	"time"

	"github.com/gofrs/uuid"

	"quill/internal/core/user"
)

// MaxTextLen bounds comment length.
const MaxTextLen = 240

// Comment is append-only: no update or delete path exists.
type Comment struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	Text      string    `gorm:"size:240;not null"`
	AuthorID  uuid.UUID `gorm:"type:char(36);not null"`
	Author    user.User `gorm:"foreignkey:AuthorID"`
	PostID    uuid.UUID `gorm:"type:char(36);not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
