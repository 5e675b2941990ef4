package follow

import (
	"time"

	"github.com/gofrs/uuid"

	"quill/internal/core/user"
)

// Follow is a directed edge from a follower to an author. The composite
// unique index makes racing creates for the same pair converge to one row.
type Follow struct {
	ID         uuid.UUID `gorm:"primary_key;type:char(36)"`
	FollowerID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_follow_edge"`
	Follower   user.User `gorm:"foreignkey:FollowerID"`
	AuthorID   uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_follow_edge"`
	Author     user.User `gorm:"foreignkey:AuthorID"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}
