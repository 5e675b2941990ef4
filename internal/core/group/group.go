package group

import (
	"time"

	"github.com/gofrs/uuid"
)

// Group is created by an operator or the seeder; the HTTP surface never
// mutates it.
type Group struct {
	ID          uuid.UUID `gorm:"primary_key;type:char(36)"`
	Slug        string    `gorm:"uniqueIndex;size:200;not null"`
	Title       string    `gorm:"size:200;not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}
