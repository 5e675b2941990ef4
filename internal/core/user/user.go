package user

import (
	"time"

	"github.com/gofrs/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	Username  string    `gorm:"uniqueIndex;size:150;not null"`
	Email     string    `gorm:"uniqueIndex;size:254;not null"`
	Password  string    `gorm:"not null"`
	FirstName string    `gorm:"size:150"`
	LastName  string    `gorm:"size:150"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
