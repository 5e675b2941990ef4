package config

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"quill/internal/core/comment"
	"quill/internal/core/follow"
	"quill/internal/core/group"
	"quill/internal/core/post"
	"quill/internal/core/user"
)

// OpenDB connects to MySQL and runs the migrations for every entity,
// including the unique index on follow edges.
func OpenDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&user.User{},
		&group.Group{},
		&post.Post{},
		&comment.Comment{},
		&follow.Follow{},
	); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
