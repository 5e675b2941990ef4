package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quill/internal/core/follow"
)

type FollowRepositoryDatabase struct {
	db *gorm.DB
}

func NewFollowRepositoryDatabase(db *gorm.DB) *FollowRepositoryDatabase {
	return &FollowRepositoryDatabase{db: db}
}

// Create inserts the edge unless it already exists. A duplicate-key error
// from a racing insert counts as success: the unique index guarantees a
// single row either way.
func (repo *FollowRepositoryDatabase) Create(ctx context.Context, f *follow.Follow) error {
	err := repo.db.WithContext(ctx).
		Omit(clause.Associations).
		Where(&follow.Follow{FollowerID: f.FollowerID, AuthorID: f.AuthorID}).
		FirstOrCreate(f).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (repo *FollowRepositoryDatabase) Delete(ctx context.Context, followerID, authorID string) error {
	return repo.db.WithContext(ctx).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Delete(&follow.Follow{}).Error
}

func (repo *FollowRepositoryDatabase) Exists(ctx context.Context, followerID, authorID string) (bool, error) {
	var n int64
	err := repo.db.WithContext(ctx).
		Model(&follow.Follow{}).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Count(&n).Error
	return n > 0, err
}

func (repo *FollowRepositoryDatabase) CountFollowers(ctx context.Context, authorID string) (int64, error) {
	var n int64
	err := repo.db.WithContext(ctx).
		Model(&follow.Follow{}).
		Where("author_id = ?", authorID).
		Count(&n).Error
	return n, err
}
