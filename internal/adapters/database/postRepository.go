package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quill/internal/core/post"
)

const feedOrder = "posts.created_at DESC"

type PostRepositoryDatabase struct {
	db *gorm.DB
}

func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) Save(ctx context.Context, p *post.Post) error {
	// Omit associations so editing never touches the author or group rows.
	return repo.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id string) (*post.Post, error) {
	var p post.Post
	err := repo.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := repo.db.WithContext(ctx).Model(&post.Post{}).Count(&n).Error
	return n, err
}

func (repo *PostRepositoryDatabase) FindPage(ctx context.Context, offset, limit int) ([]*post.Post, error) {
	return repo.page(repo.db.WithContext(ctx), offset, limit)
}

func (repo *PostRepositoryDatabase) CountByGroup(ctx context.Context, groupID string) (int64, error) {
	var n int64
	err := repo.db.WithContext(ctx).
		Model(&post.Post{}).
		Where("group_id = ?", groupID).
		Count(&n).Error
	return n, err
}

func (repo *PostRepositoryDatabase) FindPageByGroup(ctx context.Context, groupID string, offset, limit int) ([]*post.Post, error) {
	return repo.page(repo.db.WithContext(ctx).Where("group_id = ?", groupID), offset, limit)
}

func (repo *PostRepositoryDatabase) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	var n int64
	err := repo.db.WithContext(ctx).
		Model(&post.Post{}).
		Where("author_id = ?", authorID).
		Count(&n).Error
	return n, err
}

func (repo *PostRepositoryDatabase) FindPageByAuthor(ctx context.Context, authorID string, offset, limit int) ([]*post.Post, error) {
	return repo.page(repo.db.WithContext(ctx).Where("author_id = ?", authorID), offset, limit)
}

func (repo *PostRepositoryDatabase) CountFollowed(ctx context.Context, viewerID string) (int64, error) {
	var n int64
	err := repo.followedScope(ctx, viewerID).Count(&n).Error
	return n, err
}

func (repo *PostRepositoryDatabase) FindPageFollowed(ctx context.Context, viewerID string, offset, limit int) ([]*post.Post, error) {
	var posts []*post.Post
	err := repo.followedScope(ctx, viewerID).
		Preload("Author").
		Preload("Group").
		Order(feedOrder).
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) followedScope(ctx context.Context, viewerID string) *gorm.DB {
	return repo.db.WithContext(ctx).
		Model(&post.Post{}).
		Joins("JOIN follows ON follows.author_id = posts.author_id AND follows.follower_id = ?", viewerID)
}

func (repo *PostRepositoryDatabase) page(tx *gorm.DB, offset, limit int) ([]*post.Post, error) {
	var posts []*post.Post
	err := tx.
		Preload("Author").
		Preload("Group").
		Order(feedOrder).
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
