package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gofrs/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quill/internal/config"
	followEntity "quill/internal/core/follow"
	userEntity "quill/internal/core/user"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

func seedUsers(t *testing.T, db *gorm.DB) (follower, author uuid.UUID) {
	t.Helper()
	for i, name := range []string{"follower", "author"} {
		u := &userEntity.User{
			ID:       uuid.Must(uuid.NewV4()),
			Username: name,
			Email:    name + "@example.com",
			Password: "x",
		}
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("creating user: %v", err)
		}
		if i == 0 {
			follower = u.ID
		} else {
			author = u.ID
		}
	}
	return follower, author
}

// The unique index is the storage-level guarantee that two racing inserts
// for the same pair cannot both land.
func TestFollowUniqueIndex(t *testing.T) {
	db := newTestDB(t)
	follower, author := seedUsers(t, db)

	edge := func() *followEntity.Follow {
		return &followEntity.Follow{
			ID:         uuid.Must(uuid.NewV4()),
			FollowerID: follower,
			AuthorID:   author,
		}
	}

	if err := db.Omit(clause.Associations).Create(edge()).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := db.Omit(clause.Associations).Create(edge()).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("second insert: got %v, want ErrDuplicatedKey", err)
	}
}

// Create must absorb the duplicate a lost race leaves behind.
func TestFollowCreateConverges(t *testing.T) {
	db := newTestDB(t)
	repo := NewFollowRepositoryDatabase(db)
	ctx := context.Background()
	follower, author := seedUsers(t, db)

	// Another request already inserted the edge.
	existing := &followEntity.Follow{
		ID:         uuid.Must(uuid.NewV4()),
		FollowerID: follower,
		AuthorID:   author,
	}
	if err := db.Omit(clause.Associations).Create(existing).Error; err != nil {
		t.Fatalf("seeding edge: %v", err)
	}

	late := &followEntity.Follow{
		ID:         uuid.Must(uuid.NewV4()),
		FollowerID: follower,
		AuthorID:   author,
	}
	if err := repo.Create(ctx, late); err != nil {
		t.Fatalf("Create on existing edge: %v", err)
	}

	var n int64
	if err := db.Model(&followEntity.Follow{}).Count(&n).Error; err != nil {
		t.Fatalf("counting edges: %v", err)
	}
	if n != 1 {
		t.Errorf("got %d edges, want exactly 1", n)
	}

	ok, err := repo.Exists(ctx, follower.String(), author.String())
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !ok {
		t.Error("Exists reports false for a present edge")
	}
}
