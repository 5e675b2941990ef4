package commentapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gofrs/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quill/internal/adapters/database"
	"quill/internal/config"
	"quill/internal/core/errs"
	postEntity "quill/internal/core/post"
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

func newCommentService(t *testing.T, db *gorm.DB) *CommentService {
	t.Helper()
	return NewCommentService(
		database.NewCommentRepositoryDatabase(db),
		database.NewPostRepositoryDatabase(db),
		database.NewUserRepositoryDatabase(db),
	)
}

func seed(t *testing.T, db *gorm.DB) (*userEntity.User, *postEntity.Post) {
	t.Helper()
	u := &userEntity.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: "commenter",
		Email:    "commenter@example.com",
		Password: "x",
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("creating user: %v", err)
	}
	p := &postEntity.Post{
		ID:       uuid.Must(uuid.NewV4()),
		Text:     "a post",
		AuthorID: u.ID,
	}
	if err := db.Omit(clause.Associations).Create(p).Error; err != nil {
		t.Fatalf("creating post: %v", err)
	}
	return u, p
}

func TestAddComment(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(t, db)
	ctx := context.Background()

	u, p := seed(t, db)

	dto, err := svc.AddComment(ctx, u.ID.String(), p.ID.String(), "nice post")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if dto.Text != "nice post" {
		t.Errorf("got %q, want %q", dto.Text, "nice post")
	}
	if dto.Author.Username != "commenter" {
		t.Errorf("got author %q, want %q", dto.Author.Username, "commenter")
	}

	comments, err := database.NewCommentRepositoryDatabase(db).FindByPostID(ctx, p.ID.String())
	if err != nil {
		t.Fatalf("FindByPostID: %v", err)
	}
	if len(comments) != 1 {
		t.Errorf("got %d comments, want 1", len(comments))
	}
}

func TestAddCommentValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(t, db)
	ctx := context.Background()

	u, p := seed(t, db)

	if _, err := svc.AddComment(ctx, u.ID.String(), p.ID.String(), "  "); !errs.IsValidation(err) {
		t.Errorf("empty text: got %v, want ValidationError", err)
	}

	long := strings.Repeat("x", 241)
	if _, err := svc.AddComment(ctx, u.ID.String(), p.ID.String(), long); !errs.IsValidation(err) {
		t.Errorf("over-length text: got %v, want ValidationError", err)
	}

	// Exactly at the bound is fine.
	if _, err := svc.AddComment(ctx, u.ID.String(), p.ID.String(), strings.Repeat("x", 240)); err != nil {
		t.Errorf("240-char text: got %v, want nil", err)
	}
}

func TestAddCommentMissingPost(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(t, db)

	u, _ := seed(t, db)
	missing := uuid.Must(uuid.NewV4()).String()

	if _, err := svc.AddComment(context.Background(), u.ID.String(), missing, "hello"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestAddCommentUnauthorized(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(t, db)

	_, p := seed(t, db)

	if _, err := svc.AddComment(context.Background(), "", p.ID.String(), "hello"); !errors.Is(err, errs.ErrUnauthorized) {
		t.Errorf("got %v, want ErrUnauthorized", err)
	}
}
