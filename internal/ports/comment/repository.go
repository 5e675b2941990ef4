package comment

import (
	"context"

	"quill/internal/core/comment"
)

type CommentRepository interface {
	Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error)
	// FindByPostID returns a post's comments oldest first, with Author preloaded.
	FindByPostID(ctx context.Context, postID string) ([]*comment.Comment, error)
	CountByPostID(ctx context.Context, postID string) (int64, error)
}
