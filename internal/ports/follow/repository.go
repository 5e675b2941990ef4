package follow

import (
	"context"

	"quill/internal/core/follow"
)

// FollowRepository persists follow edges. Create must be idempotent: a second
// insert for the same (follower, author) pair is not an error, and concurrent
// inserts converge to one row through the storage-level unique index.
type FollowRepository interface {
	Create(ctx context.Context, f *follow.Follow) error
	Delete(ctx context.Context, followerID, authorID string) error
	Exists(ctx context.Context, followerID, authorID string) (bool, error)
	CountFollowers(ctx context.Context, authorID string) (int64, error)
}
