package post

import (
	"context"

	"quill/internal/core/post"
	groupPort "quill/internal/ports/group"
	userPort "quill/internal/ports/user"
)

// PostRepository returns feed slices ordered by creation time descending.
// Page queries preload Author and Group.
type PostRepository interface {
	Create(ctx context.Context, p *post.Post) (*post.Post, error)
	Save(ctx context.Context, p *post.Post) error
	FindByID(ctx context.Context, id string) (*post.Post, error)

	CountAll(ctx context.Context) (int64, error)
	FindPage(ctx context.Context, offset, limit int) ([]*post.Post, error)

	CountByGroup(ctx context.Context, groupID string) (int64, error)
	FindPageByGroup(ctx context.Context, groupID string, offset, limit int) ([]*post.Post, error)

	CountByAuthor(ctx context.Context, authorID string) (int64, error)
	FindPageByAuthor(ctx context.Context, authorID string, offset, limit int) ([]*post.Post, error)

	// Followed narrows to posts whose author the viewer follows.
	CountFollowed(ctx context.Context, viewerID string) (int64, error)
	FindPageFollowed(ctx context.Context, viewerID string, offset, limit int) ([]*post.Post, error)
}

type PostDTO struct {
	ID        string              `json:"id"`
	Text      string              `json:"text"`
	Author    *userPort.UserDTO   `json:"author,omitempty"`
	Group     *groupPort.GroupDTO `json:"group,omitempty"`
	ImageURL  string              `json:"image_url,omitempty"`
	CreatedAt string              `json:"created_at"`
}

type CommentDTO struct {
	ID        string            `json:"id"`
	Text      string            `json:"text"`
	Author    *userPort.UserDTO `json:"author,omitempty"`
	CreatedAt string            `json:"created_at"`
}

// PostDetail backs the post detail page.
type PostDetail struct {
	Post             *PostDTO      `json:"post"`
	AuthorPostsCount int64         `json:"author_posts_count"`
	Comments         []*CommentDTO `json:"comments"`
	CommentsCount    int64         `json:"comments_count"`
}
