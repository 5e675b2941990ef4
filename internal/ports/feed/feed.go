package feed

import (
	"context"

	groupPort "quill/internal/ports/group"
	postPort "quill/internal/ports/post"
	userPort "quill/internal/ports/user"
)

// Page is one slice of a feed. Number is 1-indexed and already clamped to the
// valid range.
type Page struct {
	Number     int                 `json:"number"`
	TotalPages int                 `json:"total_pages"`
	TotalItems int64               `json:"total_items"`
	Items      []*postPort.PostDTO `json:"items"`
}

// GroupPage is a group feed page together with the group's metadata.
type GroupPage struct {
	Group *groupPort.GroupDTO `json:"group"`
	Page  *Page               `json:"page"`
}

// Profile is an author's feed page plus profile counters. Following is nil
// when the viewer is anonymous or is the profile owner.
type Profile struct {
	Author        *userPort.UserDTO `json:"author"`
	PostsCount    int64             `json:"posts_count"`
	FollowerCount int64             `json:"follower_count"`
	Following     *bool             `json:"following,omitempty"`
	Page          *Page             `json:"page"`
}

// Cache fronts the global feed listing. Get returns (nil, nil) on a miss;
// Invalidate drops every cached page and is called by every post mutation.
type Cache interface {
	GetPage(ctx context.Context, number int) (*Page, error)
	SetPage(ctx context.Context, p *Page) error
	Invalidate(ctx context.Context) error
}
