package post

import (
	"time"

	"quill/internal/core/comment"
	"quill/internal/core/post"
	groupPort "quill/internal/ports/group"
	userPort "quill/internal/ports/user"
)

// ToDTO maps an entity with preloaded associations to its wire shape.
func ToDTO(p *post.Post) *PostDTO {
	dto := &PostDTO{
		ID:        p.ID.String(),
		Text:      p.Text,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		Author: &userPort.UserDTO{
			ID:       p.AuthorID.String(),
			Username: p.Author.Username,
		},
	}
	if p.Image != "" {
		dto.ImageURL = "/media/" + p.Image
	}
	if p.Group != nil {
		dto.Group = &groupPort.GroupDTO{
			Slug:  p.Group.Slug,
			Title: p.Group.Title,
		}
	}
	return dto
}

func CommentToDTO(c *comment.Comment) *CommentDTO {
	return &CommentDTO{
		ID:        c.ID.String(),
		Text:      c.Text,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		Author: &userPort.UserDTO{
			ID:       c.AuthorID.String(),
			Username: c.Author.Username,
		},
	}
}
