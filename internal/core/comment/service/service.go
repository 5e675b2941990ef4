package commentapp

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofrs/uuid"

	commentEntity "quill/internal/core/comment"
	"quill/internal/core/errs"
	commentPort "quill/internal/ports/comment"
	postPort "quill/internal/ports/post"
	userPort "quill/internal/ports/user"
)

type CommentService struct {
	CommentRepository commentPort.CommentRepository
	PostRepository    postPort.PostRepository
	UserRepository    userPort.UserRepository
}

func NewCommentService(
	commentRepo commentPort.CommentRepository,
	postRepo postPort.PostRepository,
	userRepo userPort.UserRepository,
) *CommentService {
	return &CommentService{
		CommentRepository: commentRepo,
		PostRepository:    postRepo,
		UserRepository:    userRepo,
	}
}

// AddComment appends a comment to an existing post. Text must be non-empty
// and at most comment.MaxTextLen characters.
func (s *CommentService) AddComment(ctx context.Context, authorID, postID, text string) (*postPort.CommentDTO, error) {
	if authorID == "" {
		return nil, errs.ErrUnauthorized
	}
	if strings.TrimSpace(text) == "" {
		return nil, errs.Validation("text", "must not be empty")
	}
	if len([]rune(text)) > commentEntity.MaxTextLen {
		return nil, errs.Validation("text", fmt.Sprintf("must be at most %d characters", commentEntity.MaxTextLen))
	}

	author, err := s.UserRepository.FindByID(ctx, authorID)
	if err != nil {
		return nil, errs.ErrUnauthorized
	}
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	c := &commentEntity.Comment{
		ID:       uuid.Must(uuid.NewV4()),
		Text:     text,
		AuthorID: author.ID,
		Author:   *author,
		PostID:   p.ID,
	}
	created, err := s.CommentRepository.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return postPort.CommentToDTO(created), nil
}
