package postapp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"quill/internal/core/errs"
	postEntity "quill/internal/core/post"
	commentPort "quill/internal/ports/comment"
	feedPort "quill/internal/ports/feed"
	groupPort "quill/internal/ports/group"
	mediaPort "quill/internal/ports/media"
	postPort "quill/internal/ports/post"
)

type PostService struct {
	PostRepository    postPort.PostRepository
	GroupRepository   groupPort.GroupRepository
	CommentRepository commentPort.CommentRepository
	Images            mediaPort.ImageStore
	FeedCache         feedPort.Cache
	Logger            *zap.Logger
}

func NewPostService(
	postRepo postPort.PostRepository,
	groupRepo groupPort.GroupRepository,
	commentRepo commentPort.CommentRepository,
	images mediaPort.ImageStore,
	feedCache feedPort.Cache,
	logger *zap.Logger,
) *PostService {
	return &PostService{
		PostRepository:    postRepo,
		GroupRepository:   groupRepo,
		CommentRepository: commentRepo,
		Images:            images,
		FeedCache:         feedCache,
		Logger:            logger,
	}
}

// CreatePost persists a new post for authorID. groupSlug and image are
// optional. The global feed cache is invalidated before returning.
func (s *PostService) CreatePost(ctx context.Context, authorID, text, groupSlug string, image *mediaPort.Upload) (*postPort.PostDTO, error) {
	if authorID == "" {
		return nil, errs.ErrUnauthorized
	}
	if strings.TrimSpace(text) == "" {
		return nil, errs.Validation("text", "must not be empty")
	}

	p := &postEntity.Post{
		ID:       uuid.Must(uuid.NewV4()),
		Text:     text,
		AuthorID: uuid.FromStringOrNil(authorID),
	}

	groupID, err := s.resolveGroup(ctx, groupSlug)
	if err != nil {
		return nil, err
	}
	p.GroupID = groupID

	if image != nil {
		path, err := s.Images.Save(image)
		if err != nil {
			return nil, err
		}
		p.Image = path
	}

	created, err := s.PostRepository.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	s.invalidateFeed(ctx)

	// Reload with associations for the response.
	return s.load(ctx, created.ID.String())
}

// EditPost overwrites text, group and image of an existing post. Only the
// author may edit; CreatedAt is never touched. A nil image keeps the current
// attachment.
func (s *PostService) EditPost(ctx context.Context, editorID, postID, text, groupSlug string, image *mediaPort.Upload) (*postPort.PostDTO, error) {
	if editorID == "" {
		return nil, errs.ErrUnauthorized
	}

	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.AuthorID.String() != editorID {
		return nil, errs.ErrForbidden
	}
	if strings.TrimSpace(text) == "" {
		return nil, errs.Validation("text", "must not be empty")
	}

	groupID, err := s.resolveGroup(ctx, groupSlug)
	if err != nil {
		return nil, err
	}

	p.Text = text
	p.GroupID = groupID
	p.Group = nil
	if image != nil {
		path, err := s.Images.Save(image)
		if err != nil {
			return nil, err
		}
		p.Image = path
	}

	if err := s.PostRepository.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	s.invalidateFeed(ctx)

	return s.load(ctx, postID)
}

// GetPost builds the detail view: the post, its comments oldest first, and
// the author's total post count.
func (s *PostService) GetPost(ctx context.Context, postID string) (*postPort.PostDetail, error) {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.CommentRepository.FindByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	authorCount, err := s.PostRepository.CountByAuthor(ctx, p.AuthorID.String())
	if err != nil {
		return nil, err
	}

	commentDTOs := make([]*postPort.CommentDTO, 0, len(comments))
	for _, c := range comments {
		commentDTOs = append(commentDTOs, postPort.CommentToDTO(c))
	}

	return &postPort.PostDetail{
		Post:             postPort.ToDTO(p),
		AuthorPostsCount: authorCount,
		Comments:         commentDTOs,
		CommentsCount:    int64(len(commentDTOs)),
	}, nil
}

func (s *PostService) resolveGroup(ctx context.Context, slug string) (*uuid.UUID, error) {
	if slug == "" {
		return nil, nil
	}
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.Validation("group", "unknown group")
	}
	if err != nil {
		return nil, err
	}
	return &g.ID, nil
}

func (s *PostService) load(ctx context.Context, postID string) (*postPort.PostDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return postPort.ToDTO(p), nil
}

func (s *PostService) invalidateFeed(ctx context.Context) {
	if s.FeedCache == nil {
		return
	}
	if err := s.FeedCache.Invalidate(ctx); err != nil {
		s.Logger.Warn("could not invalidate feed cache", zap.Error(err))
	}
}
