package followapp

import (
	"context"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	followEntity "quill/internal/core/follow"
	followPort "quill/internal/ports/follow"
	userPort "quill/internal/ports/user"
)

type FollowService struct {
	FollowRepository followPort.FollowRepository
	UserRepository   userPort.UserRepository
	Logger           *zap.Logger
}

func NewFollowService(followRepo followPort.FollowRepository, userRepo userPort.UserRepository, logger *zap.Logger) *FollowService {
	return &FollowService{
		FollowRepository: followRepo,
		UserRepository:   userRepo,
		Logger:           logger,
	}
}

// FollowAuthor creates the follower->author edge. Self-follows and already
// existing edges are silent no-ops; an unknown username is ErrNotFound.
func (s *FollowService) FollowAuthor(ctx context.Context, followerID, username string) error {
	author, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if author.ID.String() == followerID {
		s.Logger.Debug("ignoring self-follow", zap.String("userID", followerID))
		return nil
	}

	f := &followEntity.Follow{
		ID:         uuid.Must(uuid.NewV4()),
		FollowerID: uuid.FromStringOrNil(followerID),
		AuthorID:   author.ID,
	}
	return s.FollowRepository.Create(ctx, f)
}

// UnfollowAuthor removes the edge if present; removing a missing edge is a
// no-op.
func (s *FollowService) UnfollowAuthor(ctx context.Context, followerID, username string) error {
	author, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.FollowRepository.Delete(ctx, followerID, author.ID.String())
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, authorID string) (bool, error) {
	return s.FollowRepository.Exists(ctx, followerID, authorID)
}
