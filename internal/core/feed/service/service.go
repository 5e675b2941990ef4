package feedapp

import (
	"context"

	"go.uber.org/zap"

	"quill/internal/core/errs"
	postEntity "quill/internal/core/post"
	feedPort "quill/internal/ports/feed"
	followPort "quill/internal/ports/follow"
	groupPort "quill/internal/ports/group"
	postPort "quill/internal/ports/post"
	userPort "quill/internal/ports/user"
)

type FeedService struct {
	PostRepository   postPort.PostRepository
	UserRepository   userPort.UserRepository
	GroupRepository  groupPort.GroupRepository
	FollowRepository followPort.FollowRepository
	Cache            feedPort.Cache
	Logger           *zap.Logger
}

func NewFeedService(
	postRepo postPort.PostRepository,
	userRepo userPort.UserRepository,
	groupRepo groupPort.GroupRepository,
	followRepo followPort.FollowRepository,
	cache feedPort.Cache,
	logger *zap.Logger,
) *FeedService {
	return &FeedService{
		PostRepository:   postRepo,
		UserRepository:   userRepo,
		GroupRepository:  groupRepo,
		FollowRepository: followRepo,
		Cache:            cache,
		Logger:           logger,
	}
}

// GlobalFeed returns one page of all posts, newest first, read through the
// page cache when one is configured.
func (s *FeedService) GlobalFeed(ctx context.Context, page int) (*feedPort.Page, error) {
	if s.Cache != nil {
		cached, err := s.Cache.GetPage(ctx, page)
		if err != nil {
			s.Logger.Warn("feed cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	result, err := s.buildGlobalPage(ctx, page)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.SetPage(ctx, result); err != nil {
			s.Logger.Warn("feed cache write failed", zap.Error(err))
		}
	}
	return result, nil
}

// RefreshGlobal recomputes the first page and writes it to the cache. The
// warmer worker calls this on a timer.
func (s *FeedService) RefreshGlobal(ctx context.Context) error {
	if s.Cache == nil {
		return nil
	}
	result, err := s.buildGlobalPage(ctx, 1)
	if err != nil {
		return err
	}
	return s.Cache.SetPage(ctx, result)
}

// GroupFeed returns one page of the group's posts; unknown slugs are
// ErrNotFound.
func (s *FeedService) GroupFeed(ctx context.Context, slug string, page int) (*feedPort.GroupPage, error) {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	gid := g.ID.String()
	p, err := s.paginate(ctx, page,
		func(ctx context.Context) (int64, error) {
			return s.PostRepository.CountByGroup(ctx, gid)
		},
		func(ctx context.Context, offset, limit int) ([]*postEntity.Post, error) {
			return s.PostRepository.FindPageByGroup(ctx, gid, offset, limit)
		},
	)
	if err != nil {
		return nil, err
	}

	return &feedPort.GroupPage{
		Group: &groupPort.GroupDTO{
			Slug:        g.Slug,
			Title:       g.Title,
			Description: g.Description,
		},
		Page: p,
	}, nil
}

// ProfileFeed returns the author's posts plus profile counters. viewerID may
// be empty (anonymous): the Following flag is then omitted, as it is when the
// viewer is the profile owner.
func (s *FeedService) ProfileFeed(ctx context.Context, username, viewerID string, page int) (*feedPort.Profile, error) {
	author, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	aid := author.ID.String()
	p, err := s.paginate(ctx, page,
		func(ctx context.Context) (int64, error) {
			return s.PostRepository.CountByAuthor(ctx, aid)
		},
		func(ctx context.Context, offset, limit int) ([]*postEntity.Post, error) {
			return s.PostRepository.FindPageByAuthor(ctx, aid, offset, limit)
		},
	)
	if err != nil {
		return nil, err
	}

	followerCount, err := s.FollowRepository.CountFollowers(ctx, aid)
	if err != nil {
		return nil, err
	}

	profile := &feedPort.Profile{
		Author: &userPort.UserDTO{
			ID:       aid,
			Username: author.Username,
		},
		PostsCount:    p.TotalItems,
		FollowerCount: followerCount,
		Page:          p,
	}

	if viewerID != "" && viewerID != aid {
		following, err := s.FollowRepository.Exists(ctx, viewerID, aid)
		if err != nil {
			return nil, err
		}
		profile.Following = &following
	}
	return profile, nil
}

// FollowingFeed returns posts authored by anyone the viewer follows; it
// requires an authenticated viewer.
func (s *FeedService) FollowingFeed(ctx context.Context, viewerID string, page int) (*feedPort.Page, error) {
	if viewerID == "" {
		return nil, errs.ErrUnauthorized
	}
	return s.paginate(ctx, page,
		func(ctx context.Context) (int64, error) {
			return s.PostRepository.CountFollowed(ctx, viewerID)
		},
		func(ctx context.Context, offset, limit int) ([]*postEntity.Post, error) {
			return s.PostRepository.FindPageFollowed(ctx, viewerID, offset, limit)
		},
	)
}

func (s *FeedService) buildGlobalPage(ctx context.Context, page int) (*feedPort.Page, error) {
	return s.paginate(ctx, page,
		s.PostRepository.CountAll,
		s.PostRepository.FindPage,
	)
}

func (s *FeedService) paginate(
	ctx context.Context,
	requested int,
	count func(context.Context) (int64, error),
	fetch func(ctx context.Context, offset, limit int) ([]*postEntity.Post, error),
) (*feedPort.Page, error) {
	total, err := count(ctx)
	if err != nil {
		return nil, err
	}

	number, offset, pageCount := clampPage(total, requested)
	posts, err := fetch(ctx, offset, PageSize)
	if err != nil {
		return nil, err
	}

	items := make([]*postPort.PostDTO, 0, len(posts))
	for _, p := range posts {
		items = append(items, postPort.ToDTO(p))
	}

	return &feedPort.Page{
		Number:     number,
		TotalPages: pageCount,
		TotalItems: total,
		Items:      items,
	}, nil
}
