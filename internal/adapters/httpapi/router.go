package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"quill/internal/adapters/httpapi/middleware"
	feedPort "quill/internal/ports/feed"
	mediaPort "quill/internal/ports/media"
	postPort "quill/internal/ports/post"
	userPort "quill/internal/ports/user"
)

// Inbound ports: what the controllers need from the use-case layer.

type UserUseCase interface {
	Register(ctx context.Context, username, email, password, firstName, lastName string) (*userPort.UserDTO, error)
	Login(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, authorID, text, groupSlug string, image *mediaPort.Upload) (*postPort.PostDTO, error)
	EditPost(ctx context.Context, editorID, postID, text, groupSlug string, image *mediaPort.Upload) (*postPort.PostDTO, error)
	GetPost(ctx context.Context, postID string) (*postPort.PostDetail, error)
}

type CommentUseCase interface {
	AddComment(ctx context.Context, authorID, postID, text string) (*postPort.CommentDTO, error)
}

type FollowUseCase interface {
	FollowAuthor(ctx context.Context, followerID, username string) error
	UnfollowAuthor(ctx context.Context, followerID, username string) error
}

type FeedUseCase interface {
	GlobalFeed(ctx context.Context, page int) (*feedPort.Page, error)
	GroupFeed(ctx context.Context, slug string, page int) (*feedPort.GroupPage, error)
	ProfileFeed(ctx context.Context, username, viewerID string, page int) (*feedPort.Profile, error)
	FollowingFeed(ctx context.Context, viewerID string, page int) (*feedPort.Page, error)
}

// SetupRoutes wires the controllers onto the route table. Use cases are
// injected from main.
func SetupRoutes(
	jwtSecret []byte,
	mediaDir string,
	userUC UserUseCase,
	postUC PostUseCase,
	commentUC CommentUseCase,
	followUC FollowUseCase,
	feedUC FeedUseCase,
) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.Metrics())

	uc := NewUserController(userUC)
	pc := NewPostController(postUC)
	cc := NewCommentController(commentUC)
	flc := NewFollowController(followUC)
	fc := NewFeedController(feedUC)

	auth := middleware.JWTAuth(jwtSecret)
	optionalAuth := middleware.OptionalJWTAuth(jwtSecret)

	// Public feeds and detail pages
	r.GET("/", fc.Index)
	r.GET("/group/:slug/", fc.GroupPosts)
	r.GET("/profile/:username/", optionalAuth, fc.Profile)
	r.GET("/posts/:post_id/", pc.Detail)

	// Authenticated mutations and the personalized feed
	r.POST("/create/", auth, pc.Create)
	r.POST("/posts/:post_id/edit/", auth, pc.Edit)
	r.POST("/posts/:post_id/comment/", auth, cc.Add)
	r.GET("/follow/", auth, fc.Following)
	r.GET("/profile/:username/follow/", auth, flc.Follow)
	r.GET("/profile/:username/unfollow/", auth, flc.Unfollow)

	// Identity
	r.POST("/auth/signup/", uc.Signup)
	r.POST("/auth/login/", uc.Login)

	// Operational surface
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/media", mediaDir)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return r
}
