package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"quill/internal/adapters/database"
	"quill/internal/adapters/storage"
	"quill/internal/config"
	commentapp "quill/internal/core/comment/service"
	feedapp "quill/internal/core/feed/service"
	followapp "quill/internal/core/follow/service"
	postapp "quill/internal/core/post/service"
	userapp "quill/internal/core/user/service"
	feedPort "quill/internal/ports/feed"
)

var testSecret = []byte("test-secret")

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	images, err := storage.NewDiskImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("creating image store: %v", err)
	}

	logger := zap.NewNop()
	userRepo := database.NewUserRepositoryDatabase(db)
	groupRepo := database.NewGroupRepositoryDatabase(db)
	postRepo := database.NewPostRepositoryDatabase(db)
	commentRepo := database.NewCommentRepositoryDatabase(db)
	followRepo := database.NewFollowRepositoryDatabase(db)

	return SetupRoutes(
		testSecret,
		t.TempDir(),
		userapp.NewUserService(userRepo, testSecret),
		postapp.NewPostService(postRepo, groupRepo, commentRepo, images, nil, logger),
		commentapp.NewCommentService(commentRepo, postRepo, userRepo),
		followapp.NewFollowService(followRepo, userRepo, logger),
		feedapp.NewFeedService(postRepo, userRepo, groupRepo, followRepo, nil, logger),
	)
}

func do(t *testing.T, r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signupAndLogin(t *testing.T, r *gin.Engine, username string) *http.Cookie {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/signup/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if w := do(t, r, req); w.Code != http.StatusCreated {
		t.Fatalf("signup %s: got status %d: %s", username, w.Code, w.Body.String())
	}

	body, _ = json.Marshal(map[string]string{
		"username": username,
		"password": "password123",
	})
	req = httptest.NewRequest(http.MethodPost, "/auth/login/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := do(t, r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: got status %d: %s", username, w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "auth_token" {
			return c
		}
	}
	t.Fatalf("login %s: no auth_token cookie", username)
	return nil
}

func createPostHTTP(t *testing.T, r *gin.Engine, cookie *http.Cookie, text string) string {
	t.Helper()
	form := url.Values{"text": {text}}
	req := httptest.NewRequest(http.MethodPost, "/create/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	w := do(t, r, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create post: got status %d: %s", w.Code, w.Body.String())
	}
	var res struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decoding create response: %v", err)
	}
	return res.ID
}

func TestUnauthenticatedRedirectsToLogin(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/create/", nil)
	w := do(t, r, req)

	if w.Code != http.StatusFound {
		t.Fatalf("got status %d, want 302", w.Code)
	}
	loc := w.Header().Get("Location")
	if !strings.HasPrefix(loc, "/auth/login/?next=") {
		t.Errorf("got redirect %q, want login with next", loc)
	}
	if !strings.Contains(loc, url.QueryEscape("/create/")) {
		t.Errorf("redirect %q does not carry the original path", loc)
	}
}

func TestNonAuthorEditRedirectsToDetail(t *testing.T) {
	r := newTestRouter(t)

	authorCookie := signupAndLogin(t, r, "author")
	intruderCookie := signupAndLogin(t, r, "intruder")
	postID := createPostHTTP(t, r, authorCookie, "original")

	form := url.Values{"text": {"hijacked"}}
	req := httptest.NewRequest(http.MethodPost, "/posts/"+postID+"/edit/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(intruderCookie)
	w := do(t, r, req)

	if w.Code != http.StatusFound {
		t.Fatalf("got status %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/posts/"+postID+"/" {
		t.Errorf("got redirect %q, want detail view", loc)
	}

	// The post is untouched.
	req = httptest.NewRequest(http.MethodGet, "/posts/"+postID+"/", nil)
	w = do(t, r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("detail: got status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "original") || strings.Contains(w.Body.String(), "hijacked") {
		t.Errorf("post text changed by non-author edit: %s", w.Body.String())
	}
}

func TestFollowFlow(t *testing.T) {
	r := newTestRouter(t)

	authorCookie := signupAndLogin(t, r, "TestUser")
	followerCookie := signupAndLogin(t, r, "Follower")
	notFollowerCookie := signupAndLogin(t, r, "NotFollower")
	createPostHTTP(t, r, authorCookie, "Test post")

	req := httptest.NewRequest(http.MethodGet, "/profile/TestUser/follow/", nil)
	req.AddCookie(followerCookie)
	w := do(t, r, req)
	if w.Code != http.StatusFound {
		t.Fatalf("follow: got status %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/profile/TestUser/" {
		t.Errorf("follow: got redirect %q, want the profile", loc)
	}

	// The follower's personalized feed now carries the author's post.
	req = httptest.NewRequest(http.MethodGet, "/follow/", nil)
	req.AddCookie(followerCookie)
	w = do(t, r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("following feed: got status %d", w.Code)
	}
	var page feedPort.Page
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decoding feed: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Text != "Test post" {
		t.Errorf("following feed: got %+v, want the single followed post", page.Items)
	}

	// A user with no edges sees an empty feed.
	req = httptest.NewRequest(http.MethodGet, "/follow/", nil)
	req.AddCookie(notFollowerCookie)
	w = do(t, r, req)
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decoding feed: %v", err)
	}
	if len(page.Items) != 0 {
		t.Errorf("got %d items for a non-follower, want 0", len(page.Items))
	}
}

func TestProfileShowsFollowingFlag(t *testing.T) {
	r := newTestRouter(t)

	signupAndLogin(t, r, "TestUser")
	followerCookie := signupAndLogin(t, r, "Follower")

	req := httptest.NewRequest(http.MethodGet, "/profile/TestUser/follow/", nil)
	req.AddCookie(followerCookie)
	do(t, r, req)

	req = httptest.NewRequest(http.MethodGet, "/profile/TestUser/", nil)
	req.AddCookie(followerCookie)
	w := do(t, r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("profile: got status %d", w.Code)
	}
	var profile feedPort.Profile
	if err := json.Unmarshal(w.Body.Bytes(), &profile); err != nil {
		t.Fatalf("decoding profile: %v", err)
	}
	if profile.Following == nil || !*profile.Following {
		t.Error("profile should report following=true for the follower")
	}
	if profile.FollowerCount != 1 {
		t.Errorf("got %d followers, want 1", profile.FollowerCount)
	}
}

func TestCommentRoute(t *testing.T) {
	r := newTestRouter(t)

	authorCookie := signupAndLogin(t, r, "author")
	postID := createPostHTTP(t, r, authorCookie, "a post")

	body, _ := json.Marshal(map[string]string{"text": "first!"})
	req := httptest.NewRequest(http.MethodPost, "/posts/"+postID+"/comment/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(authorCookie)
	w := do(t, r, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("comment: got status %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/posts/"+postID+"/", nil)
	w = do(t, r, req)
	if !strings.Contains(w.Body.String(), "first!") {
		t.Errorf("detail view is missing the comment: %s", w.Body.String())
	}
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/definitely/not/a/route/", nil)
	if w := do(t, r, req); w.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404", w.Code)
	}
}
