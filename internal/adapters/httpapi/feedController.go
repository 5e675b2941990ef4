package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quill/internal/adapters/httpapi/middleware"
)

type FeedController struct{ fc FeedUseCase }

func NewFeedController(fc FeedUseCase) *FeedController { return &FeedController{fc: fc} }

func (ctl *FeedController) Index(c *gin.Context) {
	page, err := ctl.fc.GlobalFeed(c.Request.Context(), pageParam(c))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (ctl *FeedController) GroupPosts(c *gin.Context) {
	page, err := ctl.fc.GroupFeed(c.Request.Context(), c.Param("slug"), pageParam(c))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (ctl *FeedController) Profile(c *gin.Context) {
	profile, err := ctl.fc.ProfileFeed(c.Request.Context(), c.Param("username"), middleware.UserID(c), pageParam(c))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (ctl *FeedController) Following(c *gin.Context) {
	page, err := ctl.fc.FollowingFeed(c.Request.Context(), middleware.UserID(c), pageParam(c))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// pageParam reads ?page=N; anything unparsable falls back to page 1 and
// out-of-range values are clamped downstream.
func pageParam(c *gin.Context) int {
	n, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return n
}
