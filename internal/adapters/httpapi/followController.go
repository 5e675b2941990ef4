package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quill/internal/adapters/httpapi/middleware"
)

type FollowController struct{ fc FollowUseCase }

func NewFollowController(fc FollowUseCase) *FollowController {
	return &FollowController{fc: fc}
}

// Follow creates the edge and sends the viewer back to the profile they came
// from. Repeat follows and self-follows land on the same redirect.
func (ctl *FollowController) Follow(c *gin.Context) {
	username := c.Param("username")
	if err := ctl.fc.FollowAuthor(c.Request.Context(), middleware.UserID(c), username); err != nil {
		renderError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+username+"/")
}

func (ctl *FollowController) Unfollow(c *gin.Context) {
	username := c.Param("username")
	if err := ctl.fc.UnfollowAuthor(c.Request.Context(), middleware.UserID(c), username); err != nil {
		renderError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+username+"/")
}
