package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"quill/internal/adapters/httpapi/middleware"
	"quill/internal/core/errs"
	mediaPort "quill/internal/ports/media"
)

type PostController struct{ pc PostUseCase }

func NewPostController(pc PostUseCase) *PostController { return &PostController{pc: pc} }

func (ctl *PostController) Detail(c *gin.Context) {
	detail, err := ctl.pc.GetPost(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Create accepts a multipart form: text (required), group (optional slug),
// image (optional file).
func (ctl *PostController) Create(c *gin.Context) {
	text, groupSlug, image := postForm(c)

	res, err := ctl.pc.CreatePost(c.Request.Context(), middleware.UserID(c), text, groupSlug, image)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// Edit overwrites an existing post. A non-author is not shown an error page:
// they are redirected to the read-only detail view.
func (ctl *PostController) Edit(c *gin.Context) {
	postID := c.Param("post_id")
	text, groupSlug, image := postForm(c)

	res, err := ctl.pc.EditPost(c.Request.Context(), middleware.UserID(c), postID, text, groupSlug, image)
	if errors.Is(err, errs.ErrForbidden) {
		c.Redirect(http.StatusFound, "/posts/"+postID+"/")
		return
	}
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func postForm(c *gin.Context) (text, groupSlug string, image *mediaPort.Upload) {
	text = c.PostForm("text")
	groupSlug = c.PostForm("group")

	if file, err := c.FormFile("image"); err == nil {
		if f, err := file.Open(); err == nil {
			image = &mediaPort.Upload{Filename: file.Filename, Reader: f}
		}
	}
	return text, groupSlug, image
}
