package media

import "io"

// Upload is an incoming image attachment.
type Upload struct {
	Filename string
	Reader   io.Reader
}

// ImageStore persists an upload and returns the relative path it is served
// under.
type ImageStore interface {
	Save(up *Upload) (string, error)
}
