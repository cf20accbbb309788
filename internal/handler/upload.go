package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"community-feed-api/internal/dto"
	"community-feed-api/internal/service"
)

// imageField is the multipart field carrying an uploaded image
const imageField = "image"

// maxMultipartMemory bounds the in-memory part of a parsed multipart body
const maxMultipartMemory = service.MaxImageSize + 1<<20

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// formImage opens the optional image part of a multipart request.
// It returns nil when the field is absent; close must be called otherwise.
func formImage(c *gin.Context) (upload *dto.FileUpload, closeFn func(), err error) {
	fh, err := c.FormFile(imageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &dto.FileUpload{
		Reader:      f,
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	}, func() { _ = f.Close() }, nil
}
