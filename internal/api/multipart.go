package api

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"github.com/MediBoard/MediBoard/internal/router"
)

var errFileTooLarge = errors.New("file too large")

// formFile returns the named file part of a multipart body.
// maxBytes <= 0 means no limit.
func formFile(req *router.Request, field string, maxBytes int) (string, []byte, error) {
	mediaType, params, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return "", nil, router.BadRequest("Content-Type must be multipart/form-data")
	}

	mr := multipart.NewReader(bytes.NewReader(req.Body), params["boundary"])

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return "", nil, router.BadRequest("%s is required", field)
		}

		if err != nil {
			return "", nil, router.BadRequest("Invalid multipart body")
		}

		if part.FormName() != field {
			continue
		}

		var r io.Reader = part
		if maxBytes > 0 {
			r = io.LimitReader(part, int64(maxBytes)+1)
		}

		data, err := io.ReadAll(r)
		if err != nil {
			return "", nil, router.BadRequest("Invalid multipart body")
		}

		if maxBytes > 0 && len(data) > maxBytes {
			return "", nil, errFileTooLarge
		}

		return part.FileName(), data, nil
	}
}
