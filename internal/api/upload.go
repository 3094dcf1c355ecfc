package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/MediBoard/MediBoard/internal/router"
	"github.com/MediBoard/MediBoard/internal/upload"
)

func (a *API) uploadRoutes() []router.Route {
	return []router.Route{
		{Method: http.MethodPost, Match: router.Exact("/upload"), Auth: true, Handler: a.upload},
		{Match: router.Exact("/upload"), Handler: methodNotAllowed},
	}
}

func methodNotAllowed(context.Context, *router.Request) (*router.Response, error) {
	return nil, router.MethodNotAllowed()
}

// upload forwards the multipart field "file" to the image provider.
func (a *API) upload(ctx context.Context, req *router.Request) (*router.Response, error) {
	name, data, err := formFile(req, "file", a.uploader.MaxBytes())
	if err != nil {
		if errors.Is(err, errFileTooLarge) {
			return nil, router.BadRequest("File too large")
		}

		return nil, err
	}

	res, err := a.uploader.Upload(ctx, name, data)
	if err != nil {
		if errors.Is(err, upload.ErrEmptyFile) {
			return nil, router.BadRequest("file is required")
		}

		return nil, err
	}

	return router.JSON(http.StatusOK, res)
}
