package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MediBoard/MediBoard/internal/db/controller/resource"
	"github.com/MediBoard/MediBoard/internal/db/models"
	"github.com/MediBoard/MediBoard/internal/router"
	"github.com/MediBoard/MediBoard/internal/spreadsheet"
)

type radiologyHandler struct {
	api   *API
	store *resource.Store[models.RadiologyPrice, *models.RadiologyPrice]
}

func (a *API) radiologyRoutes() []router.Route {
	h := &radiologyHandler{
		api: a,
		store: resource.New[models.RadiologyPrice](a.db, resource.Policy{
			Name:           "Radiology price",
			SoftDelete:     true,
			SearchColumns:  []string{"name", "notes"},
			CategoryColumn: "category",
			Order:          "category asc, name asc",
		}),
	}

	res := &Resource[models.RadiologyPrice, *models.RadiologyPrice]{
		Path:          "/radiology-prices",
		Store:         h.store,
		CategoryParam: "category",
		Extra: []router.Route{
			{Method: http.MethodPost, Match: router.Exact("/radiology-prices/batch"), Auth: true, Handler: h.batch},
			{Method: http.MethodPost, Match: router.Exact("/radiology-prices/import"), Auth: true, Handler: h.importSheet},
			{Method: http.MethodGet, Match: router.Exact("/radiology-prices/export"), Handler: h.exportSheet},
		},
	}

	return res.routes(a)
}

// batch inserts {items, replace} in one transaction.
func (h *radiologyHandler) batch(ctx context.Context, req *router.Request) (*router.Response, error) {
	var body struct {
		Items   []models.RadiologyPrice `json:"items"`
		Replace bool                    `json:"replace"`
	}

	if err := req.Decode(&body); err != nil {
		return nil, err
	}

	return h.save(ctx, body.Items, body.Replace)
}

// importSheet reads an xlsx upload, either as the multipart field "file"
// or as the raw request body. ?replace=true replaces the current list.
func (h *radiologyHandler) importSheet(ctx context.Context, req *router.Request) (*router.Response, error) {
	data := req.Body

	if strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/") {
		var err error
		if _, data, err = formFile(req, "file", h.api.uploader.MaxBytes()); err != nil {
			if errors.Is(err, errFileTooLarge) {
				return nil, router.BadRequest("File too large")
			}

			return nil, err
		}
	}

	if len(data) == 0 {
		return nil, router.BadRequest("file is required")
	}

	items, err := spreadsheet.ReadPrices(data)
	if err != nil {
		var rowErr *spreadsheet.RowError
		if errors.As(err, &rowErr) || errors.Is(err, spreadsheet.ErrMissingColumn) {
			return nil, router.BadRequest("%s", err.Error())
		}

		return nil, router.BadRequest("Invalid spreadsheet")
	}

	return h.save(ctx, items, req.Query.Get("replace") == "true")
}

func (h *radiologyHandler) save(ctx context.Context, items []models.RadiologyPrice, replace bool) (*router.Response, error) {
	if len(items) == 0 {
		return nil, router.BadRequest("items is required")
	}

	for i := range items {
		if err := check(h.api.validate, &items[i]); err != nil {
			var rerr *router.Error
			if errors.As(err, &rerr) {
				return nil, router.BadRequest("items[%d]: %s", i, rerr.Message)
			}

			return nil, err
		}
	}

	created, err := h.store.CreateMany(ctx, items, replace)
	if err != nil {
		return nil, err
	}

	return router.JSON(http.StatusCreated, map[string]any{"count": len(created), "items": created})
}

func (h *radiologyHandler) exportSheet(ctx context.Context, req *router.Request) (*router.Response, error) {
	page, err := h.store.List(ctx, resource.Query{
		Category:        req.Query.Get("category"),
		IncludeInactive: req.Query.Get("all") == "true",
	})
	if err != nil {
		return nil, err
	}

	data, err := spreadsheet.WritePrices(page.Items)
	if err != nil {
		return nil, fmt.Errorf("render price list: %w", err)
	}

	return router.Blob(http.StatusOK, spreadsheet.ContentType, "radiology-prices.xlsx", data)
}
