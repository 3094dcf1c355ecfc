package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/MediBoard/MediBoard/internal/db/controller/display"
	"github.com/MediBoard/MediBoard/internal/db/controller/popupad"
	"github.com/MediBoard/MediBoard/internal/router"
)

func (a *API) typedSettingRoutes() []router.Route {
	return []router.Route{
		{Method: http.MethodGet, Match: router.Exact("/popup-ad"), Handler: a.getPopupAd},
		{Method: http.MethodPut, Match: router.Exact("/popup-ad"), Auth: true, Handler: a.putPopupAd},
		{Method: http.MethodGet, Match: router.Exact("/display-config"), Handler: a.getDisplayConfig},
		{Method: http.MethodPut, Match: router.Exact("/display-config"), Auth: true, Handler: a.putDisplayConfig},
	}
}

func (a *API) getPopupAd(ctx context.Context, _ *router.Request) (*router.Response, error) {
	var p popupad.Settings
	if err := p.Load(ctx, a.db); err != nil {
		return nil, err
	}

	return router.JSON(http.StatusOK, p)
}

func (a *API) putPopupAd(ctx context.Context, req *router.Request) (*router.Response, error) {
	p := popupad.Defaults()
	if err := req.Decode(&p); err != nil {
		return nil, err
	}

	if err := check(a.validate, &p); err != nil {
		return nil, err
	}

	if err := p.Save(ctx, a.db, a.validate); err != nil {
		if errors.Is(err, popupad.ErrImageRequired) {
			return nil, router.BadRequest("%s", err.Error())
		}

		return nil, err
	}

	return router.JSON(http.StatusOK, p)
}

func (a *API) getDisplayConfig(ctx context.Context, _ *router.Request) (*router.Response, error) {
	var d display.Settings
	if err := d.Load(ctx, a.db); err != nil {
		return nil, err
	}

	return router.JSON(http.StatusOK, d)
}

func (a *API) putDisplayConfig(ctx context.Context, req *router.Request) (*router.Response, error) {
	d := display.Defaults()
	if err := req.Decode(&d); err != nil {
		return nil, err
	}

	if err := check(a.validate, &d); err != nil {
		return nil, err
	}

	if err := d.Save(ctx, a.db, a.validate); err != nil {
		return nil, err
	}

	return router.JSON(http.StatusOK, d)
}
