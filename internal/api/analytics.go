package api

import (
	"context"
	"net/http"

	"github.com/MediBoard/MediBoard/internal/db/controller/analytics"
	"github.com/MediBoard/MediBoard/internal/router"
)

func (a *API) analyticsRoutes() []router.Route {
	return []router.Route{
		{Method: http.MethodPost, Match: router.Exact("/analytics/track"), Handler: a.track},
		{Method: http.MethodGet, Match: router.Exact("/analytics/summary"), Auth: true, Handler: a.summary},
	}
}

func (a *API) track(ctx context.Context, req *router.Request) (*router.Response, error) {
	var body struct {
		Event string `json:"event" validate:"required,max=120"`
	}

	if err := req.Decode(&body); err != nil {
		return nil, err
	}

	if err := check(a.validate, &body); err != nil {
		return nil, err
	}

	tracked, err := analytics.Track(ctx, a.db, body.Event, a.now())
	if err != nil {
		return nil, err
	}

	return router.JSON(http.StatusOK, map[string]bool{"tracked": tracked})
}

// summary degrades to empty totals when the counters table is missing.
func (a *API) summary(ctx context.Context, req *router.Request) (*router.Response, error) {
	s, err := analytics.Summarize(ctx, a.db, atoiOr(req.Query.Get("days"), analytics.DefaultDays), a.now())
	if err != nil {
		return nil, err
	}

	return router.JSON(http.StatusOK, s)
}
