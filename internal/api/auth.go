package api

import (
	"context"
	"net/http"

	"github.com/MediBoard/MediBoard/internal/router"
)

func (a *API) authRoutes() []router.Route {
	return []router.Route{
		{Method: http.MethodPost, Match: router.Exact("/auth/login"), Handler: a.login},
		{Method: http.MethodPost, Match: router.Exact("/auth/logout"), Handler: a.logout},
		{Method: http.MethodGet, Match: router.Exact("/auth/check"), Auth: true, Handler: a.authCheck},
	}
}

func (a *API) login(_ context.Context, req *router.Request) (*router.Response, error) {
	var body struct {
		Password string `json:"password"`
	}

	if err := req.Decode(&body); err != nil {
		return nil, err
	}

	if body.Password == "" {
		return nil, router.BadRequest("password is required")
	}

	cookie, err := a.gate.Login(body.Password)
	if err != nil {
		return nil, err
	}

	resp, _ := router.JSON(http.StatusOK, map[string]bool{"authenticated": true})
	resp.Header.Add("Set-Cookie", cookie)

	return resp, nil
}

func (a *API) logout(context.Context, *router.Request) (*router.Response, error) {
	resp, _ := router.JSON(http.StatusOK, map[string]bool{"authenticated": false})
	resp.Header.Add("Set-Cookie", a.gate.Logout())

	return resp, nil
}

// authCheck only runs when the gate let the request through.
func (a *API) authCheck(context.Context, *router.Request) (*router.Response, error) {
	return router.JSON(http.StatusOK, map[string]bool{"authenticated": true})
}
