package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MediBoard/MediBoard/internal/auth"
)

const (
	contentTypeJSON = "application/json"
	headerOrigin    = "Origin"
)

type (
	// Request is a transport neutral HTTP request.
	Request struct {
		Method   string
		Path     string
		Query    url.Values
		Header   http.Header
		Body     []byte
		RemoteIP string

		// Params holds values captured by the matcher.
		Params map[string]string
		// ID is set for routes with NeedsID.
		ID string
	}

	// Response is a transport neutral HTTP response.
	Response struct {
		Status int
		Header http.Header
		Body   []byte
	}

	// Handler serves one route.
	Handler func(ctx context.Context, req *Request) (*Response, error)

	// Route is one entry of the route table.
	Route struct {
		// Method is matched exactly; empty matches any method.
		Method  string
		Match   Matcher
		Auth    bool
		NeedsID bool
		Handler Handler
	}

	// Checker validates the raw Cookie header.
	Checker interface {
		Check(cookieHeader string) error
	}

	// Options configure a Router.
	Options struct {
		AllowedOrigins []string
		PathPrefixes   []string
		Timeout        time.Duration
		Gate           Checker
	}

	// Router holds the route table.
	Router struct {
		opts   Options
		routes []Route
	}
)

// New creates an empty router.
func New(opts Options) *Router {
	return &Router{opts: opts}
}

// Handle appends routes to the table.
func (r *Router) Handle(routes ...Route) {
	r.routes = append(r.routes, routes...)
}

// Routes returns the route table in evaluation order.
func (r *Router) Routes() []Route {
	return slices.Clone(r.routes)
}

// Dispatch serves req. It never fails; every error is mapped to a response.
func (r *Router) Dispatch(ctx context.Context, req Request) Response {
	if req.Header == nil {
		req.Header = http.Header{}
	}

	if req.Query == nil {
		req.Query = url.Values{}
	}

	req.Method = strings.ToUpper(req.Method)
	req.Path = r.normalize(req.Path)

	resp := r.dispatch(ctx, &req)
	r.applyCORS(req.Header.Get(headerOrigin), resp.Header)

	return resp
}

func (r *Router) dispatch(ctx context.Context, req *Request) Response {
	if req.Method == http.MethodOptions {
		return Response{Status: http.StatusOK, Header: http.Header{"Content-Type": {contentTypeJSON}}}
	}

	route, params, ok := r.find(req.Method, req.Path)
	if !ok {
		return JSONResponse(http.StatusNotFound, map[string]string{
			"message": "Route not found",
			"path":    req.Path,
			"method":  req.Method,
		})
	}

	req.Params = params

	if route.Auth {
		if r.opts.Gate == nil {
			return r.fail(req, auth.ErrUnauthorized)
		}

		if err := r.opts.Gate.Check(req.Header.Get("Cookie")); err != nil {
			return r.fail(req, err)
		}
	}

	if route.NeedsID {
		req.ID = params["id"]
		if req.ID == "" {
			req.ID = req.Query.Get("id")
		}

		if req.ID == "" {
			return r.fail(req, BadRequest("Missing required parameter: id"))
		}
	}

	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)

		defer cancel()
	}

	resp, err := route.Handler(ctx, req)
	if err != nil {
		return r.fail(req, err)
	}

	if resp == nil {
		return Response{Status: http.StatusNoContent, Header: http.Header{"Content-Type": {contentTypeJSON}}}
	}

	if resp.Header == nil {
		resp.Header = http.Header{}
	}

	return *resp
}

func (r *Router) find(method, path string) (Route, map[string]string, bool) {
	for _, route := range r.routes {
		if route.Method != "" && route.Method != method {
			continue
		}

		if params, ok := route.Match.Match(path); ok {
			return route, params, true
		}
	}

	return Route{}, nil, false
}

// fail maps err to the error taxonomy. Unknown errors are logged, never echoed.
func (r *Router) fail(req *Request, err error) Response {
	var (
		routerErr *Error
		coded     StatusCoder
	)

	switch {
	case errors.As(err, &routerErr):
		return JSONResponse(routerErr.Status, map[string]string{"message": routerErr.Message})
	case errors.Is(err, auth.ErrUnauthorized):
		return JSONResponse(http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
	case errors.As(err, &coded):
		return JSONResponse(coded.StatusCode(), map[string]string{"message": coded.Error()})
	}

	log.Error().Err(err).
		Str("method", req.Method).
		Str("path", req.Path).
		Msg("request failed")

	return JSONResponse(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
}

func (r *Router) normalize(path string) string {
	for _, p := range r.opts.PathPrefixes {
		p = strings.TrimSuffix(p, "/")
		if p == "" {
			continue
		}

		if path == p {
			path = "/"

			break
		}

		if rest, ok := strings.CutPrefix(path, p+"/"); ok {
			path = "/" + rest

			break
		}
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}

	return path
}

func (r *Router) applyCORS(origin string, h http.Header) {
	if origin != "" && slices.Contains(r.opts.AllowedOrigins, origin) {
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Add("Vary", headerOrigin)
	} else {
		h.Set("Access-Control-Allow-Origin", "*")
	}

	h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Cookie")
}

// JSONResponse encodes v as a JSON response.
func JSONResponse(status int, v any) Response {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode response")

		status = http.StatusInternalServerError
		body = []byte(`{"message":"Internal server error"}`)
	}

	return Response{
		Status: status,
		Header: http.Header{"Content-Type": {contentTypeJSON}},
		Body:   body,
	}
}

// JSON is JSONResponse for handlers.
func JSON(status int, v any) (*Response, error) {
	resp := JSONResponse(status, v)

	return &resp, nil
}

// Blob returns a non JSON body such as a spreadsheet download.
func Blob(status int, contentType, filename string, body []byte) (*Response, error) {
	h := http.Header{"Content-Type": {contentType}}
	if filename != "" {
		h.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	}

	return &Response{Status: status, Header: h, Body: body}, nil
}

// Decode unmarshals the request body into v. Empty and malformed bodies are bad requests.
func (req *Request) Decode(v any) error {
	if len(req.Body) == 0 {
		return BadRequest("Request body is required")
	}

	if err := json.Unmarshal(req.Body, v); err != nil {
		return BadRequest("Invalid JSON body")
	}

	return nil
}
