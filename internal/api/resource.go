package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MediBoard/MediBoard/internal/db/controller/resource"
	"github.com/MediBoard/MediBoard/internal/router"
)

type idKind int

const (
	numericID idKind = iota
	uuidID
)

// Resource exposes a resource.Store under Path with the shared CRUD contract:
//
//	GET    {Path}          active records (paginated when the policy says so)
//	GET    {Path}/all      every record including soft deleted ones
//	GET    {Path}/:id      one record, active or not
//	POST   {Path}          create, 201
//	PUT    {Path}[/:id]    full overwrite, id from the path or ?id=
//	DELETE {Path}[/:id]    hard or soft delete per policy
//
// Extra routes are registered ahead of the id pattern so they are never
// taken for an id.
type Resource[T any, PT resource.Record[T]] struct {
	Path     string
	Store    *resource.Store[T, PT]
	ID       idKind
	ReadAuth bool
	// CategoryParam is the query parameter mapped to the policy category column.
	CategoryParam string
	// Scope adds entity filters from the query string.
	Scope func(req *router.Request) (func(*gorm.DB) *gorm.DB, error)
	// Check runs after field validation on create and update.
	Check func(ctx context.Context, rec *T) error
	// AfterCreate runs once the new record is committed.
	AfterCreate func(rec *T)
	Extra       []router.Route
}

func (r *Resource[T, PT]) routes(a *API) []router.Route {
	var idPattern string

	switch r.ID {
	case uuidID:
		idPattern = r.Path + "/" + router.UUIDID
	default:
		idPattern = r.Path + "/" + router.NumericID
	}

	routes := append([]router.Route{}, r.Extra...)

	return append(routes,
		router.Route{Method: http.MethodGet, Match: router.Exact(r.Path + "/all"), Auth: r.ReadAuth, Handler: r.listAll},
		router.Route{Method: http.MethodGet, Match: router.Exact(r.Path), Auth: r.ReadAuth, Handler: r.list},
		router.Route{Method: http.MethodGet, Match: router.Pattern(idPattern), Auth: r.ReadAuth, NeedsID: true, Handler: r.get},
		router.Route{Method: http.MethodPost, Match: router.Exact(r.Path), Auth: true, Handler: r.create(a)},
		router.Route{Method: http.MethodPut, Match: router.Pattern(idPattern), Auth: true, NeedsID: true, Handler: r.update(a)},
		router.Route{Method: http.MethodPut, Match: router.Exact(r.Path), Auth: true, NeedsID: true, Handler: r.update(a)},
		router.Route{Method: http.MethodDelete, Match: router.Pattern(idPattern), Auth: true, NeedsID: true, Handler: r.delete},
		router.Route{Method: http.MethodDelete, Match: router.Exact(r.Path), Auth: true, NeedsID: true, Handler: r.delete},
	)
}

func (r *Resource[T, PT]) key(raw string) (any, error) {
	return parseKey(r.ID, raw)
}

func parseKey(kind idKind, raw string) (any, error) {
	if kind == uuidID {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, router.BadRequest("Invalid id: %s", raw)
		}

		return id, nil
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, router.BadRequest("Invalid id: %s", raw)
	}

	return uint(id), nil
}

func (r *Resource[T, PT]) query(req *router.Request) (resource.Query, error) {
	q := resource.Query{
		Search: req.Query.Get("search"),
		Page:   atoiOr(req.Query.Get("page"), 1),
		Limit:  atoiOr(req.Query.Get("limit"), resource.DefaultLimit),
	}

	if r.CategoryParam != "" {
		q.Category = req.Query.Get(r.CategoryParam)
	}

	if r.Scope != nil {
		scope, err := r.Scope(req)
		if err != nil {
			return q, err
		}

		q.Scope = scope
	}

	return q, nil
}

func (r *Resource[T, PT]) list(ctx context.Context, req *router.Request) (*router.Response, error) {
	return r.listWith(ctx, req, false)
}

func (r *Resource[T, PT]) listAll(ctx context.Context, req *router.Request) (*router.Response, error) {
	return r.listWith(ctx, req, true)
}

func (r *Resource[T, PT]) listWith(ctx context.Context, req *router.Request, all bool) (*router.Response, error) {
	q, err := r.query(req)
	if err != nil {
		return nil, err
	}

	q.IncludeInactive = all

	page, err := r.Store.List(ctx, q)
	if err != nil {
		return nil, err
	}

	if r.Store.Policy().Paginated {
		return router.JSON(http.StatusOK, page)
	}

	return router.JSON(http.StatusOK, page.Items)
}

func (r *Resource[T, PT]) get(ctx context.Context, req *router.Request) (*router.Response, error) {
	id, err := r.key(req.ID)
	if err != nil {
		return nil, err
	}

	rec, err := r.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return router.JSON(http.StatusOK, rec)
}

func (r *Resource[T, PT]) decode(ctx context.Context, a *API, req *router.Request) (*T, error) {
	rec := new(T)
	if err := req.Decode(rec); err != nil {
		return nil, err
	}

	if err := check(a.validate, rec); err != nil {
		return nil, err
	}

	if r.Check != nil {
		if err := r.Check(ctx, rec); err != nil {
			return nil, err
		}
	}

	return rec, nil
}

func (r *Resource[T, PT]) create(a *API) router.Handler {
	return func(ctx context.Context, req *router.Request) (*router.Response, error) {
		rec, err := r.decode(ctx, a, req)
		if err != nil {
			return nil, err
		}

		created, err := r.Store.Create(ctx, rec)
		if err != nil {
			return nil, err
		}

		if r.AfterCreate != nil {
			r.AfterCreate(created)
		}

		return router.JSON(http.StatusCreated, created)
	}
}

func (r *Resource[T, PT]) update(a *API) router.Handler {
	return func(ctx context.Context, req *router.Request) (*router.Response, error) {
		id, err := r.key(req.ID)
		if err != nil {
			return nil, err
		}

		rec, err := r.decode(ctx, a, req)
		if err != nil {
			return nil, err
		}

		updated, err := r.Store.Update(ctx, id, rec)
		if err != nil {
			return nil, err
		}

		return router.JSON(http.StatusOK, updated)
	}
}

func (r *Resource[T, PT]) delete(ctx context.Context, req *router.Request) (*router.Response, error) {
	id, err := r.key(req.ID)
	if err != nil {
		return nil, err
	}

	if err = r.Store.Delete(ctx, id); err != nil {
		return nil, err
	}

	return router.JSON(http.StatusOK, map[string]string{"message": r.Store.Policy().Name + " deleted"})
}

// reorder renumbers sort_order from the position of each id in {"ids":[...]}.
func (r *Resource[T, PT]) reorder(ctx context.Context, req *router.Request) (*router.Response, error) {
	var body struct {
		IDs []any `json:"ids"`
	}

	if err := req.Decode(&body); err != nil {
		return nil, err
	}

	if len(body.IDs) == 0 {
		return nil, router.BadRequest("ids is required")
	}

	ids := make([]any, 0, len(body.IDs))
	for _, raw := range body.IDs {
		id, err := r.key(fmt.Sprint(raw))
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	if err := r.Store.Reorder(ctx, ids); err != nil {
		return nil, err
	}

	return router.JSON(http.StatusOK, map[string]any{"message": "Order updated", "count": len(ids)})
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}

	return n
}
