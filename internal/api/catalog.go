package api

import (
	"net/http"

	"github.com/MediBoard/MediBoard/internal/db/controller/resource"
	"github.com/MediBoard/MediBoard/internal/db/models"
	"github.com/MediBoard/MediBoard/internal/router"
)

func (a *API) catalogRoutes() []router.Route {
	res := &Resource[models.CatalogItem, *models.CatalogItem]{
		Path: "/catalog-items",
		Store: resource.New[models.CatalogItem](a.db, resource.Policy{
			Name:           "Catalog item",
			SoftDelete:     true,
			SearchColumns:  []string{"name", "description"},
			CategoryColumn: "category",
			Order:          "sort_order asc, name asc",
			Paginated:      true,
		}),
		CategoryParam: "category",
	}

	return res.routes(a)
}

func (a *API) mcuRoutes() []router.Route {
	res := &Resource[models.MCUPackage, *models.MCUPackage]{
		Path: "/mcu-packages",
		Store: resource.New[models.MCUPackage](a.db, resource.Policy{
			Name:          "MCU package",
			SoftDelete:    true,
			SearchColumns: []string{"name"},
			Order:         "sort_order asc, created_at asc",
		}),
		ID: uuidID,
	}

	res.Extra = []router.Route{
		{Method: http.MethodPut, Match: router.Exact("/mcu-packages/reorder"), Auth: true, Handler: res.reorder},
	}

	return res.routes(a)
}

func (a *API) promoRoutes() []router.Route {
	res := &Resource[models.Promo, *models.Promo]{
		Path: "/promos",
		Store: resource.New[models.Promo](a.db, resource.Policy{
			Name:  "Promo",
			Order: "sort_order asc, created_at asc",
		}),
		ID: uuidID,
	}

	res.Extra = []router.Route{
		{Method: http.MethodPut, Match: router.Exact("/promos/reorder"), Auth: true, Handler: res.reorder},
	}

	return res.routes(a)
}

func (a *API) postRoutes() []router.Route {
	res := &Resource[models.Post, *models.Post]{
		Path: "/posts",
		Store: resource.New[models.Post](a.db, resource.Policy{
			Name:           "Post",
			SoftDelete:     true,
			SearchColumns:  []string{"title", "content"},
			CategoryColumn: "category",
			Order:          "created_at desc, id desc",
			Paginated:      true,
		}),
		CategoryParam: "category",
	}

	return res.routes(a)
}

func (a *API) newsletterRoutes() []router.Route {
	res := &Resource[models.Newsletter, *models.Newsletter]{
		Path: "/newsletters",
		Store: resource.New[models.Newsletter](a.db, resource.Policy{
			Name:             "Newsletter",
			Order:            "year desc, month desc",
			DuplicateMessage: "Newsletter for this period already exists",
		}),
		ID:       uuidID,
		ReadAuth: true,
	}

	return res.routes(a)
}
