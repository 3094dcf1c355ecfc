package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MediBoard/MediBoard/internal/db/controller/doctor"
	"github.com/MediBoard/MediBoard/internal/db/controller/resource"
	"github.com/MediBoard/MediBoard/internal/db/models"
	"github.com/MediBoard/MediBoard/internal/notify"
)

func createDoctor(t *testing.T, env *testEnv, name, specialty string) models.Doctor {
	t.Helper()

	resp := env.do(call{
		method: http.MethodPost,
		path:   "/doctors",
		body:   map[string]any{"name": name, "specialty": specialty},
		admin:  true,
	})
	require.Equal(t, http.StatusCreated, resp.Status, string(resp.Body))

	return decodeBody[models.Doctor](t, resp)
}

func TestDoctorLifecycle(t *testing.T) {
	t.Parallel()

	env := newEnv(t)

	created := createDoctor(t, env, "Dr. A", "Cardiology")
	require.NotZero(t, created.ID)

	path := fmt.Sprintf("/doctors/%d", created.ID)

	resp := env.do(call{method: http.MethodGet, path: path})
	require.Equal(t, http.StatusOK, resp.Status)

	got := decodeBody[models.Doctor](t, resp)
	assert.Equal(t, "Dr. A", got.Name)
	assert.Equal(t, "Cardiology", got.Specialty)

	resp = env.do(call{method: http.MethodDelete, path: path})
	require.Equal(t, http.StatusUnauthorized, resp.Status)

	resp = env.do(call{method: http.MethodDelete, path: path, admin: true})
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "Doctor deleted", message(t, resp))

	resp = env.do(call{method: http.MethodGet, path: path})
	require.Equal(t, http.StatusNotFound, resp.Status)
	assert.Equal(t, "Doctor not found", message(t, resp))
}

func TestUpdateByPathAndQueryAreEquivalent(t *testing.T) {
	t.Parallel()

	env := newEnv(t)
	d := createDoctor(t, env, "Dr. A", "Cardiology")
	id := fmt.Sprint(d.ID)

	resp := env.do(call{
		method: http.MethodPut,
		path:   "/doctors/" + id,
		body:   map[string]any{"name": "Dr. B", "specialty": "Neurology"},
		admin:  true,
	})
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))
	byPath := decodeBody[models.Doctor](t, resp)

	resp = env.do(call{
		method: http.MethodPut,
		path:   "/doctors",
		query:  url.Values{"id": {id}},
		body:   map[string]any{"name": "Dr. B", "specialty": "Neurology"},
		admin:  true,
	})
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))
	byQuery := decodeBody[models.Doctor](t, resp)

	assert.Equal(t, byPath.ID, byQuery.ID)
	assert.Equal(t, byPath.Name, byQuery.Name)
	assert.Equal(t, byPath.Specialty, byQuery.Specialty)
	assert.Equal(t, d.CreatedAt.Unix(), byQuery.CreatedAt.Unix())

	resp = env.do(call{method: http.MethodPut, path: "/doctors", body: map[string]any{"name": "x", "specialty": "y"}, admin: true})
	require.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "Missing required parameter: id", message(t, resp))

	resp = env.do(call{method: http.MethodDelete, path: "/doctors", query: url.Values{"id": {"abc"}}, admin: true})
	require.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "Invalid id: abc", message(t, resp))
}

func TestDoctorValidation(t *testing.T) {
	t.Parallel()

	env := newEnv(t)

	tests := []struct {
		name string
		body any
		msg  string
	}{
		{name: "missing name", body: map[string]any{"specialty": "Cardiology"}, msg: "name is required"},
		{name: "missing specialty", body: map[string]any{"name": "Dr. A"}, msg: "specialty is required"},
		{name: "empty body", body: "", msg: "Request body is required"},
		{name: "not json", body: "name=Dr. A", msg: "Invalid JSON body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.do(call{method: http.MethodPost, path: "/doctors", body: tt.body, admin: true})
			require.Equal(t, http.StatusBadRequest, resp.Status)
			assert.Equal(t, tt.msg, message(t, resp))
		})
	}
}

func TestDoctorsGroupedAndSearch(t *testing.T) {
	t.Parallel()

	env := newEnv(t)
	createDoctor(t, env, "Dr. Sari", "Pediatrics")
	createDoctor(t, env, "Dr. Andi", "Cardiology")
	createDoctor(t, env, "Dr. Budi", "Cardiology")

	resp := env.do(call{method: http.MethodGet, path: "/doctors/grouped"})
	require.Equal(t, http.StatusOK, resp.Status)

	groups := decodeBody[[]doctor.Group](t, resp)
	require.Len(t, groups, 2)
	assert.Equal(t, "Cardiology", groups[0].Specialty)
	assert.Len(t, groups[0].Doctors, 2)

	resp = env.do(call{method: http.MethodGet, path: "/doctors", query: url.Values{"search": {"SARI"}}})
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Len(t, decodeBody[[]models.Doctor](t, resp), 1)

	resp = env.do(call{method: http.MethodGet, path: "/doctors", query: url.Values{"specialty": {"Cardiology"}}})
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Len(t, decodeBody[[]models.Doctor](t, resp), 2)
}

func TestLeaves(t *testing.T) {
	t.Parallel()

	env := newEnv(t)
	d := createDoctor(t, env, "Dr. Andi", "Cardiology")

	resp := env.do(call{
		method: http.MethodPost,
		path:   "/leaves",
		body:   map[string]any{"doctor_id": d.ID, "start_date": "2024-03-12", "end_date": "2024-03-10"},
		admin:  true,
	})
	require.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "end_date must not be before start_date", message(t, resp))

	resp = env.do(call{
		method: http.MethodPost,
		path:   "/leaves",
		body:   map[string]any{"doctor_id": 999, "start_date": "2024-03-10", "end_date": "2024-03-12"},
		admin:  true,
	})
	require.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "doctor_id does not match any doctor", message(t, resp))

	resp = env.do(call{
		method: http.MethodPost,
		path:   "/leaves",
		body:   map[string]any{"doctor_id": d.ID, "start_date": "10-03-2024", "end_date": "2024-03-12"},
		admin:  true,
	})
	require.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "start_date must be a date in YYYY-MM-DD format", message(t, resp))

	resp = env.do(call{
		method: http.MethodPost,
		path:   "/leaves",
		body:   map[string]any{"doctor_id": d.ID, "start_date": "2024-03-09", "end_date": "2024-03-12", "reason": "Seminar"},
		admin:  true,
	})
	require.Equal(t, http.StatusCreated, resp.Status, string(resp.Body))

	select {
	case alert := <-env.alerts:
		assert.Equal(t, "Dr. Andi is on leave from 2024-03-09 to 2024-03-12", alert.Content)
	case <-time.After(5 * time.Second):
		t.Fatal("leave notification was not sent")
	}

	resp = env.do(call{method: http.MethodGet, path: "/leaves", query: url.Values{"doctor_id": {fmt.Sprint(d.ID)}, "upcoming": {"true"}}})
	require.Equal(t, http.StatusOK, resp.Status)

	leaves := decodeBody[[]models.Leave](t, resp)
	require.Len(t, leaves, 1)
	require.NotNil(t, leaves[0].Doctor)
	assert.Equal(t, "Dr. Andi", leaves[0].Doctor.Name)

	resp = env.do(call{method: http.MethodGet, path: "/doctors/on-leave"})
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Len(t, decodeBody[[]models.Doctor](t, resp), 1)

	resp = env.do(call{method: http.MethodGet, path: "/doctors/on-leave", query: url.Values{"date": {"2024-04-01"}}})
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Empty(t, decodeBody[[]models.Doctor](t, resp))

	resp = env.do(call{method: http.MethodGet, path: "/leaves", query: url.Values{"doctor_id": {"x"}}})
	require.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestDeleteDoctorRemovesLeaves(t *testing.T) {
	t.Parallel()

	env := newEnv(t)
	d := createDoctor(t, env, "Dr. Rina", "Neurology")

	resp := env.do(call{
		method: http.MethodPost,
		path:   "/leaves",
		body:   map[string]any{"doctor_id": d.ID, "start_date": "2024-03-11", "end_date": "2024-03-13"},
		admin:  true,
	})
	require.Equal(t, http.StatusCreated, resp.Status, string(resp.Body))
	<-env.alerts

	resp = env.do(call{method: http.MethodDelete, path: fmt.Sprintf("/doctors/%d", d.ID), admin: true})
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))

	resp = env.do(call{method: http.MethodGet, path: "/leaves"})
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Empty(t, decodeBody[[]models.Leave](t, resp))

	resp = env.do(call{method: http.MethodGet, path: "/doctors/on-leave", query: url.Values{"date": {"2024-03-12"}}})
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Empty(t, decodeBody[[]models.Doctor](t, resp))
}

type failingNotifier struct {
	attempts chan notify.Alert
}

func (f failingNotifier) Send(_ context.Context, a notify.Alert) error {
	f.attempts <- a
	return errors.New("push provider unavailable")
}

func TestLeaveCreatedWhenNotificationFails(t *testing.T) {
	t.Parallel()

	notifier := failingNotifier{attempts: make(chan notify.Alert, 1)}
	env := newEnvWithNotifier(t, notifier)
	d := createDoctor(t, env, "Dr. Yusuf", "Orthopedics")

	resp := env.do(call{
		method: http.MethodPost,
		path:   "/leaves",
		body:   map[string]any{"doctor_id": d.ID, "start_date": "2024-03-10", "end_date": "2024-03-11", "reason": "Conference"},
		admin:  true,
	})
	require.Equal(t, http.StatusCreated, resp.Status, string(resp.Body))

	created := decodeBody[models.Leave](t, resp)
	assert.Equal(t, d.ID, created.DoctorID)

	select {
	case alert := <-notifier.attempts:
		assert.Equal(t, "Dr. Yusuf is on leave from 2024-03-10 to 2024-03-11", alert.Content)
	case <-time.After(5 * time.Second):
		t.Fatal("leave notification was not attempted")
	}

	var count int64
	require.NoError(t, env.db.Model(&models.Leave{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	resp = env.do(call{method: http.MethodGet, path: "/leaves"})
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Len(t, decodeBody[[]models.Leave](t, resp), 1)
}

func TestCatalogSoftDelete(t *testing.T) {
	t.Parallel()

	env := newEnv(t)

	resp := env.do(call{
		method: http.MethodPost,
		path:   "/catalog-items",
		body:   map[string]any{"name": "Vitamin C", "category": "Pharmacy", "price": 15000},
		admin:  true,
	})
	require.Equal(t, http.StatusCreated, resp.Status, string(resp.Body))

	item := decodeBody[models.CatalogItem](t, resp)
	assert.True(t, item.IsActive)

	path := fmt.Sprintf("/catalog-items/%d", item.ID)

	resp = env.do(call{method: http.MethodDelete, path: path, admin: true})
	require.Equal(t, http.StatusOK, resp.Status)

	page := decodeBody[resource.Page[models.CatalogItem]](t, env.do(call{method: http.MethodGet, path: "/catalog-items"}))
	assert.Empty(t, page.Items)
	assert.Zero(t, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, resource.DefaultLimit, page.Limit)

	all := decodeBody[resource.Page[models.CatalogItem]](t, env.do(call{method: http.MethodGet, path: "/catalog-items/all"}))
	require.Len(t, all.Items, 1)
	assert.False(t, all.Items[0].IsActive)

	resp = env.do(call{method: http.MethodGet, path: path})
	require.Equal(t, http.StatusOK, resp.Status)
	assert.False(t, decodeBody[models.CatalogItem](t, resp).IsActive)
}

func TestPromoHardDeleteAndReorder(t *testing.T) {
	t.Parallel()

	env := newEnv(t)

	ids := make([]string, 0, 3)
	for _, title := range []string{"first", "second", "third"} {
		resp := env.do(call{
			method: http.MethodPost,
			path:   "/promos",
			body:   map[string]any{"title": title, "image_url": "https://img.example.com/" + title + ".png"},
			admin:  true,
		})
		require.Equal(t, http.StatusCreated, resp.Status, string(resp.Body))
		ids = append(ids, decodeBody[models.Promo](t, resp).ID.String())
	}

	resp := env.do(call{
		method: http.MethodPut,
		path:   "/promos/reorder",
		body:   map[string]any{"ids": []string{ids[2], ids[0], ids[1]}},
		admin:  true,
	})
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))
	assert.Equal(t, "Order updated", message(t, resp))

	promos := decodeBody[[]models.Promo](t, env.do(call{method: http.MethodGet, path: "/promos"}))
	require.Len(t, promos, 3)
	assert.Equal(t, "third", promos[0].Title)
	assert.Equal(t, "first", promos[1].Title)
	assert.Equal(t, "second", promos[2].Title)

	resp = env.do(call{
		method: http.MethodPut,
		path:   "/promos/reorder",
		body:   map[string]any{"ids": []string{ids[1], "00000000-0000-0000-0000-000000000000"}},
		admin:  true,
	})
	require.Equal(t, http.StatusNotFound, resp.Status)

	promos = decodeBody[[]models.Promo](t, env.do(call{method: http.MethodGet, path: "/promos"}))
	assert.Equal(t, "third", promos[0].Title, "failed reorder must roll back")

	resp = env.do(call{method: http.MethodDelete, path: "/promos/" + ids[0], admin: true})
	require.Equal(t, http.StatusOK, resp.Status)

	resp = env.do(call{method: http.MethodGet, path: "/promos/" + ids[0]})
	assert.Equal(t, http.StatusNotFound, resp.Status)

	resp = env.do(call{method: http.MethodDelete, path: "/promos/" + ids[0], admin: true})
	assert.Equal(t, http.StatusNotFound, resp.Status)

	all := decodeBody[[]models.Promo](t, env.do(call{method: http.MethodGet, path: "/promos/all"}))
	assert.Len(t, all, 2)
}

func TestNewsletters(t *testing.T) {
	t.Parallel()

	env := newEnv(t)
	body := map[string]any{"year": 2024, "month": 3, "title": "March", "file_url": "https://files.example.com/march.pdf"}

	resp := env.do(call{method: http.MethodGet, path: "/newsletters"})
	require.Equal(t, http.StatusUnauthorized, resp.Status)

	resp = env.do(call{method: http.MethodPost, path: "/newsletters", body: body, admin: true})
	require.Equal(t, http.StatusCreated, resp.Status, string(resp.Body))

	resp = env.do(call{method: http.MethodPost, path: "/newsletters", body: body, admin: true})
	require.Equal(t, http.StatusConflict, resp.Status)
	assert.Equal(t, "Newsletter for this period already exists", message(t, resp))

	body["month"] = 13
	resp = env.do(call{method: http.MethodPost, path: "/newsletters", body: body, admin: true})
	require.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "month must be at most 12", message(t, resp))

	resp = env.do(call{method: http.MethodGet, path: "/newsletters", admin: true})
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Len(t, decodeBody[[]models.Newsletter](t, resp), 1)

	resp = env.do(call{method: http.MethodGet, path: "/newsletters/not-a-uuid", admin: true})
	assert.Equal(t, http.StatusNotFound, resp.Status, "non uuid ids do not match the route")
}

func TestPostsPagination(t *testing.T) {
	t.Parallel()

	env := newEnv(t)

	for i := range 5 {
		resp := env.do(call{
			method: http.MethodPost,
			path:   "/posts",
			body:   map[string]any{"title": fmt.Sprintf("Post %d", i), "content": "..."},
			admin:  true,
		})
		require.Equal(t, http.StatusCreated, resp.Status, string(resp.Body))
	}

	page := decodeBody[resource.Page[models.Post]](t, env.do(call{
		method: http.MethodGet,
		path:   "/posts",
		query:  url.Values{"page": {"2"}, "limit": {"2"}},
	}))
	assert.EqualValues(t, 5, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Len(t, page.Items, 2)

	resp := env.do(call{
		method: http.MethodGet,
		path:   "/posts",
		query:  url.Values{"page": {"4611686018427387905"}, "limit": {"100"}},
	})
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))

	page = decodeBody[resource.Page[models.Post]](t, resp)
	assert.EqualValues(t, 5, page.Total)
	assert.Equal(t, resource.MaxPage, page.Page)
	assert.Empty(t, page.Items)
}
