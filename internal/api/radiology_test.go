package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MediBoard/MediBoard/internal/db/models"
	"github.com/MediBoard/MediBoard/internal/spreadsheet"
)

func multipartBody(t *testing.T, field, filename string, data []byte) ([]byte, http.Header) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	require.NoError(t, w.WriteField("note", "ignored"))

	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)

	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes(), http.Header{"Content-Type": {w.FormDataContentType()}}
}

func TestRadiologyBatch(t *testing.T) {
	t.Parallel()

	env := newEnv(t)

	resp := env.do(call{
		method: http.MethodPost,
		path:   "/radiology-prices/batch",
		body: map[string]any{"items": []map[string]any{
			{"name": "X-Ray Thorax", "category": "X-Ray", "price": 150000},
			{"name": "CT Head", "category": "CT", "price": 0},
		}},
		admin: true,
	})
	require.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "items[1]: price is required", message(t, resp))

	prices := decodeBody[[]models.RadiologyPrice](t, env.do(call{method: http.MethodGet, path: "/radiology-prices/all"}))
	assert.Empty(t, prices, "a rejected batch stores nothing")

	resp = env.do(call{
		method: http.MethodPost,
		path:   "/radiology-prices/batch",
		body: map[string]any{"items": []map[string]any{
			{"name": "X-Ray Thorax", "category": "X-Ray", "price": 150000},
			{"name": "CT Head", "category": "CT", "price": 900000},
		}},
		admin: true,
	})
	require.Equal(t, http.StatusCreated, resp.Status, string(resp.Body))
	assert.EqualValues(t, 2, decodeBody[map[string]any](t, resp)["count"])

	resp = env.do(call{
		method: http.MethodPost,
		path:   "/radiology-prices/batch",
		body: map[string]any{"replace": true, "items": []map[string]any{
			{"name": "MRI Knee", "category": "MRI", "price": 2500000},
		}},
		admin: true,
	})
	require.Equal(t, http.StatusCreated, resp.Status, string(resp.Body))

	active := decodeBody[[]models.RadiologyPrice](t, env.do(call{method: http.MethodGet, path: "/radiology-prices"}))
	require.Len(t, active, 1)
	assert.Equal(t, "MRI Knee", active[0].Name)

	all := decodeBody[[]models.RadiologyPrice](t, env.do(call{method: http.MethodGet, path: "/radiology-prices/all"}))
	assert.Len(t, all, 3)

	resp = env.do(call{method: http.MethodPost, path: "/radiology-prices/batch", body: map[string]any{"items": []any{}}, admin: true})
	require.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "items is required", message(t, resp))
}

func TestRadiologyImportExport(t *testing.T) {
	t.Parallel()

	env := newEnv(t)

	sheet, err := spreadsheet.WritePrices([]models.RadiologyPrice{
		{Name: "X-Ray Thorax", Category: "X-Ray", Price: 150000, IsActive: true},
		{Name: "USG Abdomen", Category: "USG", Price: 350000, Notes: "fasting", IsActive: true},
	})
	require.NoError(t, err)

	body, header := multipartBody(t, "file", "prices.xlsx", sheet)

	resp := env.do(call{method: http.MethodPost, path: "/radiology-prices/import", body: body, header: header})
	require.Equal(t, http.StatusUnauthorized, resp.Status)

	resp = env.do(call{method: http.MethodPost, path: "/radiology-prices/import", body: body, header: header, admin: true})
	require.Equal(t, http.StatusCreated, resp.Status, string(resp.Body))
	assert.EqualValues(t, 2, decodeBody[map[string]any](t, resp)["count"])

	resp = env.do(call{
		method: http.MethodPost,
		path:   "/radiology-prices/import",
		query:  url.Values{"replace": {"true"}},
		body:   sheet,
		header: http.Header{"Content-Type": {spreadsheet.ContentType}},
		admin:  true,
	})
	require.Equal(t, http.StatusCreated, resp.Status, string(resp.Body))

	resp = env.do(call{method: http.MethodGet, path: "/radiology-prices", query: url.Values{"category": {"USG"}}})
	require.Equal(t, http.StatusOK, resp.Status)

	usg := decodeBody[[]models.RadiologyPrice](t, resp)
	require.Len(t, usg, 1)
	assert.Equal(t, "fasting", usg[0].Notes)

	resp = env.do(call{method: http.MethodGet, path: "/radiology-prices/export"})
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, spreadsheet.ContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "radiology-prices.xlsx")

	exported, err := spreadsheet.ReadPrices(resp.Body)
	require.NoError(t, err)
	assert.Len(t, exported, 2)
}

func TestRadiologyImportRejectsBadFiles(t *testing.T) {
	t.Parallel()

	env := newEnv(t)

	resp := env.do(call{
		method: http.MethodPost,
		path:   "/radiology-prices/import",
		body:   []byte("definitely not a workbook"),
		admin:  true,
	})
	require.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "Invalid spreadsheet", message(t, resp))

	resp = env.do(call{method: http.MethodPost, path: "/radiology-prices/import", admin: true})
	require.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "file is required", message(t, resp))

	body, header := multipartBody(t, "attachment", "prices.xlsx", []byte("x"))
	resp = env.do(call{method: http.MethodPost, path: "/radiology-prices/import", body: body, header: header, admin: true})
	require.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "file is required", message(t, resp))
}
