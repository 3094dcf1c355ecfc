package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/MediBoard/MediBoard/internal/db/controller/setting"
	"github.com/MediBoard/MediBoard/internal/router"
)

const msgSettingNotFound = "Setting not found"

type settingView struct {
	Value     string    `json:"value"`
	Enabled   bool      `json:"enabled"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *API) settingRoutes() []router.Route {
	keyed := router.Prefix("/settings", "key")

	return []router.Route{
		{Method: http.MethodGet, Match: router.Exact("/settings"), Handler: a.listSettings},
		{Method: http.MethodPost, Match: router.Exact("/settings"), Auth: true, Handler: a.saveSettings},
		{Method: http.MethodGet, Match: keyed, Handler: a.getSetting},
		{Method: http.MethodPut, Match: keyed, Auth: true, Handler: a.putSetting},
		{Method: http.MethodDelete, Match: keyed, Auth: true, Handler: a.deleteSetting},
	}
}

// listSettings returns key -> {value, enabled, updated_at}; values are verbatim.
func (a *API) listSettings(ctx context.Context, _ *router.Request) (*router.Response, error) {
	all, err := setting.GetAll(ctx, a.db)
	if err != nil {
		return nil, err
	}

	out := make(map[string]settingView, len(all))
	for _, s := range all {
		out[s.Key] = settingView{Value: s.Value, Enabled: s.Enabled, UpdatedAt: s.UpdatedAt}
	}

	return router.JSON(http.StatusOK, out)
}

// saveSettings upserts a batch in one transaction. The body is an array of
// {key, value, enabled}. The older {key: {value, enabled}} object shape is
// only accepted when Settings.AcceptLegacyMapPayload is set.
func (a *API) saveSettings(ctx context.Context, req *router.Request) (*router.Response, error) {
	entries, err := a.decodeSettingEntries(req.Body)
	if err != nil {
		return nil, err
	}

	if err = setting.SetMany(ctx, a.db, entries); err != nil {
		if errors.Is(err, setting.ErrSettingKeyEmpty) {
			return nil, router.BadRequest("key is required")
		}

		return nil, err
	}

	return router.JSON(http.StatusOK, map[string]any{"message": "Settings saved", "count": len(entries)})
}

func (a *API) decodeSettingEntries(body []byte) ([]setting.Entry, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, router.BadRequest("Request body is required")
	}

	var entries []setting.Entry

	switch body[0] {
	case '[':
		if err := json.Unmarshal(body, &entries); err != nil {
			return nil, router.BadRequest("Invalid JSON body")
		}
	case '{':
		if !a.cfg.Settings.AcceptLegacyMapPayload {
			return nil, router.BadRequest("Settings payload must be an array of {key, value, enabled}")
		}

		var legacy map[string]struct {
			Value   any   `json:"value"`
			Enabled *bool `json:"enabled"`
		}

		if err := json.Unmarshal(body, &legacy); err != nil {
			return nil, router.BadRequest("Invalid JSON body")
		}

		keys := make([]string, 0, len(legacy))
		for k := range legacy {
			keys = append(keys, k)
		}

		slices.Sort(keys)

		for _, k := range keys {
			entries = append(entries, setting.Entry{Key: k, Value: legacy[k].Value, Enabled: legacy[k].Enabled})
		}
	default:
		return nil, router.BadRequest("Invalid JSON body")
	}

	if len(entries) == 0 {
		return nil, router.BadRequest("No settings provided")
	}

	return entries, nil
}

func (a *API) getSetting(ctx context.Context, req *router.Request) (*router.Response, error) {
	s, err := setting.Get(ctx, a.db, req.Params["key"])
	if err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			return nil, router.NotFound(msgSettingNotFound)
		}

		return nil, err
	}

	return router.JSON(http.StatusOK, map[string]any{
		"key":        s.Key,
		"value":      setting.Decode(s.Value),
		"enabled":    s.Enabled,
		"updated_at": s.UpdatedAt,
	})
}

func (a *API) putSetting(ctx context.Context, req *router.Request) (*router.Response, error) {
	var body struct {
		Value   json.RawMessage `json:"value"`
		Enabled *bool           `json:"enabled"`
	}

	if err := req.Decode(&body); err != nil {
		return nil, err
	}

	if body.Value == nil {
		return nil, router.BadRequest("value is required")
	}

	s, err := setting.Set(ctx, a.db, setting.Entry{
		Key:     req.Params["key"],
		Value:   body.Value,
		Enabled: body.Enabled,
	})
	if err != nil {
		return nil, err
	}

	return router.JSON(http.StatusOK, map[string]any{
		"key":        s.Key,
		"value":      setting.Decode(s.Value),
		"enabled":    s.Enabled,
		"updated_at": s.UpdatedAt,
	})
}

func (a *API) deleteSetting(ctx context.Context, req *router.Request) (*router.Response, error) {
	if err := setting.Delete(ctx, a.db, req.Params["key"]); err != nil {
		return nil, err
	}

	return router.JSON(http.StatusOK, map[string]string{"message": "Setting deleted"})
}
