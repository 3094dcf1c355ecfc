package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/MediBoard/MediBoard/internal/db/controller/device"
	"github.com/MediBoard/MediBoard/internal/db/controller/display"
	"github.com/MediBoard/MediBoard/internal/db/models"
	"github.com/MediBoard/MediBoard/internal/router"
)

func (a *API) deviceRoutes() []router.Route {
	byID := router.Pattern("/devices/" + router.NumericID)

	return []router.Route{
		{Method: http.MethodPost, Match: router.Exact("/devices/heartbeat"), Handler: a.heartbeat},
		{Method: http.MethodGet, Match: router.Exact("/devices"), Auth: true, Handler: a.listDevices},
		{Method: http.MethodDelete, Match: byID, Auth: true, NeedsID: true, Handler: a.deleteDevice},
		{Method: http.MethodDelete, Match: router.Exact("/devices"), Auth: true, NeedsID: true, Handler: a.deleteDevice},
	}
}

// heartbeat is called by the display clients without credentials.
func (a *API) heartbeat(ctx context.Context, req *router.Request) (*router.Response, error) {
	var hb models.DeviceHeartbeat
	if err := req.Decode(&hb); err != nil {
		return nil, err
	}

	if err := check(a.validate, &hb); err != nil {
		return nil, err
	}

	hb.IP = req.RemoteIP

	stored, err := device.Heartbeat(ctx, a.db, hb, a.now())
	if err != nil {
		return nil, err
	}

	return router.JSON(http.StatusOK, stored)
}

func (a *API) listDevices(ctx context.Context, _ *router.Request) (*router.Response, error) {
	var cfg display.Settings
	if err := cfg.Load(ctx, a.db); err != nil {
		return nil, err
	}

	devices, err := device.List(ctx, a.db, cfg.OnlineWindow(), a.now())
	if err != nil {
		return nil, err
	}

	return router.JSON(http.StatusOK, devices)
}

func (a *API) deleteDevice(ctx context.Context, req *router.Request) (*router.Response, error) {
	id, err := parseKey(numericID, req.ID)
	if err != nil {
		return nil, err
	}

	if err = device.Delete(ctx, a.db, id.(uint)); err != nil {
		if errors.Is(err, device.ErrDeviceNotFound) {
			return nil, router.NotFound("Device not found")
		}

		return nil, err
	}

	return router.JSON(http.StatusOK, map[string]string{"message": "Device deleted"})
}
