package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/MediBoard/MediBoard/internal/db/controller/doctor"
	"github.com/MediBoard/MediBoard/internal/db/controller/resource"
	"github.com/MediBoard/MediBoard/internal/db/models"
	"github.com/MediBoard/MediBoard/internal/notify"
	"github.com/MediBoard/MediBoard/internal/router"
)

const notifyTimeout = 15 * time.Second

func (a *API) doctors() *resource.Store[models.Doctor, *models.Doctor] {
	return resource.New[models.Doctor](a.db, resource.Policy{
		Name:           "Doctor",
		SearchColumns:  []string{"name", "specialty"},
		CategoryColumn: "specialty",
		Order:          "sort_order asc, name asc",
	})
}

func (a *API) doctorRoutes() []router.Route {
	res := &Resource[models.Doctor, *models.Doctor]{
		Path:          "/doctors",
		Store:         a.doctors(),
		CategoryParam: "specialty",
		Extra: []router.Route{
			{Method: http.MethodGet, Match: router.Exact("/doctors/grouped"), Handler: a.groupedDoctors},
			{Method: http.MethodGet, Match: router.Exact("/doctors/on-leave"), Handler: a.doctorsOnLeave},
		},
	}

	return res.routes(a)
}

func (a *API) groupedDoctors(ctx context.Context, _ *router.Request) (*router.Response, error) {
	groups, err := doctor.Grouped(ctx, a.db)
	if err != nil {
		return nil, err
	}

	return router.JSON(http.StatusOK, groups)
}

// doctorsOnLeave lists doctors with a leave covering ?date=, today by default.
func (a *API) doctorsOnLeave(ctx context.Context, req *router.Request) (*router.Response, error) {
	date := req.Query.Get("date")
	if date == "" {
		date = a.now().Format(models.DateLayout)
	} else if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, router.BadRequest("date must be a date in YYYY-MM-DD format")
	}

	doctors, err := doctor.OnLeave(ctx, a.db, date)
	if err != nil {
		return nil, err
	}

	return router.JSON(http.StatusOK, doctors)
}

func (a *API) leaveRoutes() []router.Route {
	res := &Resource[models.Leave, *models.Leave]{
		Path: "/leaves",
		Store: resource.New[models.Leave](a.db, resource.Policy{
			Name:  "Leave",
			Order: "start_date asc, id asc",
		}),
		Scope:       a.leaveScope,
		Check:       a.checkLeave,
		AfterCreate: a.announceLeave,
	}

	return res.routes(a)
}

// leaveScope handles ?doctor_id= and ?upcoming=true and embeds the doctor.
func (a *API) leaveScope(req *router.Request) (func(*gorm.DB) *gorm.DB, error) {
	var doctorID uint64

	if raw := req.Query.Get("doctor_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, router.BadRequest("Invalid doctor_id: %s", raw)
		}

		doctorID = id
	}

	upcoming := req.Query.Get("upcoming") == "true"
	today := a.now().Format(models.DateLayout)

	return func(tx *gorm.DB) *gorm.DB {
		if doctorID != 0 {
			tx = tx.Where("doctor_id = ?", doctorID)
		}

		if upcoming {
			tx = tx.Where("end_date >= ?", today)
		}

		return tx.Preload("Doctor")
	}, nil
}

func (a *API) checkLeave(ctx context.Context, l *models.Leave) error {
	if l.EndDate < l.StartDate {
		return router.BadRequest("end_date must not be before start_date")
	}

	if _, err := a.doctors().Get(ctx, l.DoctorID); err != nil {
		if errors.Is(err, resource.ErrNotFound) {
			return router.BadRequest("doctor_id does not match any doctor")
		}

		return err
	}

	return nil
}

// announceLeave pushes a notification after the leave is committed.
// It never blocks the response and a failure is only logged.
func (a *API) announceLeave(l *models.Leave) {
	leave := *l

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		name := "A doctor"
		if d, err := a.doctors().Get(ctx, leave.DoctorID); err == nil {
			name = d.Name
		}

		alert := notify.Alert{
			Heading: "Doctor schedule update",
			Content: name + " is on leave from " + leave.StartDate + " to " + leave.EndDate,
		}

		if err := a.notifier.Send(ctx, alert); err != nil {
			log.Warn().Err(err).Uint("leave_id", leave.ID).Msg("failed to send leave notification")
		}
	}()
}
