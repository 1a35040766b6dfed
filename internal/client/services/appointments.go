package services

import (
	"context"

	"github.com/akoval/terplink/internal/client/agenda"
	"github.com/akoval/terplink/internal/client/cache"
	"github.com/akoval/terplink/internal/client/forms"
	"github.com/akoval/terplink/internal/client/gateway"
	"github.com/akoval/terplink/internal/client/models"
	"github.com/akoval/terplink/internal/logging"
	"github.com/google/uuid"
)

// AppointmentService owns the appointment reads and mutations together
// with their invalidation rules:
//
//	edit/close appointment  -> {"appointments", uid}, {"appointment", uid, id}
//	create follow-up        -> {"followups"}
type AppointmentService struct {
	gw      gateway.Client
	cache   *cache.Store
	session *Session
	log     logging.Logger
}

func NewAppointmentService(gw gateway.Client, store *cache.Store, session *Session, log logging.Logger) *AppointmentService {
	return &AppointmentService{gw: gw, cache: store, session: session, log: log}
}

func (s *AppointmentService) listKey() cache.Key {
	return cache.Key{"appointments", s.session.UserID()}
}

func (s *AppointmentService) itemKey(id string) cache.Key {
	return cache.Key{"appointment", s.session.UserID(), id}
}

// List returns the interpreter's appointments. A fresh cache entry is
// served without a network call; a stale one is served immediately while a
// refetch runs in the background; a miss fetches synchronously.
func (s *AppointmentService) List(ctx context.Context) ([]models.Appointment, error) {
	key := s.listKey()

	if v, ok := s.cache.Fresh(key); ok {
		return v.([]models.Appointment), nil
	}
	if entry, ok := s.cache.Get(key); ok {
		go s.refreshList()
		return entry.Value.([]models.Appointment), nil
	}
	return s.fetchList(ctx)
}

func (s *AppointmentService) fetchList(ctx context.Context) ([]models.Appointment, error) {
	key := s.listKey()
	gen := s.cache.Begin(key)

	appts, err := s.gw.ListAppointments(ctx, "")
	if err != nil {
		return nil, err
	}
	if !s.cache.Put(key, appts, gen, appointmentsStaleAfter, 0) {
		s.log.Debug(ctx, "discarded stale appointment list write", "generation", gen)
	}
	return appts, nil
}

func (s *AppointmentService) refreshList() {
	ctx, cancel := context.WithTimeout(context.Background(), backgroundRefreshTimeout)
	defer cancel()

	if _, err := s.fetchList(ctx); err != nil {
		s.log.Debug(ctx, "background appointment refresh failed", "error", err)
	}
}

// Get returns a single appointment. On a cache miss the value is seeded
// from a fresh appointments-list entry when one holds the id, avoiding a
// redundant fetch right after the agenda screen.
func (s *AppointmentService) Get(ctx context.Context, id string) (*models.Appointment, error) {
	key := s.itemKey(id)

	if v, ok := s.cache.Fresh(key); ok {
		a := v.(models.Appointment)
		return &a, nil
	}
	if entry, ok := s.cache.Get(key); ok {
		go s.refreshOne(id)
		a := entry.Value.(models.Appointment)
		return &a, nil
	}

	if v, ok := s.cache.Fresh(s.listKey()); ok {
		for _, a := range v.([]models.Appointment) {
			if a.ID == id {
				gen := s.cache.Begin(key)
				s.cache.Put(key, a, gen, appointmentStaleAfter, 0)
				seeded := a
				return &seeded, nil
			}
		}
	}

	return s.fetchOne(ctx, id)
}

func (s *AppointmentService) fetchOne(ctx context.Context, id string) (*models.Appointment, error) {
	key := s.itemKey(id)
	gen := s.cache.Begin(key)

	a, err := s.gw.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Put(key, *a, gen, appointmentStaleAfter, 0)
	return a, nil
}

func (s *AppointmentService) refreshOne(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), backgroundRefreshTimeout)
	defer cancel()

	if _, err := s.fetchOne(ctx, id); err != nil {
		s.log.Debug(ctx, "background appointment refresh failed", "appointment_id", id, "error", err)
	}
}

// Edit applies a partial update. Invalidation runs only after the gateway
// call succeeds; on failure the cache keeps its last known-good state.
func (s *AppointmentService) Edit(ctx context.Context, id string, patch models.AppointmentPatch) (*models.Appointment, error) {
	updated, err := s.gw.UpdateAppointment(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix(s.listKey())
	s.cache.InvalidatePrefix(s.itemKey(id))
	s.log.Info(ctx, "appointment updated", "appointment_id", id)
	return updated, nil
}

// Close validates the close-out form locally and then applies it as an
// edit. A rejected form never reaches the gateway.
func (s *AppointmentService) Close(ctx context.Context, id string, form forms.CloseOutForm) (*models.Appointment, error) {
	if err := forms.Validate(form); err != nil {
		return nil, err
	}

	patch := models.AppointmentPatch{Status: &form.Status}
	if form.EndTime != "" {
		patch.EndTime = &form.EndTime
	}
	if form.Notes != "" {
		patch.Notes = &form.Notes
	}
	return s.Edit(ctx, id, patch)
}

// CreateFollowUp books a follow-up visit. The client reference lets the
// server de-duplicate a resubmitted form.
func (s *AppointmentService) CreateFollowUp(ctx context.Context, form forms.FollowUpForm) (*models.Appointment, error) {
	if err := forms.Validate(form); err != nil {
		return nil, err
	}

	req := models.FollowUpRequest{
		PatientID:       form.PatientID,
		FacilityID:      form.FacilityID,
		Date:            form.Date,
		StartTime:       form.StartTime,
		ClientReference: uuid.NewString(),
	}
	if form.EndTime != "" {
		req.EndTime = &form.EndTime
	}
	if form.Notes != "" {
		req.Notes = &form.Notes
	}

	created, err := s.gw.CreateAppointment(ctx, req)
	if err != nil {
		return nil, err
	}

	s.cache.InvalidatePrefix(cache.Key{"followups"})
	s.log.Info(ctx, "follow-up created", "appointment_id", created.ID, "client_reference", req.ClientReference)
	return created, nil
}

// Refresh forces a synchronous refetch of the appointment list, bypassing
// any fresh cache entry. Used by the pull-to-refresh path.
func (s *AppointmentService) Refresh(ctx context.Context) error {
	_, err := s.fetchList(ctx)
	return err
}

// Agenda re-derives the calendar view from the current appointment list.
func (s *AppointmentService) Agenda(ctx context.Context) (agenda.ItemsMap, error) {
	appts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return agenda.Project(appts), nil
}
