package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/akoval/terplink/internal/client/cache"
	"github.com/akoval/terplink/internal/client/gateway"
	"github.com/akoval/terplink/internal/client/models"
	"github.com/akoval/terplink/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// fakeGateway satisfies gateway.Client for the methods under test; the
// embedded interface panics on anything a test did not mean to call.
type fakeGateway struct {
	gateway.Client

	mu sync.Mutex

	appointments []models.Appointment
	appointment  *models.Appointment
	offers       []models.Offer
	created      *models.Appointment
	facility     *models.Facility
	patient      *models.Patient
	patients     []models.Patient

	listErr, getErr, updateErr, createErr   error
	offersErr, acceptErr, declineErr        error
	facilityErr, patientErr, pushErr        error
	listCalls, getCalls, updateCalls        int
	createCalls, offersCalls, acceptCalls   int
	declineCalls, facilityCalls, pushCalls  int
	patientCalls                            int

	lastPatch  models.AppointmentPatch
	lastCreate models.FollowUpRequest
	lastPush   string
}

func (f *fakeGateway) ListAppointments(ctx context.Context, patientID string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return f.appointments, f.listErr
}

func (f *fakeGateway) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	return f.appointment, f.getErr
}

func (f *fakeGateway) UpdateAppointment(ctx context.Context, id string, patch models.AppointmentPatch) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	f.lastPatch = patch
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.appointment, nil
}

func (f *fakeGateway) CreateAppointment(ctx context.Context, req models.FollowUpRequest) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	f.lastCreate = req
	return f.created, f.createErr
}

func (f *fakeGateway) AvailableOffers(ctx context.Context) ([]models.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offersCalls++
	return f.offers, f.offersErr
}

func (f *fakeGateway) AcceptOffer(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acceptCalls++
	return f.acceptErr
}

func (f *fakeGateway) DeclineOffer(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.declineCalls++
	return f.declineErr
}

func (f *fakeGateway) GetFacility(ctx context.Context, id string) (*models.Facility, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.facilityCalls++
	return f.facility, f.facilityErr
}

func (f *fakeGateway) GetPatient(ctx context.Context, id string) (*models.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patientCalls++
	return f.patient, f.patientErr
}

func (f *fakeGateway) SearchPatients(ctx context.Context, query string) ([]models.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.patients, nil
}

func (f *fakeGateway) RegisterPushToken(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushCalls++
	f.lastPush = token
	return f.pushErr
}

func (f *fakeGateway) counts(read func(*fakeGateway) int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return read(f)
}

// testClock steps the shared cache clock explicitly.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2024, 12, 25, 8, 0, 0, 0, time.UTC)}
}

func (c *testClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func tokenFor(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

// signedInSession builds a session for interpreter u1 backed by store.
func signedInSession(t *testing.T, store *cache.Store) *Session {
	t.Helper()
	s := NewSession(store, testLogger())
	require.NoError(t, s.SignIn(tokenFor(t, jwt.MapClaims{"sub": "u1"})))
	return s
}

func appt(id, date string) models.Appointment {
	return models.Appointment{
		ID:         id,
		Date:       date,
		StartTime:  "09:00",
		Status:     "scheduled",
		FacilityID: "f1",
		PatientID:  "p1",
	}
}

func stale(t *testing.T, store *cache.Store, clk *testClock, key cache.Key) bool {
	t.Helper()
	entry, ok := store.Get(key)
	require.True(t, ok, "expected cache entry for %v", key)
	return entry.Stale(clk.now())
}
