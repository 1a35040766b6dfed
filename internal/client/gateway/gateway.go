package gateway

import (
	"context"

	"github.com/akoval/terplink/internal/client/models"
)

// TokenSource supplies the bearer token attached to authenticated
// requests. The session implements it; tests use a static stub.
type TokenSource interface {
	AccessToken() (string, error)
}

// Client is the transport-agnostic contract for the scheduling API. It
// performs no caching and no retries; it classifies failures into the
// sentinel errors of this package and hands them up unchanged.
type Client interface {
	// ListAppointments fetches the signed-in interpreter's appointments.
	// A non-empty patientID narrows the list to a single patient.
	ListAppointments(ctx context.Context, patientID string) ([]models.Appointment, error)
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, patch models.AppointmentPatch) (*models.Appointment, error)
	CreateAppointment(ctx context.Context, req models.FollowUpRequest) (*models.Appointment, error)

	AvailableOffers(ctx context.Context) ([]models.Offer, error)
	// AcceptOffer claims an offer. ErrConflict means another interpreter
	// got there first; the server is the sole arbiter of contested offers.
	AcceptOffer(ctx context.Context, id string) error
	DeclineOffer(ctx context.Context, id string) error

	ListFacilities(ctx context.Context) ([]models.Facility, error)
	// GetFacility is the one unauthenticated read: the upstream facility
	// directory does not require a token for by-id lookups.
	GetFacility(ctx context.Context, id string) (*models.Facility, error)

	SearchPatients(ctx context.Context, query string) ([]models.Patient, error)
	GetPatient(ctx context.Context, id string) (*models.Patient, error)

	RegisterPushToken(ctx context.Context, token string) error
}
