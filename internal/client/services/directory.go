package services

import (
	"context"

	"github.com/akoval/terplink/internal/client/cache"
	"github.com/akoval/terplink/internal/client/gateway"
	"github.com/akoval/terplink/internal/client/models"
	"github.com/akoval/terplink/internal/logging"
)

// DirectoryService serves the read-only reference entities: facilities and
// patients. Entries are cached under entity-plus-id keys with a generous
// window since the directory changes rarely. If a refetch fails and a
// stale value is still around, the stale value is served; reference data
// a few minutes old beats an error screen.
type DirectoryService struct {
	gw    gateway.Client
	cache *cache.Store
	log   logging.Logger
}

func NewDirectoryService(gw gateway.Client, store *cache.Store, log logging.Logger) *DirectoryService {
	return &DirectoryService{gw: gw, cache: store, log: log}
}

func (s *DirectoryService) Facility(ctx context.Context, id string) (*models.Facility, error) {
	key := cache.Key{"facility", id}

	if v, ok := s.cache.Fresh(key); ok {
		f := v.(models.Facility)
		return &f, nil
	}

	gen := s.cache.Begin(key)
	f, err := s.gw.GetFacility(ctx, id)
	if err != nil {
		if entry, ok := s.cache.Get(key); ok {
			s.log.Warn(ctx, "serving stale facility after fetch failure", "facility_id", id, "error", err)
			stale := entry.Value.(models.Facility)
			return &stale, nil
		}
		return nil, err
	}

	s.cache.Put(key, *f, gen, directoryStaleAfter, 0)
	return f, nil
}

func (s *DirectoryService) Facilities(ctx context.Context) ([]models.Facility, error) {
	key := cache.Key{"facilities"}

	if v, ok := s.cache.Fresh(key); ok {
		return v.([]models.Facility), nil
	}

	gen := s.cache.Begin(key)
	list, err := s.gw.ListFacilities(ctx)
	if err != nil {
		if entry, ok := s.cache.Get(key); ok {
			s.log.Warn(ctx, "serving stale facility list after fetch failure", "error", err)
			return entry.Value.([]models.Facility), nil
		}
		return nil, err
	}

	s.cache.Put(key, list, gen, directoryStaleAfter, 0)
	return list, nil
}

func (s *DirectoryService) Patient(ctx context.Context, id string) (*models.Patient, error) {
	key := cache.Key{"patient", id}

	if v, ok := s.cache.Fresh(key); ok {
		p := v.(models.Patient)
		return &p, nil
	}

	gen := s.cache.Begin(key)
	p, err := s.gw.GetPatient(ctx, id)
	if err != nil {
		if entry, ok := s.cache.Get(key); ok {
			s.log.Warn(ctx, "serving stale patient after fetch failure", "patient_id", id, "error", err)
			stale := entry.Value.(models.Patient)
			return &stale, nil
		}
		return nil, err
	}

	s.cache.Put(key, *p, gen, directoryStaleAfter, 0)
	return p, nil
}

// SearchPatients is a passthrough: the query space is unbounded, so
// results are not worth caching.
func (s *DirectoryService) SearchPatients(ctx context.Context, query string) ([]models.Patient, error) {
	return s.gw.SearchPatients(ctx, query)
}
