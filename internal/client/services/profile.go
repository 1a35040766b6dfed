package services

import (
	"context"

	"github.com/akoval/terplink/internal/client/forms"
	"github.com/akoval/terplink/internal/client/gateway"
	"github.com/akoval/terplink/internal/logging"
)

// ProfileService covers the interpreter's own profile surface, currently
// just push-token registration for appointment/offer notifications.
type ProfileService struct {
	gw  gateway.Client
	log logging.Logger
}

func NewProfileService(gw gateway.Client, log logging.Logger) *ProfileService {
	return &ProfileService{gw: gw, log: log}
}

// RegisterPushToken validates and registers the device push token. No
// cache entries depend on it, so there is nothing to invalidate.
func (s *ProfileService) RegisterPushToken(ctx context.Context, token string) error {
	if err := forms.Validate(forms.PushTokenForm{Token: token}); err != nil {
		return err
	}

	if err := s.gw.RegisterPushToken(ctx, token); err != nil {
		return err
	}
	s.log.Info(ctx, "push token registered")
	return nil
}
