package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/akoval/terplink/internal/client/cache"
	"github.com/akoval/terplink/internal/common"
	"github.com/akoval/terplink/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// Session holds the signed-in interpreter's access token and the identity
// derived from it. It implements gateway.TokenSource. Sign-out wipes the
// whole query cache: cached data belongs to the session, not the device.
//
// Token issuance and verification are owned by the external identity
// provider; the client parses claims without checking the signature, using
// them only to key caches and to skip requests that are doomed to 401.
type Session struct {
	mu        sync.Mutex
	token     string
	userID    string
	expiresAt time.Time // zero when the token carries no exp claim

	cache *cache.Store
	log   logging.Logger
	now   func() time.Time
}

func NewSession(store *cache.Store, log logging.Logger) *Session {
	return &Session{cache: store, log: log, now: time.Now}
}

// SignIn installs an access token. The token must carry a subject claim
// (the interpreter id); an already-expired token is rejected up front.
func (s *Session) SignIn(token string) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return fmt.Errorf("%w: missing subject", common.ErrInvalidToken)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return fmt.Errorf("%w: bad expiration", common.ErrInvalidToken)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if exp != nil && !exp.After(s.now()) {
		return common.ErrTokenExpired
	}

	s.token = token
	s.userID = sub
	s.expiresAt = time.Time{}
	if exp != nil {
		s.expiresAt = exp.Time
	}
	return nil
}

// SignOut clears the session and resets the query cache wholesale.
func (s *Session) SignOut() {
	s.mu.Lock()
	s.token = ""
	s.userID = ""
	s.expiresAt = time.Time{}
	s.mu.Unlock()

	s.cache.Reset()
}

// AccessToken returns the current token for the gateway, or an error when
// there is no usable session.
func (s *Session) AccessToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return "", common.ErrNotSignedIn
	}
	if !s.expiresAt.IsZero() && !s.expiresAt.After(s.now()) {
		return "", common.ErrTokenExpired
	}
	return s.token, nil
}

// UserID returns the signed-in interpreter id, or "" when signed out.
func (s *Session) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

func (s *Session) SignedIn() bool {
	_, err := s.AccessToken()
	return err == nil
}
