package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/akoval/terplink/internal/client/models"
	"github.com/akoval/terplink/internal/common"
	"github.com/akoval/terplink/internal/logging"
	"github.com/google/uuid"
)

// DefaultRequestTimeout bounds every request when the config does not
// override it.
const DefaultRequestTimeout = 5 * time.Second

// HTTPGateway is the concrete Client backed by the scheduling HTTP API.
// It attaches the bearer token from its TokenSource, tags every request
// with an X-Request-Id, normalizes response envelopes, and maps HTTP
// failures to the package's sentinel errors.
type HTTPGateway struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

func NewHTTPGateway(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) *HTTPGateway {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// withAuth controls whether do attaches the bearer token.
type withAuth bool

const (
	authed withAuth = true
	noAuth withAuth = false
)

// do performs one HTTP round trip and returns the raw response body after
// status classification. It never inspects the envelope; that is
// normalizeEnvelope's job.
func (g *HTTPGateway) do(ctx context.Context, method, path string, query url.Values, body any, auth withAuth) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	u := g.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)

	if auth == authed {
		token, err := g.tokens.AccessToken()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
		}
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		g.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if err := classifyStatus(resp.StatusCode, data); err != nil {
		g.log.Debug(ctx, "request rejected", "method", method, "path", path,
			"request_id", requestID, "status", resp.StatusCode)
		return nil, err
	}

	return data, nil
}

func classifyStatus(status int, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized:
		return ErrUnauthenticated
	case status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusConflict:
		return ErrConflict
	default:
		return &ServerError{Status: status, Message: serverMessage(body)}
	}
}

// serverMessage pulls a human-readable message out of an error body when
// the server supplies one.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return ""
}

// getData is the common read path: GET, classify, unwrap the envelope.
func (g *HTTPGateway) getData(ctx context.Context, path string, query url.Values, auth withAuth) (json.RawMessage, error) {
	body, err := g.do(ctx, http.MethodGet, path, query, nil, auth)
	if err != nil {
		return nil, err
	}
	return normalizeEnvelope(body)
}

func (g *HTTPGateway) ListAppointments(ctx context.Context, patientID string) ([]models.Appointment, error) {
	var query url.Values
	if patientID != "" {
		query = url.Values{"patientId": {patientID}}
	}
	raw, err := g.getData(ctx, "/appointments", query, authed)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Appointment](raw)
}

func (g *HTTPGateway) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	raw, err := g.getData(ctx, "/appointments/"+url.PathEscape(id), nil, authed)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Appointment](raw)
}

func (g *HTTPGateway) UpdateAppointment(ctx context.Context, id string, patch models.AppointmentPatch) (*models.Appointment, error) {
	body, err := g.do(ctx, http.MethodPatch, "/appointments/"+url.PathEscape(id), nil, patch, authed)
	if err != nil {
		return nil, err
	}
	raw, err := normalizeEnvelope(body)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Appointment](raw)
}

func (g *HTTPGateway) CreateAppointment(ctx context.Context, req models.FollowUpRequest) (*models.Appointment, error) {
	body, err := g.do(ctx, http.MethodPost, "/appointments", nil, req, authed)
	if err != nil {
		return nil, err
	}
	raw, err := normalizeEnvelope(body)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Appointment](raw)
}

func (g *HTTPGateway) AvailableOffers(ctx context.Context) ([]models.Offer, error) {
	raw, err := g.getData(ctx, "/appointments/offers/available", nil, authed)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Offer](raw)
}

func (g *HTTPGateway) AcceptOffer(ctx context.Context, id string) error {
	return g.postOfferAction(ctx, id, "accept")
}

func (g *HTTPGateway) DeclineOffer(ctx context.Context, id string) error {
	return g.postOfferAction(ctx, id, "decline")
}

// postOfferAction handles the accept/decline acknowledgement shape, which
// is not wrapped in a data envelope. A 2xx with success=false is treated
// as a server error: the server refused without saying why in the status.
func (g *HTTPGateway) postOfferAction(ctx context.Context, id, action string) error {
	path := "/appointments/offers/" + url.PathEscape(id) + "/" + action
	body, err := g.do(ctx, http.MethodPost, path, nil, nil, authed)
	if err != nil {
		return err
	}

	var ack models.Ack
	if err := json.Unmarshal(bytes.TrimSpace(body), &ack); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if !ack.Success {
		return &ServerError{Status: http.StatusOK, Message: ack.Message}
	}
	return nil
}

func (g *HTTPGateway) ListFacilities(ctx context.Context) ([]models.Facility, error) {
	raw, err := g.getData(ctx, "/facilities", nil, authed)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Facility](raw)
}

// GetFacility deliberately sends no Authorization header: the upstream
// facility directory serves by-id lookups publicly.
func (g *HTTPGateway) GetFacility(ctx context.Context, id string) (*models.Facility, error) {
	raw, err := g.getData(ctx, "/facilities/"+url.PathEscape(id), nil, noAuth)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Facility](raw)
}

func (g *HTTPGateway) SearchPatients(ctx context.Context, query string) ([]models.Patient, error) {
	raw, err := g.getData(ctx, "/patients/search", url.Values{"q": {query}}, authed)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Patient](raw)
}

func (g *HTTPGateway) GetPatient(ctx context.Context, id string) (*models.Patient, error) {
	raw, err := g.getData(ctx, "/patients/"+url.PathEscape(id), nil, authed)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Patient](raw)
}

func (g *HTTPGateway) RegisterPushToken(ctx context.Context, token string) error {
	body := map[string]string{"token": token}
	_, err := g.do(ctx, http.MethodPatch, "/interpreters/me/push-token", nil, body, authed)
	return err
}
