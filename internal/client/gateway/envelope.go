package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// normalizeEnvelope reduces the two response shapes the API produces to a
// single contract:
//
//   - {"data": T} or {"data": [T...]}  ->  the contents of "data"
//   - a bare JSON array                ->  passed through unchanged
//
// Anything else fails with ErrMalformedResponse. This is the only place in
// the client that inspects the envelope shape.
func normalizeEnvelope(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}

	switch trimmed[0] {
	case '[':
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("%w: invalid json array", ErrMalformedResponse)
		}
		return json.RawMessage(trimmed), nil

	case '{':
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if envelope.Data == nil {
			return nil, fmt.Errorf("%w: missing data field", ErrMalformedResponse)
		}
		return envelope.Data, nil

	default:
		return nil, fmt.Errorf("%w: unexpected body shape", ErrMalformedResponse)
	}
}

func decodeOne[T any](raw json.RawMessage) (*T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &v, nil
}

func decodeList[T any](raw json.RawMessage) ([]T, error) {
	var v []T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return v, nil
}
