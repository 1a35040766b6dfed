package common

// AuthorizationHeaderName is the HTTP header used to carry the bearer
// access token on outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName carries a per-request id so upstream logs can be
// correlated with client-side ones.
const RequestIDHeaderName = "X-Request-Id"
