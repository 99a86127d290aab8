package types

import (
	"encoding/json"
	"time"
)

// TotalRequest is the payload for POST /api/total. Values are decoded with
// UseNumber so numbers keep their exact decimal text.
type TotalRequest struct {
	Values   []any  `json:"values"`
	Currency string `json:"currency,omitempty"`
}

// TotalResponse is the JSON response for the total endpoint.
type TotalResponse struct {
	Total     float64 `json:"total"`
	Exact     string  `json:"exact"`     // decimal text, no float rounding
	Formatted string  `json:"formatted"` // e.g. "¥1,100"
	Currency  string  `json:"currency"`
	Count     int     `json:"count"`
	Ignored   int     `json:"ignored"` // entries counted as zero
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateSessionRequest is the admin payload for provisioning a session.
// If Token is empty, a random one is generated.
type CreateSessionRequest struct {
	Token string `json:"token"`
	Owner string `json:"owner"`
}

type CreateSessionResponse struct {
	Token   string `json:"token"`
	Active  bool   `json:"active"`
	Owner   string `json:"owner,omitempty"`
	Created string `json:"created_at"` // RFC3339
}

func NowRFC3339() string { return time.Now().UTC().Format(time.RFC3339) }

// DecodeTotalRequest parses a TotalRequest keeping numbers as json.Number.
func DecodeTotalRequest(dec *json.Decoder) (TotalRequest, error) {
	dec.UseNumber()
	var req TotalRequest
	err := dec.Decode(&req)
	return req, err
}
