// Package httpjson holds the small request/response conventions shared by
// every handler: JSON in, JSON out, and one error envelope.
//
// Status policy: 200 on success, 404 for a missing record, 409 for a
// duplicate create, 422 for a malformed identifier, 503 when the document
// store is unreachable. A handful of endpoints additionally report
// idempotent outcomes in the body (e.g. {"alreadyExists": true}) because
// their callers treat those as normal results, not failures.
package httpjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// errorBody is the error envelope for all non-2xx responses.
type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Respond writes v as JSON with the given status code.
func Respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the standard error envelope.
func Error(w http.ResponseWriter, status int, msg string) {
	Respond(w, status, errorBody{Success: false, Message: msg})
}

// Decode reads the request body as JSON into dst. The body is capped so a
// runaway client cannot exhaust memory.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// ErrBadID reports a malformed ObjectID received from a client.
var ErrBadID = errors.New("malformed id")

// ParseID converts a client-supplied hex id into an ObjectID. A malformed
// id is a client error, so it maps to ErrBadID rather than propagating the
// driver error.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrBadID
	}
	return id, nil
}
