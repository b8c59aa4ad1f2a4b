package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and providers return these
// (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in the store
// - ErrCredentialMismatch: provider rejected the credential pair
// - ErrExpired: session has passed its expiry instant
// - ErrRevoked: session was destroyed out of band
// - ErrUnavailable: store or provider temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/errors directly.
var (
	ErrNotFound           = errors.New("not found")
	ErrCredentialMismatch = errors.New("credential mismatch")
	ErrExpired            = errors.New("expired")
	ErrRevoked            = errors.New("revoked")
	ErrConflict           = errors.New("conflict")
	ErrUnavailable        = errors.New("unavailable")
)
