package auth

import "context"

// IdentityProvider is the external credential verification collaborator.
// Implementations return sentinel.ErrCredentialMismatch when the pair is
// rejected and sentinel.ErrUnavailable when the backend cannot be reached;
// the service translates both into domain errors.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (Identity, error)
}
