package auth

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"opsportal/pkg/sentinel"
)

// MemoryProvider is an in-process identity provider holding bcrypt password
// hashes. It backs local runs and tests; production points the service at an
// external provider behind the same interface.
type MemoryProvider struct {
	mu       sync.RWMutex
	accounts map[string]memoryAccount
}

type memoryAccount struct {
	identity     Identity
	passwordHash []byte
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{accounts: make(map[string]memoryAccount)}
}

// Register adds or replaces an account. The password is hashed with bcrypt
// before storage; the plaintext never leaves this call.
func (p *MemoryProvider) Register(identity Identity, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.accounts[normalizeEmail(identity.Email)] = memoryAccount{
		identity:     identity,
		passwordHash: hash,
	}
	return nil
}

// SignIn verifies the pair against the stored hash. Unknown email and wrong
// password are indistinguishable to the caller.
func (p *MemoryProvider) SignIn(_ context.Context, email, password string) (Identity, error) {
	p.mu.RLock()
	account, ok := p.accounts[normalizeEmail(email)]
	p.mu.RUnlock()

	if !ok {
		return Identity{}, sentinel.ErrCredentialMismatch
	}
	if err := bcrypt.CompareHashAndPassword(account.passwordHash, []byte(password)); err != nil {
		return Identity{}, sentinel.ErrCredentialMismatch
	}
	return account.identity, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
