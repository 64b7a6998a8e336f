package mocks

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/phrazzld/userbase-api/internal/service/auth"
)

var errMalformedHash = errors.New("mock: malformed hash")

// MockHashPrefix marks hashes produced by MockPasswordHasher.
const MockHashPrefix = "mockhash:"

// MockPasswordHasher implements auth.PasswordHasher with a reversible,
// deterministic encoding so tests can assert on stored hashes without bcrypt.
type MockPasswordHasher struct {
	// HashFn and CompareFn replace the default behavior when set.
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	// HashErr is returned by Hash when set.
	HashErr error

	hashCalls    atomic.Int64
	compareCalls atomic.Int64
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements auth.PasswordHasher.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	m.hashCalls.Add(1)
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return MockHashPrefix + password, nil
}

// Compare implements auth.PasswordHasher.
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	m.compareCalls.Add(1)
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if !strings.HasPrefix(hashedPassword, MockHashPrefix) {
		return errMalformedHash
	}
	if strings.TrimPrefix(hashedPassword, MockHashPrefix) != password {
		return auth.ErrPasswordMismatch
	}
	return nil
}

// HashCalls reports how many times Hash was called.
func (m *MockPasswordHasher) HashCalls() int {
	return int(m.hashCalls.Load())
}

// CompareCalls reports how many times Compare was called.
func (m *MockPasswordHasher) CompareCalls() int {
	return int(m.compareCalls.Load())
}
