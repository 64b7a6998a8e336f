// Package mocks provides shared test doubles for the store, transaction,
// password hashing and token interfaces.
//
// MockUserStore is a working in-memory store; reach for it when a test cares
// about behavior. TestifyMockUserStore is a testify/mock double; reach for it
// when a test needs to assert exactly which calls were made.
//
//	users := mocks.NewMockUserStore()
//	users.GetByIDFn = func(ctx context.Context, id int64) (*domain.User, error) {
//	    return nil, errors.New("connection refused")
//	}
package mocks
