package service

import (
	"context"
	"errors"
	"time"

	"github.com/phrazzld/userbase-api/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels recorded for each user operation.
const (
	OutcomeOK         = "ok"
	OutcomeAbsent     = "absent"
	OutcomeConflict   = "conflict"
	OutcomeNotFound   = "not_found"
	OutcomeValidation = "validation"
	OutcomeError      = "error"
)

var operationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// InstrumentedUserService records a counter and a latency histogram for
// every call to the wrapped UserService, labelled by operation and outcome.
type InstrumentedUserService struct {
	next       UserService
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

var _ UserService = (*InstrumentedUserService)(nil)

// NewInstrumentedUserService wraps next and registers its collectors with reg.
// Collectors already registered by an earlier instance are reused.
func NewInstrumentedUserService(next UserService, reg prometheus.Registerer) (*InstrumentedUserService, error) {
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "userbase",
		Subsystem: "users",
		Name:      "operations_total",
		Help:      "Count of user service operations by outcome",
	}, []string{"operation", "outcome"})

	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "userbase",
		Subsystem: "users",
		Name:      "operation_duration_seconds",
		Help:      "Latency distribution of user service operations",
		Buckets:   operationBuckets,
	}, []string{"operation"})

	if err := reg.Register(operations); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		operations = are.ExistingCollector.(*prometheus.CounterVec)
	}
	if err := reg.Register(latency); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		latency = are.ExistingCollector.(*prometheus.HistogramVec)
	}

	return &InstrumentedUserService{
		next:       next,
		operations: operations,
		latency:    latency,
	}, nil
}

// Outcome classifies the result of a user operation.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrConflict):
		return OutcomeConflict
	case errors.Is(err, ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, ErrValidation):
		return OutcomeValidation
	default:
		return OutcomeError
	}
}

func (s *InstrumentedUserService) observe(operation string, start time.Time, outcome string) {
	s.operations.WithLabelValues(operation, outcome).Inc()
	s.latency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func lookupOutcome(user *domain.User, err error) string {
	if err == nil && user == nil {
		return OutcomeAbsent
	}
	return Outcome(err)
}

// CreateUser implements UserService.
func (s *InstrumentedUserService) CreateUser(
	ctx context.Context,
	params domain.NewUserParams,
) (*domain.User, error) {
	start := time.Now()
	user, err := s.next.CreateUser(ctx, params)
	s.observe("create", start, Outcome(err))
	return user, err
}

// GetUserByID implements UserService.
func (s *InstrumentedUserService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	start := time.Now()
	user, err := s.next.GetUserByID(ctx, id)
	s.observe("get_by_id", start, lookupOutcome(user, err))
	return user, err
}

// GetUserByEmail implements UserService.
func (s *InstrumentedUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	start := time.Now()
	user, err := s.next.GetUserByEmail(ctx, email)
	s.observe("get_by_email", start, lookupOutcome(user, err))
	return user, err
}

// UpdateUserByID implements UserService.
func (s *InstrumentedUserService) UpdateUserByID(
	ctx context.Context,
	id int64,
	patch domain.UserPatch,
) (*domain.User, error) {
	start := time.Now()
	user, err := s.next.UpdateUserByID(ctx, id, patch)
	s.observe("update", start, Outcome(err))
	return user, err
}

// DeleteUserByID implements UserService.
func (s *InstrumentedUserService) DeleteUserByID(
	ctx context.Context,
	id, actingUserID int64,
) (*domain.User, error) {
	start := time.Now()
	user, err := s.next.DeleteUserByID(ctx, id, actingUserID)
	s.observe("delete", start, Outcome(err))
	return user, err
}

// ListUsers implements UserService.
func (s *InstrumentedUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	start := time.Now()
	users, err := s.next.ListUsers(ctx)
	s.observe("list", start, Outcome(err))
	return users, err
}

// IsPasswordMatch implements UserService. Matches and mismatches are counted
// as ok and validation respectively.
func (s *InstrumentedUserService) IsPasswordMatch(plaintext string, user *domain.User) bool {
	start := time.Now()
	ok := s.next.IsPasswordMatch(plaintext, user)
	outcome := OutcomeOK
	if !ok {
		outcome = OutcomeValidation
	}
	s.observe("password_match", start, outcome)
	return ok
}
