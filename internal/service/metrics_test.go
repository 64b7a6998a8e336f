package service_test

import (
	"context"
	"testing"

	"github.com/phrazzld/userbase-api/internal/domain"
	"github.com/phrazzld/userbase-api/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentedUserService(t *testing.T) {
	t.Parallel()

	f := newFixture()
	reg := prometheus.NewRegistry()
	svc, err := service.NewInstrumentedUserService(f.svc, reg)
	require.NoError(t, err)

	ctx := context.Background()
	user, err := svc.CreateUser(ctx, domain.NewUserParams{Email: "a@x.io", Password: "p"})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, domain.NewUserParams{Email: "a@x.io", Password: "p"})
	require.ErrorIs(t, err, service.ErrEmailTaken)

	missing, err := svc.GetUserByID(ctx, user.ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = svc.DeleteUserByID(ctx, user.ID, user.ID)
	require.ErrorIs(t, err, service.ErrSelfDelete)

	assert.True(t, svc.IsPasswordMatch("p", user))

	ops, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, ops)

	counter := func(op, outcome string) float64 {
		c, err := reg.Gather()
		require.NoError(t, err)
		for _, mf := range c {
			if mf.GetName() != "userbase_users_operations_total" {
				continue
			}
			for _, m := range mf.GetMetric() {
				labels := map[string]string{}
				for _, lp := range m.GetLabel() {
					labels[lp.GetName()] = lp.GetValue()
				}
				if labels["operation"] == op && labels["outcome"] == outcome {
					return m.GetCounter().GetValue()
				}
			}
		}
		return 0
	}

	assert.Equal(t, float64(1), counter("create", service.OutcomeOK))
	assert.Equal(t, float64(1), counter("create", service.OutcomeConflict))
	assert.Equal(t, float64(1), counter("get_by_id", service.OutcomeAbsent))
	assert.Equal(t, float64(1), counter("delete", service.OutcomeValidation))
	assert.Equal(t, float64(1), counter("password_match", service.OutcomeOK))

	assert.Equal(t, 4, testutil.CollectAndCount(reg, "userbase_users_operation_duration_seconds"),
		"one histogram series per operation used")
}

func TestNewInstrumentedUserService_ReusesCollectors(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_, err := service.NewInstrumentedUserService(newFixture().svc, reg)
	require.NoError(t, err)

	_, err = service.NewInstrumentedUserService(newFixture().svc, reg)
	assert.NoError(t, err)
}
