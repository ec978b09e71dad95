package service

import (
	"Neuron/internal/pkg/consts"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTierRunTransitions(t *testing.T) {
	repo := newFakeTierRunRepo()
	svc := NewTierRunService(repo, 2)
	ctx := context.Background()
	day := testDay()

	run, err := svc.Begin(ctx, consts.TierDailyEntity, day, 0)
	require.NoError(t, err)
	require.Equal(t, consts.TierStatusRunning, run.Status)
	require.NotNil(t, run.StartedAt)

	// a running tier cannot be entered twice
	_, err = svc.Begin(ctx, consts.TierDailyEntity, day, 0)
	require.ErrorIs(t, err, ErrTierAlreadyRunning)

	svc.Finish(ctx, run, 10, 2, nil)
	stored, err := repo.Get(ctx, consts.TierDailyEntity, day, 0)
	require.NoError(t, err)
	require.Equal(t, consts.TierStatusSucceeded, stored.Status)
	require.Equal(t, 10, stored.ItemsTotal)
	require.Equal(t, 2, stored.ItemsFailed)
	require.NotNil(t, stored.FinishedAt)

	// a finished run can be recomputed
	run, err = svc.Begin(ctx, consts.TierDailyEntity, day, 0)
	require.NoError(t, err)
	svc.Finish(ctx, run, 0, 0, errors.New("db down"))
	stored, err = repo.Get(ctx, consts.TierDailyEntity, day, 0)
	require.NoError(t, err)
	require.Equal(t, consts.TierStatusFailed, stored.Status)
	require.Equal(t, "db down", stored.Error)
}

func TestTierRunWindowReady(t *testing.T) {
	repo := newFakeTierRunRepo()
	svc := NewTierRunService(repo, 2)
	ctx := context.Background()
	day := testDay()

	for i := 0; i < 7; i++ {
		run, err := svc.Begin(ctx, consts.TierDailyEntity, day.AddDate(0, 0, -i), 0)
		require.NoError(t, err)
		if i == 3 {
			svc.Finish(ctx, run, 0, 0, errors.New("boom"))
			continue
		}
		svc.Finish(ctx, run, 1, 0, nil)
	}

	ready, err := svc.IsWindowReady(ctx, consts.TierDailyEntity, day, 7, 0)
	require.NoError(t, err)
	require.False(t, ready)

	// retry the failed day and the window opens
	run, err := svc.Begin(ctx, consts.TierDailyEntity, day.AddDate(0, 0, -3), 0)
	require.NoError(t, err)
	svc.Finish(ctx, run, 1, 0, nil)

	ready, err = svc.IsWindowReady(ctx, consts.TierDailyEntity, day, 7, 0)
	require.NoError(t, err)
	require.True(t, ready)
}
