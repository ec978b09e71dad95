package service

import (
	"Neuron/internal/model"
	"Neuron/internal/pkg/consts"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func newQueryServiceForTest(metricRepo *fakeEntityMetricRepo, intelRepo *fakeAuthorIntelRepo, tierRunRepo *fakeTierRunRepo) MetricQueryService {
	return NewMetricQueryService(
		metricRepo,
		newFakeAuthorProfileRepo(),
		intelRepo,
		NewTierRunService(tierRunRepo, 2),
	)
}

func TestGetEntityPointDistinguishesNotComputed(t *testing.T) {
	ctx := context.Background()
	day := testDay()
	metricRepo := newFakeEntityMetricRepo()
	tierRunRepo := newFakeTierRunRepo()
	svc := newQueryServiceForTest(metricRepo, newFakeAuthorIntelRepo(), tierRunRepo)

	// nothing computed for the day: not-computed, not empty
	_, err := svc.GetEntityPoint(ctx, consts.EntityTypeProject, "1", consts.MetricTweetCount, day)
	require.ErrorIs(t, err, ErrMetricNotComputed)

	// mark the day as computed: the miss becomes an empty result
	_ = tierRunRepo.Upsert(ctx, &model.TierRun{
		Tier: consts.TierDailyEntity, RunDate: day, Status: consts.TierStatusSucceeded,
	})
	point, err := svc.GetEntityPoint(ctx, consts.EntityTypeProject, "1", consts.MetricTweetCount, day)
	require.NoError(t, err)
	require.Nil(t, point)

	// a stored point is returned as-is
	v := int64(42)
	_ = metricRepo.Upsert(ctx, &model.EntityMetric{
		MetricTime: day, MetricName: consts.MetricTweetCount,
		EntityType: consts.EntityTypeProject, EntityID: "1",
		ValueInt: &v, Unit: consts.UnitCount, ComputedAt: day,
	})
	point, err = svc.GetEntityPoint(ctx, consts.EntityTypeProject, "1", consts.MetricTweetCount, day)
	require.NoError(t, err)
	require.NotNil(t, point)
	require.EqualValues(t, 42, *point.ValueInt)
}

func TestGetEntityPointRejectsBadParams(t *testing.T) {
	svc := newQueryServiceForTest(newFakeEntityMetricRepo(), newFakeAuthorIntelRepo(), newFakeTierRunRepo())

	_, err := svc.GetEntityPoint(context.Background(), "author", "a1", consts.MetricTweetCount, testDay())
	require.ErrorIs(t, err, ErrParamInvalid)

	_, err = svc.GetEntityPoint(context.Background(), consts.EntityTypeProject, "", consts.MetricTweetCount, testDay())
	require.ErrorIs(t, err, ErrParamInvalid)
}

func TestGetAuthorIntelligenceMissSemantics(t *testing.T) {
	ctx := context.Background()
	day := testDay()
	intelRepo := newFakeAuthorIntelRepo()
	tierRunRepo := newFakeTierRunRepo()
	svc := newQueryServiceForTest(newFakeEntityMetricRepo(), intelRepo, tierRunRepo)

	_, err := svc.GetAuthorIntelligence(ctx, "a1", day, 14)
	require.ErrorIs(t, err, ErrUnsupportedPeriod)

	_, err = svc.GetAuthorIntelligence(ctx, "a1", day, 7)
	require.ErrorIs(t, err, ErrMetricNotComputed)

	// window computed but the author never met the tweet threshold
	_ = tierRunRepo.Upsert(ctx, &model.TierRun{
		Tier: consts.TierIntelligence, RunDate: day, Period: 7, Status: consts.TierStatusSucceeded,
	})
	_, err = svc.GetAuthorIntelligence(ctx, "a1", day, 7)
	require.ErrorIs(t, err, ErrAuthorNotFound)

	_ = intelRepo.Upsert(ctx, &model.AuthorIntelligence{
		AnalysisDate: day, AuthorID: "a1", AnalysisPeriod: 7, TweetCount: 5,
	})
	row, err := svc.GetAuthorIntelligence(ctx, "a1", day, 7)
	require.NoError(t, err)
	require.Equal(t, 5, row.TweetCount)
}
