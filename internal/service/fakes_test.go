package service

import (
	"Neuron/internal/model"
	"Neuron/internal/pkg/consts"
	"Neuron/internal/repository"
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"
)

// In-memory fakes for the repository interfaces. Keys mirror the unique
// indexes of the real tables so upsert semantics match.

type fakeTweetRepo struct {
	entityTweets  map[string][]*model.Tweet // entityType:entityID:date
	entityAuthors map[string][]string       // entityType:entityID -> prior-window authors
	authorTweets  map[string][]*model.Tweet // authorID:date
	activeAuthors map[string][]string       // date
	windowTweets  []*model.Tweet
	failEntities  map[string]bool // entityType:entityID
}

func entityKey(entityType, entityID string) string {
	return entityType + ":" + entityID
}

func dayKey(prefix string, day time.Time) string {
	return prefix + ":" + day.Format(time.DateOnly)
}

func (f *fakeTweetRepo) GetEntityTweetsByDay(_ context.Context, entityType, entityID string, day time.Time) ([]*model.Tweet, error) {
	if f.failEntities[entityKey(entityType, entityID)] {
		return nil, errors.New("boom")
	}
	return f.entityTweets[dayKey(entityKey(entityType, entityID), day)], nil
}

func (f *fakeTweetRepo) GetEntityAuthorIDsBetween(_ context.Context, entityType, entityID string, _, _ time.Time) ([]string, error) {
	return f.entityAuthors[entityKey(entityType, entityID)], nil
}

func (f *fakeTweetRepo) GetActiveAuthorIDsByDay(_ context.Context, day time.Time) ([]string, error) {
	return f.activeAuthors[day.Format(time.DateOnly)], nil
}

func (f *fakeTweetRepo) GetAuthorTweetsByDay(_ context.Context, authorID string, day time.Time) ([]*model.Tweet, error) {
	return f.authorTweets[dayKey(authorID, day)], nil
}

func (f *fakeTweetRepo) GetTweetsBetween(_ context.Context, from, to time.Time) ([]*model.Tweet, error) {
	tweets := make([]*model.Tweet, 0)
	for _, t := range f.windowTweets {
		if !t.CreatedAt.Before(from) && t.CreatedAt.Before(to) {
			tweets = append(tweets, t)
		}
	}
	return tweets, nil
}

type fakeProjectRepo struct {
	projects []*model.Project
}

func (f *fakeProjectRepo) GetActiveProjects(_ context.Context) ([]*model.Project, error) {
	return f.projects, nil
}

type fakeThemeRepo struct {
	themes []*model.Theme
}

func (f *fakeThemeRepo) GetActiveThemes(_ context.Context) ([]*model.Theme, error) {
	return f.themes, nil
}

type fakeCollectionRepo struct {
	authorDayThemes map[string][]string // authorID:date
	windowThemes    map[string][]string // authorID
}

func (f *fakeCollectionRepo) GetAuthorThemeCodesByDay(_ context.Context, authorID string, day time.Time) ([]string, error) {
	return f.authorDayThemes[dayKey(authorID, day)], nil
}

func (f *fakeCollectionRepo) GetThemeCodesByAuthorsBetween(_ context.Context, _, _ time.Time) (map[string][]string, error) {
	return f.windowThemes, nil
}

type fakeUserProfileRepo struct {
	profiles map[string]*model.UserProfile
}

func (f *fakeUserProfileRepo) GetByUserIDs(_ context.Context, userIDs []string) (map[string]*model.UserProfile, error) {
	result := make(map[string]*model.UserProfile)
	for _, id := range userIDs {
		if p, ok := f.profiles[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

type fakeEntityMetricRepo struct {
	mu     sync.Mutex
	points map[string]*model.EntityMetric
}

func newFakeEntityMetricRepo() *fakeEntityMetricRepo {
	return &fakeEntityMetricRepo{points: make(map[string]*model.EntityMetric)}
}

func metricPointKey(m *model.EntityMetric) string {
	return m.MetricTime.Format(time.DateOnly) + ":" + m.MetricName + ":" + m.EntityType + ":" + m.EntityID
}

func (f *fakeEntityMetricRepo) Upsert(_ context.Context, m *model.EntityMetric) error {
	if !m.HasKey() || m.ValueCount() != 1 {
		return repository.ErrInvalidMetricPoint
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.points[metricPointKey(m)] = m
	return nil
}

func (f *fakeEntityMetricRepo) UpsertBatch(ctx context.Context, metrics []*model.EntityMetric) error {
	for _, m := range metrics {
		if err := f.Upsert(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeEntityMetricRepo) GetPoint(_ context.Context, metricName, entityType, entityID string, t time.Time) (*model.EntityMetric, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.points[t.Format(time.DateOnly)+":"+metricName+":"+entityType+":"+entityID], nil
}

func (f *fakeEntityMetricRepo) QueryRange(_ context.Context, metricName, entityType, entityID string, from, to time.Time) ([]*model.EntityMetric, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	points := make([]*model.EntityMetric, 0)
	for _, m := range f.points {
		if m.EntityType != entityType || m.EntityID != entityID {
			continue
		}
		if metricName != "" && m.MetricName != metricName {
			continue
		}
		if m.MetricTime.Before(from) || m.MetricTime.After(to) {
			continue
		}
		points = append(points, m)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].MetricTime.Before(points[j].MetricTime) })
	return points, nil
}

func (f *fakeEntityMetricRepo) TopEntities(_ context.Context, _, _ string, _ time.Time, _ int) ([]*model.EntityMetric, error) {
	return nil, nil
}

type fakeAuthorProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*model.AuthorDailyProfile // date:authorID
}

func newFakeAuthorProfileRepo() *fakeAuthorProfileRepo {
	return &fakeAuthorProfileRepo{profiles: make(map[string]*model.AuthorDailyProfile)}
}

func (f *fakeAuthorProfileRepo) Upsert(_ context.Context, p *model.AuthorDailyProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[p.ProfileDate.Format(time.DateOnly)+":"+p.AuthorID] = p
	return nil
}

func (f *fakeAuthorProfileRepo) GetByAuthorRange(_ context.Context, authorID string, from, to time.Time) ([]*model.AuthorDailyProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	profiles := make([]*model.AuthorDailyProfile, 0)
	for _, p := range f.profiles {
		if p.AuthorID == authorID && !p.ProfileDate.Before(from) && !p.ProfileDate.After(to) {
			profiles = append(profiles, p)
		}
	}
	return profiles, nil
}

func (f *fakeAuthorProfileRepo) GetByDateRange(_ context.Context, _, _ time.Time) ([]*model.AuthorDailyProfile, error) {
	return nil, nil
}

type fakeAuthorIntelRepo struct {
	mu      sync.Mutex
	rows    map[string]*model.AuthorIntelligence // date:authorID:period
	failFor map[string]bool
}

func newFakeAuthorIntelRepo() *fakeAuthorIntelRepo {
	return &fakeAuthorIntelRepo{rows: make(map[string]*model.AuthorIntelligence), failFor: make(map[string]bool)}
}

func intelKey(date time.Time, authorID string, period int) string {
	return date.Format(time.DateOnly) + ":" + authorID + ":" + strconv.Itoa(period)
}

func (f *fakeAuthorIntelRepo) Upsert(_ context.Context, intel *model.AuthorIntelligence) error {
	if f.failFor[intel.AuthorID] {
		return errors.New("boom")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[intelKey(intel.AnalysisDate, intel.AuthorID, intel.AnalysisPeriod)] = intel
	return nil
}

func (f *fakeAuthorIntelRepo) Get(_ context.Context, authorID string, analysisDate time.Time, period int) (*model.AuthorIntelligence, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[intelKey(analysisDate, authorID, period)], nil
}

func (f *fakeAuthorIntelRepo) TopByScore(_ context.Context, _ string, _ time.Time, _, _ int) ([]*model.AuthorIntelligence, error) {
	return nil, nil
}

type fakeTierRunRepo struct {
	mu   sync.Mutex
	runs map[string]*model.TierRun // tier:date:period
}

func newFakeTierRunRepo() *fakeTierRunRepo {
	return &fakeTierRunRepo{runs: make(map[string]*model.TierRun)}
}

func tierRunKey(tier string, runDate time.Time, period int) string {
	return tier + ":" + runDate.Format(time.DateOnly) + ":" + strconv.Itoa(period)
}

func (f *fakeTierRunRepo) Upsert(_ context.Context, run *model.TierRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs[tierRunKey(run.Tier, run.RunDate, run.Period)] = run
	return nil
}

func (f *fakeTierRunRepo) Get(_ context.Context, tier string, runDate time.Time, period int) (*model.TierRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.runs[tierRunKey(tier, runDate, period)], nil
}

func (f *fakeTierRunRepo) CountSucceededBetween(_ context.Context, tier string, from, to time.Time, period int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, run := range f.runs {
		if run.Tier != tier || run.Period != period || run.Status != consts.TierStatusSucceeded {
			continue
		}
		if run.RunDate.Before(from) || run.RunDate.After(to) {
			continue
		}
		count++
	}
	return count, nil
}
