package service

import (
	"Neuron/internal/api/config"
	"Neuron/internal/model"
	"Neuron/internal/pkg/consts"
	"Neuron/internal/repository"
	"context"
	"time"

	log "log/slog"
)

// IntelligenceService 作者周期情报画像：协同风险、影响力、监控优先级。
// minTweets 为入选作者的窗口内推文量门槛，传 0 取配置默认值
type IntelligenceService interface {
	ComputePeriod(ctx context.Context, analysisDate time.Time, period, minTweets int) (*TierSummary, error)
}

type intelligenceServiceImpl struct {
	tweetRepo      repository.TweetRepo
	collectionRepo repository.CollectionRepo
	userRepo       repository.UserProfileRepo
	intelRepo      repository.AuthorIntelligenceRepo
	tierRunSvc     TierRunService
	scoring        *config.ScoringConfig
	compute        *config.ComputeConfig
}

func NewIntelligenceService(
	tweetRepo repository.TweetRepo,
	collectionRepo repository.CollectionRepo,
	userRepo repository.UserProfileRepo,
	intelRepo repository.AuthorIntelligenceRepo,
	tierRunSvc TierRunService,
	scoring *config.ScoringConfig,
	compute *config.ComputeConfig,
) IntelligenceService {
	return &intelligenceServiceImpl{
		tweetRepo:      tweetRepo,
		collectionRepo: collectionRepo,
		userRepo:       userRepo,
		intelRepo:      intelRepo,
		tierRunSvc:     tierRunSvc,
		scoring:        scoring,
		compute:        compute,
	}
}

// authorWindowStats 单作者在窗口内的聚合，索引构建同一遍扫描里填充
type authorWindowStats struct {
	tweetCount       int
	originalTweets   int
	retweetsReceived int64
	repliesReceived  int64
	totalEngagement  int64

	coordinatedLink    int
	coordinatedHashtag int
	coordinatedTiming  int

	replyTargets   map[string]struct{}
	retweetSources map[string]struct{}
	reachPartners  map[string]struct{}
	hashtagSet     map[string]struct{}
	hashtagUsages  int
	urlTweets      int
}

func newAuthorWindowStats() *authorWindowStats {
	return &authorWindowStats{
		replyTargets:   make(map[string]struct{}),
		retweetSources: make(map[string]struct{}),
		reachPartners:  make(map[string]struct{}),
		hashtagSet:     make(map[string]struct{}),
	}
}

// coordinationIndex 预过滤后的协同集合。命中检测是 O(1) 的成员测试，
// 整体两遍线性扫描，绝不做作者两两比对
type coordinationIndex struct {
	links    map[string]struct{}
	hashtags map[string]struct{}
	buckets  map[int64]struct{}
	bucketSz int64
}

func (idx *coordinationIndex) hit(t *model.Tweet) (link, hashtag, timing bool) {
	for _, u := range t.URLs {
		if _, ok := idx.links[u]; ok {
			link = true
			break
		}
	}
	for _, h := range t.Hashtags {
		if _, ok := idx.hashtags[h]; ok {
			hashtag = true
			break
		}
	}
	if _, ok := idx.buckets[t.CreatedAt.Unix()/idx.bucketSz]; ok {
		timing = true
	}
	return
}

// buildCoordinationIndex 第一遍扫描：链接/话题标签→作者集合、时间桶→作者集合，
// 只保留达到共享阈值的条目
func buildCoordinationIndex(cfg *config.ScoringConfig, tweets []*model.Tweet) *coordinationIndex {
	bucketSz := int64(cfg.TimingBucketSeconds)
	linkAuthors := make(map[string]map[string]struct{})
	hashtagAuthors := make(map[string]map[string]struct{})
	bucketAuthors := make(map[int64]map[string]struct{})

	addAuthor := func(m map[string]map[string]struct{}, key, author string) {
		set, ok := m[key]
		if !ok {
			set = make(map[string]struct{})
			m[key] = set
		}
		set[author] = struct{}{}
	}

	for _, t := range tweets {
		if t.AuthorID == "" {
			continue
		}
		for _, u := range t.URLs {
			addAuthor(linkAuthors, u, t.AuthorID)
		}
		for _, h := range t.Hashtags {
			addAuthor(hashtagAuthors, h, t.AuthorID)
		}
		bucket := t.CreatedAt.Unix() / bucketSz
		set, ok := bucketAuthors[bucket]
		if !ok {
			set = make(map[string]struct{})
			bucketAuthors[bucket] = set
		}
		set[t.AuthorID] = struct{}{}
	}

	idx := &coordinationIndex{
		links:    make(map[string]struct{}),
		hashtags: make(map[string]struct{}),
		buckets:  make(map[int64]struct{}),
		bucketSz: bucketSz,
	}
	for link, authors := range linkAuthors {
		if len(authors) >= cfg.SharedLinkMinAuthors {
			idx.links[link] = struct{}{}
		}
	}
	for hashtag, authors := range hashtagAuthors {
		if len(authors) >= cfg.SharedHashtagMinAuthors {
			idx.hashtags[hashtag] = struct{}{}
		}
	}
	for bucket, authors := range bucketAuthors {
		if len(authors) >= cfg.TimingBucketMinAuthors {
			idx.buckets[bucket] = struct{}{}
		}
	}
	return idx
}

// ComputePeriod 计算一个分析窗口内所有达到推文量门槛作者的情报画像。
// 单作者失败跳过并计数，整批继续；同键重算整行覆盖
func (s *intelligenceServiceImpl) ComputePeriod(ctx context.Context, analysisDate time.Time, period, minTweets int) (*TierSummary, error) {
	if !supportedPeriod(period) {
		return nil, ErrUnsupportedPeriod
	}
	if minTweets <= 0 {
		minTweets = s.compute.MinTweetThreshold
	}
	analysisDate = getMidnight(analysisDate)
	run, err := s.tierRunSvc.Begin(ctx, consts.TierIntelligence, analysisDate, period)
	if err != nil {
		return nil, err
	}

	summary, err := s.computePeriod(ctx, analysisDate, period, minTweets)
	if err != nil {
		s.tierRunSvc.Finish(ctx, run, 0, 0, err)
		return nil, err
	}
	s.tierRunSvc.Finish(ctx, run, summary.ItemsTotal, summary.ItemsFailed, nil)
	return summary, nil
}

func (s *intelligenceServiceImpl) computePeriod(ctx context.Context, analysisDate time.Time, period, minTweets int) (*TierSummary, error) {
	windowEnd := analysisDate.AddDate(0, 0, 1)
	windowStart := windowEnd.AddDate(0, 0, -period)

	tweets, err := s.tweetRepo.GetTweetsBetween(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	idx := buildCoordinationIndex(s.scoring, tweets)

	// 第二遍：命中检测与作者聚合
	stats := make(map[string]*authorWindowStats)
	for _, t := range tweets {
		if t.AuthorID == "" || len(t.AuthorID) > s.compute.AuthorIDMaxLen {
			continue
		}
		st, ok := stats[t.AuthorID]
		if !ok {
			st = newAuthorWindowStats()
			stats[t.AuthorID] = st
		}

		st.tweetCount++
		if t.IsOriginal() {
			st.originalTweets++
			st.retweetsReceived += int64(t.RetweetCount)
		}
		st.repliesReceived += int64(t.ReplyCount)
		st.totalEngagement += int64(t.RetweetCount + t.ReplyCount + t.LikeCount + t.QuoteCount + t.BookmarkCount)

		if t.InReplyToUserID != "" {
			st.replyTargets[t.InReplyToUserID] = struct{}{}
			st.reachPartners[t.InReplyToUserID] = struct{}{}
		}
		if t.RetweetedTweetID != "" {
			st.retweetSources[t.RetweetedTweetID] = struct{}{}
		}
		if t.QuotedTweetID != "" {
			st.retweetSources[t.QuotedTweetID] = struct{}{}
		}
		for _, h := range t.Hashtags {
			st.hashtagSet[h] = struct{}{}
			st.hashtagUsages++
		}
		if len(t.URLs) > 0 {
			st.urlTweets++
		}

		link, hashtag, timing := idx.hit(t)
		if link {
			st.coordinatedLink++
		}
		if hashtag {
			st.coordinatedHashtag++
		}
		if timing {
			st.coordinatedTiming++
		}
	}

	qualifying := make([]string, 0, len(stats))
	for authorID, st := range stats {
		if st.tweetCount >= minTweets {
			qualifying = append(qualifying, authorID)
		}
	}

	profiles, err := s.userRepo.GetByUserIDs(ctx, qualifying)
	if err != nil {
		return nil, err
	}
	themesByAuthor, err := s.collectionRepo.GetThemeCodesByAuthorsBetween(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	failed := 0
	for _, authorID := range qualifying {
		intel := s.buildIntelligence(analysisDate, period, authorID, stats[authorID], profiles[authorID], len(themesByAuthor[authorID]))
		if err := s.intelRepo.Upsert(ctx, intel); err != nil {
			log.ErrorContext(ctx, "upsert author intelligence error", "author_id", authorID, "err", err)
			failed++
		}
	}

	return &TierSummary{
		Tier:        consts.TierIntelligence,
		RunDate:     analysisDate,
		Period:      period,
		ItemsTotal:  len(qualifying),
		ItemsFailed: failed,
	}, nil
}

func (s *intelligenceServiceImpl) buildIntelligence(
	analysisDate time.Time,
	period int,
	authorID string,
	st *authorWindowStats,
	profile *model.UserProfile,
	themesEngaged int,
) *model.AuthorIntelligence {
	cfg := s.scoring

	risk := CoordinationRiskScore(cfg, CoordinationExposure{
		TotalTweets:        st.tweetCount,
		CoordinatedLink:    st.coordinatedLink,
		CoordinatedHashtag: st.coordinatedHashtag,
		CoordinatedTiming:  st.coordinatedTiming,
	})

	followers := 0
	following := 0
	if profile != nil {
		followers = profile.FollowersCount
		following = profile.FollowingCount
	}

	influence := InfluenceScore(cfg, InfluenceInputs{
		TweetCount:       st.tweetCount,
		OriginalTweets:   st.originalTweets,
		RetweetsReceived: st.retweetsReceived,
		RepliesReceived:  st.repliesReceived,
		TotalEngagement:  st.totalEngagement,
		Followers:        followers,
		NetworkReach:     len(st.reachPartners),
		ThemesEngaged:    themesEngaged,
	})

	amplification := AmplificationFactor(st.retweetsReceived, st.originalTweets)
	betweenness := BetweennessApprox(len(st.replyTargets), len(st.retweetSources), st.tweetCount)
	authority := AuthorityScore(cfg, followers, following)

	hashtagCoordination := 0.0
	if st.tweetCount > 0 {
		hashtagCoordination = clamp01(float64(st.coordinatedHashtag) / float64(st.tweetCount))
	}
	crossReferenceRate := 0.0
	if st.tweetCount > 0 {
		crossReferenceRate = float64(st.urlTweets) / float64(st.tweetCount)
	}
	semanticDiversity := 0.0
	if st.hashtagUsages > 0 {
		semanticDiversity = float64(len(st.hashtagSet)) / float64(st.hashtagUsages)
	}

	return &model.AuthorIntelligence{
		AnalysisDate:          analysisDate,
		AuthorID:              authorID,
		AnalysisPeriod:        period,
		TweetCount:            st.tweetCount,
		InfluenceScore:        influence,
		AuthorityScore:        authority / cfg.AuthorityCap,
		CoordinationRisk:      risk,
		BetweennessCentrality: betweenness,
		NetworkReach:          len(st.reachPartners),
		CrossReferenceRate:    crossReferenceRate,
		SemanticDiversity:     semanticDiversity,
		HashtagCoordination:   hashtagCoordination,
		AmplificationFactor:   amplification,
		MonitoringPriority:    MonitoringPriority(cfg, risk, influence, amplification, betweenness),
		ComputedAt:            time.Now(),
	}
}

func supportedPeriod(period int) bool {
	for _, p := range consts.IntelligencePeriods {
		if p == period {
			return true
		}
	}
	return false
}
