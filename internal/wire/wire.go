package wire

import (
	"Neuron/internal/api"
	"Neuron/internal/api/config"
	"Neuron/internal/api/handler"
	"Neuron/internal/job"
	"Neuron/internal/pkg/cron"
	"Neuron/internal/pkg/kafka"
	"Neuron/internal/repository"
	"Neuron/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	tweetRepo := repository.NewTweetRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	themeRepo := repository.NewThemeRepository(db)
	userProfileRepo := repository.NewUserProfileRepository(db)
	entityMetricRepo := repository.NewEntityMetricRepository(db)
	authorProfileRepo := repository.NewAuthorProfileRepository(db)
	authorIntelRepo := repository.NewAuthorIntelligenceRepository(db)
	tierRunRepo := repository.NewTierRunRepository(db)

	tierRunService := service.NewTierRunService(tierRunRepo, cfg.Compute.RecomputePerMinute)
	dailyMetricService := service.NewDailyMetricService(
		tweetRepo, projectRepo, themeRepo, entityMetricRepo, tierRunService,
		&cfg.Scoring, &cfg.Compute)
	authorBehaviorService := service.NewAuthorBehaviorService(
		tweetRepo, collectionRepo, authorProfileRepo, tierRunService,
		&cfg.Scoring, &cfg.Compute)
	intelligenceService := service.NewIntelligenceService(
		tweetRepo, collectionRepo, userProfileRepo, authorIntelRepo, tierRunService,
		&cfg.Scoring, &cfg.Compute)
	metricQueryService := service.NewMetricQueryService(
		entityMetricRepo, authorProfileRepo, authorIntelRepo, tierRunService)

	handlers := &api.HandlersGroup{
		MetricHandler: handler.NewMetricHandler(metricQueryService),
		AuthorHandler: handler.NewAuthorHandler(metricQueryService),
		ComputeHandler: handler.NewComputeHandler(
			dailyMetricService, authorBehaviorService, intelligenceService, tierRunService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg)
	if err != nil {
		return nil, err
	}

	cronMgr := cron.NewCronManager(
		job.NewDailyMetricJob(dailyMetricService),
		job.NewAuthorBehaviorJob(authorBehaviorService),
		job.NewIntelligenceJob(intelligenceService, 7),
		job.NewIntelligenceJob(intelligenceService, 30),
		job.NewIntelligenceJob(intelligenceService, 90),
	)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
