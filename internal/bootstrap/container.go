package bootstrap

import (
	"log"
	"os"

	"ai-visionboard-be/internal/config"
	"ai-visionboard-be/internal/controller"
	"ai-visionboard-be/internal/pkg/logger"
	"ai-visionboard-be/internal/repository/unitofwork"
	"ai-visionboard-be/internal/service"
	"ai-visionboard-be/pkg/media"
	"ai-visionboard-be/pkg/objectstore"
	"ai-visionboard-be/pkg/stt"
	"ai-visionboard-be/pkg/tts"
	"ai-visionboard-be/pkg/vision/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	QueryController controller.IQueryController
	BoardController controller.IBoardController

	// Background Services (Exposed for main.go to run)
	PersistenceService service.IPersistenceService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	for _, dir := range []string{cfg.Storage.MediaDir, cfg.Storage.UploadDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("[FATAL] Failed to create storage dir %s: %v", dir, err)
		}
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Media & AI Providers
	frameSelector := media.NewFrameSelector()
	audioExtractor := media.NewAudioExtractor()

	transcriber := stt.NewWhisperProvider(cfg.Keys.OpenAI, cfg.Ai.SttModel)

	visionProvider, err := factory.NewVisionProvider(
		cfg.Ai.VisionProvider,
		cfg.Ai.VisionModel,
		cfg.Keys.Anthropic,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Vision Provider: %v", err)
	}
	log.Printf("[INFO] Using Vision Provider: %s (%s)", cfg.Ai.VisionProvider, cfg.Ai.VisionModel)

	synthesizer := tts.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.TtsModel, cfg.Ai.TtsVoice)

	frameStore := objectstore.NewLocalStore(cfg.Storage.UploadDir, cfg.App.BaseURL)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.App.PersistTopic, pubSub)

	workerLogger := logger.NewIsolatedLogger("logs/persistence.log")
	persistenceService := service.NewPersistenceService(
		pubSub,
		cfg.App.PersistTopic,
		uowFactory,
		frameStore,
		workerLogger,
	)

	queryService := service.NewQueryService(
		frameSelector,
		audioExtractor,
		transcriber,
		visionProvider,
		synthesizer,
		sysLogger,
	)
	boardService := service.NewBoardService(uowFactory)

	// 5. Controllers
	return &Container{
		QueryController: controller.NewQueryController(queryService, publisherService, cfg, sysLogger),
		BoardController: controller.NewBoardController(boardService),

		PersistenceService: persistenceService,
	}
}
