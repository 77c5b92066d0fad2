package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"knowledgelink/internal/ai"
	"knowledgelink/internal/app"
	"knowledgelink/internal/bootstrap"
	"knowledgelink/internal/cache"
	"knowledgelink/internal/platform/rabbitmq"
	"knowledgelink/internal/repository"
	"knowledgelink/internal/scrape"
	"knowledgelink/internal/transport/http/handler"
	"knowledgelink/internal/transport/http/middleware"
)

func NewRouter(boot *bootstrap.App) *gin.Engine {
	cfg := boot.Config

	gin.SetMode(cfg.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	collection := boot.Mongo.Database(cfg.Mongo.DB).Collection(cfg.Mongo.Collection)
	linkRepo := repository.NewLinkRepository(collection, cfg.Mongo.VectorIndex)
	extractor := scrape.NewExtractor()
	gemini := ai.NewGeminiClient(ai.Config{
		BaseURL:         cfg.Gemini.BaseURL,
		APIKey:          cfg.Gemini.APIKey,
		EmbeddingModel:  cfg.Gemini.EmbeddingModel,
		GenerationModel: cfg.Gemini.GenerationModel,
	})

	var embeddingCache app.EmbeddingCache
	if boot.Redis != nil {
		embeddingCache = cache.NewQueryEmbeddingCache(
			boot.Redis,
			time.Duration(cfg.Redis.QueryTTLSeconds)*time.Second,
		)
	}
	var publisher app.EventPublisher
	if boot.MQConn != nil {
		publisher = rabbitmq.NewLinkEventPublisher(boot.MQConn, cfg.RabbitMQ.LinkCreatedQueue)
	}

	linkService := app.NewLinkService(extractor, gemini, linkRepo, embeddingCache, publisher)
	linkHandler := handler.NewLinkHandler(linkService)
	healthHandler := handler.NewHealthHandler(boot)

	router.GET("/", healthHandler.Root)
	router.GET("/healthz", healthHandler.Check)

	api := router.Group("/api")
	api.Use(middleware.StaticPrincipal(cfg.App.DefaultUserID))
	api.POST("/links", linkHandler.Submit)
	api.GET("/links", linkHandler.List)
	api.GET("/search", linkHandler.Search)

	return router
}
