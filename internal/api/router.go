package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/fashio-ai/styling-api/docs"
	"github.com/fashio-ai/styling-api/internal/api/handler"
	"github.com/fashio-ai/styling-api/internal/api/middleware"
	"github.com/fashio-ai/styling-api/internal/core/ports"
	"github.com/fashio-ai/styling-api/internal/core/service"
	mongorepo "github.com/fashio-ai/styling-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/fashio-ai/styling-api/internal/infrastructure/db/redis"
	"github.com/fashio-ai/styling-api/internal/infrastructure/session"
	"github.com/fashio-ai/styling-api/pkg/logger"
)

const sessionCapacity = 512

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, gateway ports.StylistGateway, jwtSecret string) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("fashio"))

	// --- Dependencies ---
	locks := redisinfra.NewActionLock(rdb)
	ratingSessions := session.NewRatingStore(sessionCapacity)
	stylistSessions := session.NewStylistStore(sessionCapacity)

	authRepo := mongorepo.NewAuthRepository(db)
	collectionRepo := mongorepo.NewCollectionRepository(db)

	authService := service.NewAuthService(authRepo, jwtSecret, 24*time.Hour)
	adviceService := service.NewAdviceService(gateway, locks, logger.Component("advice"))
	ratingService := service.NewRatingService(gateway, ratingSessions, locks, logger.Component("rating"))
	chatService := service.NewChatService(gateway, stylistSessions, locks, logger.Component("chat"))
	imageService := service.NewImageService(gateway, locks, logger.Component("image"))
	collectionService := service.NewCollectionService(collectionRepo, logger.Component("collection"))

	authHandler := handler.NewAuthHandler(authService)
	adviceHandler := handler.NewAdviceHandler(adviceService)
	ratingHandler := handler.NewRatingHandler(ratingService)
	chatHandler := handler.NewChatHandler(chatService)
	imageHandler := handler.NewImageHandler(imageService)
	collectionHandler := handler.NewCollectionHandler(collectionService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Authenticated API ---
	v1 := e.Group("/v1", middleware.Auth(jwtSecret))

	v1.POST("/advice", adviceHandler.GetAdvice)
	v1.POST("/advice/visualize", adviceHandler.Visualize)

	v1.POST("/ratings", ratingHandler.Rate)
	v1.POST("/ratings/:id/chat", ratingHandler.Chat)
	v1.GET("/ratings/:id/chat", ratingHandler.Transcript)

	v1.POST("/chat/sessions", chatHandler.StartSession)
	v1.POST("/chat/sessions/:id/messages", chatHandler.SendMessage)
	v1.GET("/chat/sessions/:id/messages", chatHandler.Transcript)

	v1.POST("/images/generate", imageHandler.Generate)
	v1.POST("/images/edit", imageHandler.Edit)

	v1.POST("/outfits", collectionHandler.Save)
	v1.GET("/outfits", collectionHandler.List)
	v1.DELETE("/outfits/:id", collectionHandler.Delete)

	return e
}
