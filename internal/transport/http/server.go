package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"yt-summarizer/internal/ai"
	appsvc "yt-summarizer/internal/app"
	"yt-summarizer/internal/bootstrap"
	"yt-summarizer/internal/cache"
	rabbitmqClient "yt-summarizer/internal/platform/rabbitmq"
	"yt-summarizer/internal/repository"
	"yt-summarizer/internal/transcript"
	"yt-summarizer/internal/transport/http/handler"
	"yt-summarizer/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	historyCache := cache.NewHistoryCache(
		app.Redis,
		time.Duration(app.Config.Redis.HistoryTTLSeconds)*time.Second,
		time.Duration(app.Config.Redis.HistoryDirtyTTLSeconds)*time.Second,
	)
	eventPublisher := rabbitmqClient.NewEventPublisher(app.MQConn, app.Config.RabbitMQ.SummaryEventQueue)

	transcriptClient := transcript.NewClient(transcript.Config{
		BaseURL:      app.Config.Transcript.BaseURL,
		RapidAPIKey:  app.Config.Transcript.RapidAPIKey,
		RapidAPIHost: app.Config.Transcript.RapidAPIHost,
		Lang:         app.Config.Transcript.Lang,
	})

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
		time.Duration(app.Config.Auth.OTPExpireMinute)*time.Minute,
	)
	summaryService := appsvc.NewSummaryService(
		userRepo,
		transcriptClient,
		ai.NewGeminiClient(),
		ai.GenerateConfig{
			BaseURL: app.Config.LLM.BaseURL,
			APIKey:  app.Config.LLM.APIKey,
			Model:   app.Config.LLM.Model,
		},
		eventPublisher,
		historyCache,
	)

	authHandler := handler.NewAuthHandler(authService)
	summaryHandler := handler.NewSummaryHandler(summaryService)

	api := router.Group("/api")
	api.POST("/auth", authHandler.Authenticate)

	authed := api.Group("")
	authed.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	authed.GET("/auth/me", authHandler.Me)
	authed.POST("/auth/send-verification-otp", authHandler.SendVerificationOTP)
	authed.POST("/auth/verify-email", authHandler.VerifyEmail)
	authed.POST("/get-summary", summaryHandler.Summarize)
	authed.GET("/get-summary-history", summaryHandler.GetHistory)
	authed.DELETE("/delete-summary-history", summaryHandler.DeleteHistory)

	return router
}
