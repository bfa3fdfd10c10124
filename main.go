package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"quizhub/internal/cache"
	"quizhub/internal/config"
	"quizhub/internal/db"
	"quizhub/internal/event"
	"quizhub/internal/handlers"
	"quizhub/internal/middleware"
	"quizhub/internal/repository"
	"quizhub/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.Load()

	db.InitMongo(cfg.MongoURI)
	database := db.Client.Database(cfg.MongoDatabase)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	cancel()

	// RabbitMQ event publisher
	var publisher *event.Publisher
	if cfg.RabbitURI != "" && cfg.RabbitExchange != "" {
		var err error
		publisher, err = event.NewPublisher(cfg.RabbitURI, cfg.RabbitExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, events will not be published")
	}

	// Redis leaderboard cache
	var lbCache service.LeaderboardCache
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewLeaderboardCache(cfg.RedisAddr, cfg.RedisPassword, cache.DefaultTTL)
		if err != nil {
			log.Printf("Redis unavailable, serving leaderboards uncached: %v", err)
		} else {
			defer redisCache.Close()
			lbCache = redisCache
		}
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Users and auth
	userRepo := repository.NewUserRepository(database)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	authHandler := handlers.NewAuthHandler(authService)

	// Quizzes and results
	quizRepo := repository.NewQuizRepository(database)
	quizService := service.NewQuizService(quizRepo)

	resultRepo := repository.NewResultRepository(database)
	resultService := service.NewResultService(resultRepo, quizRepo, lbCache)
	resultHandler := handlers.NewResultHandler(resultService)

	quizHandler := handlers.NewQuizHandler(quizService, resultService)

	api := r.Group("/api")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/signup", func(c *gin.Context) {
			authHandler.Signup(c)
			if publisher != nil && c.Writer.Status() == http.StatusCreated {
				publisher.Publish("user.signed_up", gin.H{"timestamp": time.Now()})
			}
		})
		authRoutes.POST("/login", authHandler.Login)
	}

	protected := api.Group("/")
	protected.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		quizzes := protected.Group("/quizzes")
		{
			quizzes.GET("", quizHandler.ListQuizzes)
			quizzes.GET("/:id", quizHandler.GetQuiz)
			quizzes.POST("", func(c *gin.Context) {
				quizHandler.CreateQuiz(c)
				if publisher != nil && c.Writer.Status() == http.StatusCreated {
					publisher.Publish("quiz.created", gin.H{
						"user_id":   c.GetString("userID"),
						"timestamp": time.Now(),
					})
				}
			})
			quizzes.POST("/:id/submit", func(c *gin.Context) {
				quizHandler.SubmitQuiz(c)
				if publisher != nil && c.Writer.Status() == http.StatusOK {
					publisher.Publish("quiz.submitted", gin.H{
						"quiz_id":   c.Param("id"),
						"user_id":   c.GetString("userID"),
						"timestamp": time.Now(),
					})
				}
			})
			quizzes.GET("/:id/leaderboard", resultHandler.GetLeaderboard)
		}

		results := protected.Group("/results")
		{
			results.GET("", resultHandler.GetMyResults)
			results.GET("/stats", resultHandler.GetMyStats)
			results.POST("/save-api-quiz", func(c *gin.Context) {
				resultHandler.SaveExternalResult(c)
				if publisher != nil && c.Writer.Status() == http.StatusOK {
					publisher.Publish("result.external_saved", gin.H{
						"user_id":   c.GetString("userID"),
						"timestamp": time.Now(),
					})
				}
			})
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	log.Printf("Server running on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
