package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/studybuddy/backend/internal/auth"
	"github.com/studybuddy/backend/internal/cache"
	"github.com/studybuddy/backend/internal/config"
	"github.com/studybuddy/backend/internal/database"
	"github.com/studybuddy/backend/internal/explanations"
	"github.com/studybuddy/backend/internal/flashcards"
	"github.com/studybuddy/backend/internal/gamification"
	"github.com/studybuddy/backend/internal/generator"
	"github.com/studybuddy/backend/internal/middleware"
	"github.com/studybuddy/backend/internal/progress"
	"github.com/studybuddy/backend/internal/quizzes"
)

func main() {
	cfg := config.Load()
	auth.JWTSecret = []byte(cfg.JWTSecret)

	// Initialize database
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Leaderboard cache is optional; without redis the store serves reads.
	var c cache.Cache = cache.Nop{}
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Printf("Redis unavailable, running without cache: %v", err)
		} else {
			c = redisCache
			log.Println("Leaderboard cache: redis")
		}
	}

	gen := generator.NewGenerator()

	// Initialize services
	progressStore := progress.NewStore(db)
	gameService := gamification.NewService(gamification.NewStore(db), c, progressStore)
	explanationService := explanations.NewService(explanations.NewStore(db), gen, gameService)
	quizService := quizzes.NewService(quizzes.NewStore(db), gen, gameService)
	flashcardService := flashcards.NewService(flashcards.NewStore(db), gen, gameService)

	// Initialize handlers
	authHandler := auth.NewHandler(db)
	gameHandler := gamification.NewHandler(gameService)
	explanationHandler := explanations.NewHandler(explanationService)
	quizHandler := quizzes.NewHandler(quizService)
	flashcardHandler := flashcards.NewHandler(flashcardService)
	progressHandler := progress.NewHandler(progressStore)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	// Admin routes (external scheduler)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminOnly(cfg.AdminToken))

	gameHandler.RegisterRoutes(protected, admin)
	explanationHandler.RegisterRoutes(protected)
	quizHandler.RegisterRoutes(protected)
	flashcardHandler.RegisterRoutes(protected)
	progressHandler.RegisterRoutes(protected)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	co := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Admin-Token"},
		AllowCredentials: true,
	})

	handler := co.Handler(r)

	log.Printf("Server starting on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
