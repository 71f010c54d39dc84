package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush/auth-backend/internal/auth"
	"github.com/ayush/auth-backend/internal/config"
	"github.com/ayush/auth-backend/internal/mailer"
	"github.com/ayush/auth-backend/internal/reset"
	"github.com/ayush/auth-backend/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// ── Store ────────────────────────────────────────────────
	var users store.UserStore
	switch cfg.StoreBackend {
	case "mongo":
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatalf("mongo connect: %v", err)
		}
		defer client.Disconnect(ctx)
		mongoStore := store.NewMongoStore(client.Database(cfg.MongoDB))
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			log.Fatalf("mongo indexes: %v", err)
		}
		users = mongoStore
	case "memory":
		users = store.NewMemoryStore()
	default:
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("postgres connect: %v", err)
		}
		defer pool.Close()
		pgStore := store.NewPostgresStore(pool)
		if err := pgStore.Migrate(ctx); err != nil {
			log.Fatalf("postgres migrate: %v", err)
		}
		users = pgStore
	}

	// ── Mailer ───────────────────────────────────────────────
	mail := mailer.New(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.SMTPFrom,
		FromName: cfg.SMTPFromName,
		Disabled: cfg.SMTPDisabled,
	})

	// ── Reset strategy ───────────────────────────────────────
	strategy, err := reset.NewStrategy(reset.Variant(cfg.ResetMode))
	if err != nil {
		log.Fatalf("reset mode: %v", err)
	}

	// ── Handlers ─────────────────────────────────────────────
	authHandler := auth.NewHandler(auth.NewService(users))
	resetHandler := reset.NewHandler(reset.NewService(users, mail, strategy, cfg.ResetLinkBase))

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","message":"Server is running"}`))
	})

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Route("/api/password-reset", func(r chi.Router) {
		r.Post("/forgot-password", resetHandler.ForgotPassword)
		r.Post("/reset-password", resetHandler.ResetPassword)
		if strategy.Variant() == reset.VariantToken {
			r.Get("/verify-token/{token}", resetHandler.VerifyToken)
		} else {
			r.Post("/verify-otp", resetHandler.VerifyOTP)
		}
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("Backend listening on :%s (reset mode %s, store %s)", cfg.Port, cfg.ResetMode, cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
