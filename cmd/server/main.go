package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gym-connect/internal/auth"
	"github.com/iliyamo/gym-connect/internal/config"
	"github.com/iliyamo/gym-connect/internal/database"
	"github.com/iliyamo/gym-connect/internal/handler"
	"github.com/iliyamo/gym-connect/internal/middleware"
	"github.com/iliyamo/gym-connect/internal/queue"
	"github.com/iliyamo/gym-connect/internal/repository"
	"github.com/iliyamo/gym-connect/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}

	rdb, err := config.NewRedisClient()
	if err != nil {
		// Sessions live in Redis; without it nobody can authenticate.
		log.Fatalf("redis: %v", err)
	}

	keys, err := auth.LoadKeyMaterial(
		cfg.AccessPrivateKey, cfg.AccessPublicKey,
		cfg.RefreshPrivateKey, cfg.RefreshPublicKey,
	)
	if err != nil {
		log.Fatalf("key material: %v", err)
	}
	gate := auth.NewGate(auth.NewCodec(keys), auth.NewSessionStore(rdb), cfg.AccessTTL, cfg.RefreshTTL)

	users := repository.NewUserRepo(db)
	profiles := repository.NewProfileRepo(db)
	posts := repository.NewPostRepo(db)

	authH := handler.NewAuthHandler(cfg, gate, users, profiles)
	profileH := handler.NewProfileHandler(profiles, posts)
	postH := handler.NewPostHandler(posts)

	e := echo.New()
	rl := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)
	cacheMW := middleware.Cache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, gate, rl)
	router.RegisterSocial(e, profileH, postH, gate, cacheMW)

	// Verification emails are delivered off the request path.
	go func() {
		if err := queue.StartVerificationConsumer(); err != nil {
			log.Printf("email-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
