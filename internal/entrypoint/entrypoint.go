package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/dictionary/internal/auth"
	"github.com/mrlokans/dictionary/internal/cache"
	"github.com/mrlokans/dictionary/internal/config"
	"github.com/mrlokans/dictionary/internal/database"
	favoritesdb "github.com/mrlokans/dictionary/internal/database/favorites"
	historydb "github.com/mrlokans/dictionary/internal/database/history"
	wordsdb "github.com/mrlokans/dictionary/internal/database/words"
	"github.com/mrlokans/dictionary/internal/dictionary"
	"github.com/mrlokans/dictionary/internal/favorites"
	"github.com/mrlokans/dictionary/internal/history"
	http_controllers "github.com/mrlokans/dictionary/internal/http"
	"github.com/mrlokans/dictionary/internal/words"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Dictionary API v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Initialize the result cache backend
	var cacheStore cache.Store
	var redisCache *cache.Redis
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		redisCache, err = cache.NewRedis(context.Background(), cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatalf("Failed to connect to redis at %s: %v", cfg.Redis.Addr, err)
		}
		cacheStore = redisCache
		log.Printf("Result cache: redis at %s", cfg.Redis.Addr)
	default:
		cacheStore = cache.NewMemory()
		log.Printf("Result cache: in-memory")
	}

	// Upstream dictionary client
	dictClient := dictionary.NewFreeDictionaryClient(cfg.Dictionary.BaseURL, cfg.Dictionary.Timeout)
	log.Printf("Dictionary upstream: %s (%s)", cfg.Dictionary.BaseURL, dictClient.Name())

	// Repositories and domain services
	wordRepo := wordsdb.NewRepository(db.DB)
	historyService := history.NewService(historydb.NewRepository(db.DB), cacheStore, cfg.Cache.ListingTTL)
	wordsService := words.NewService(wordRepo, dictClient, cacheStore, historyService, words.Config{
		DetailTTL: cfg.Cache.WordDetailTTL,
		ListTTL:   cfg.Cache.WordListTTL,
	})
	favoritesService := favorites.NewService(
		favoritesdb.NewRepository(db.DB), wordsService, wordRepo, cacheStore, cfg.Cache.ListingTTL)

	// Authentication
	authService := auth.NewService(db.DB, cfg.Auth)
	authMiddleware := auth.NewMiddleware(authService)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:         db,
		Cache:            cacheStore,
		WordsService:     wordsService,
		FavoritesService: favoritesService,
		HistoryService:   historyService,
		AuthService:      authService,
		AuthMiddleware:   authMiddleware,
		Version:          version,
	})

	onShutdown := func(ctx context.Context) {
		if redisCache != nil {
			if err := redisCache.Close(); err != nil {
				log.Printf("Error closing redis connection: %v", err)
			}
		}
	}

	Serve(router, cfg, onShutdown)
}
