package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"wardrobe-backend/internal/analysis"
	"wardrobe-backend/internal/favorites"
	"wardrobe-backend/internal/llm"
	"wardrobe-backend/internal/llm/gemini"
	"wardrobe-backend/internal/outfits"
	"wardrobe-backend/internal/queue"
	"wardrobe-backend/internal/recommendations"
	"wardrobe-backend/internal/shared/config"
	"wardrobe-backend/internal/shared/server"
	"wardrobe-backend/internal/shared/storage/db"
	"wardrobe-backend/internal/shared/storage/object"
	localstore "wardrobe-backend/internal/shared/storage/object/local"
	s3store "wardrobe-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies for the API server and the worker.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Queue  queue.Client
	LLM    llm.Client
	Driver *analysis.Driver

	OutfitsRepo   outfits.Repo
	FavoritesRepo favorites.Repo

	OutfitsService         *outfits.Service
	FavoritesService       *favorites.Service
	RecommendationsService *recommendations.Service

	OutfitsHandler         *outfits.Handler
	FavoritesHandler       *favorites.Handler
	RecommendationsHandler *recommendations.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
	}

	if err := buildServices(ctx, app); err != nil {
		return nil, err
	}

	localDir := ""
	if cfg.ObjectStoreType == "local" {
		localDir = cfg.LocalStoreDir
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		Outfits:         app.OutfitsHandler,
		Favorites:       app.FavoritesHandler,
		Recommendations: app.RecommendationsHandler,
		LocalUploadsDir: localDir,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.QueueURL) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx)
}

func buildServices(ctx context.Context, app *App) error {
	var outfitRepo outfits.Repo
	var favoriteRepo favorites.Repo

	if app.DB != nil {
		outfitRepo = &outfits.PGRepo{DB: app.DB}
		favoriteRepo = &favorites.PGRepo{DB: app.DB}
	} else {
		memOutfits := outfits.NewMemoryRepo()
		outfitRepo = memOutfits
		favoriteRepo = favorites.NewMemoryRepo(memOutfits)
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	if strings.TrimSpace(app.Config.GoogleAPIKey) != "" {
		client, err := gemini.NewClient(ctx, app.Config.GoogleAPIKey, app.Config.LLMModel)
		if err != nil {
			return err
		}
		llmClient = client
	} else {
		log.Printf("bootstrap: GOOGLE_API_KEY empty; model-backed endpoints disabled")
	}

	resolver := analysis.NewResolver()
	resolver.Store = app.Store

	driver := &analysis.Driver{
		Repo:     outfitRepo,
		Resolver: resolver,
		Provider: llmClient,
	}

	outfitSvc := &outfits.Service{
		Repo:          outfitRepo,
		Store:         app.Store,
		Queue:         app.Queue,
		Driver:        driver,
		PublicBaseURL: app.Config.PublicBaseURL,
	}

	favoriteSvc := &favorites.Service{
		Repo:    favoriteRepo,
		Outfits: outfitRepo,
	}

	recSvc := &recommendations.Service{
		Outfits:        outfitRepo,
		FavoriteLister: favoriteRepo,
		LLM:            llmClient,
	}

	outfitHandler := outfits.NewHandler(outfitSvc)
	outfitHandler.Favorites = favoriteSvc

	app.LLM = llmClient
	app.Driver = driver
	app.OutfitsRepo = outfitRepo
	app.FavoritesRepo = favoriteRepo
	app.OutfitsService = outfitSvc
	app.FavoritesService = favoriteSvc
	app.RecommendationsService = recSvc
	app.OutfitsHandler = outfitHandler
	app.FavoritesHandler = favorites.NewHandler(favoriteSvc)
	app.RecommendationsHandler = recommendations.NewHandler(recSvc)

	return nil
}

func isDevLike(env string) bool {
	switch env {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}
