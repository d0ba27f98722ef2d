package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glowmance/glowmance-backend/internal/application"
	appanalysis "github.com/glowmance/glowmance-backend/internal/application/analysis"
	"github.com/glowmance/glowmance-backend/internal/application/classify"
	appinci "github.com/glowmance/glowmance-backend/internal/application/inci"
	appproducts "github.com/glowmance/glowmance-backend/internal/application/products"
	"github.com/glowmance/glowmance-backend/internal/config"
	"github.com/glowmance/glowmance-backend/internal/domain/analysis"
	domaincache "github.com/glowmance/glowmance-backend/internal/domain/cache"
	"github.com/glowmance/glowmance-backend/internal/domain/faults"
	domainproducts "github.com/glowmance/glowmance-backend/internal/domain/products"
	infracache "github.com/glowmance/glowmance-backend/internal/infra/cache"
	"github.com/glowmance/glowmance-backend/internal/infra/catalog"
	mongodb "github.com/glowmance/glowmance-backend/internal/infra/db/mongo"
	mysqldb "github.com/glowmance/glowmance-backend/internal/infra/db/mysql"
	postgresdb "github.com/glowmance/glowmance-backend/internal/infra/db/postgres"
	"github.com/glowmance/glowmance-backend/internal/infra/httpserver"
	inciclient "github.com/glowmance/glowmance-backend/internal/infra/inci"
	"github.com/glowmance/glowmance-backend/internal/infra/ml"
	productapi "github.com/glowmance/glowmance-backend/internal/infra/products/external"
	minioStore "github.com/glowmance/glowmance-backend/internal/infra/storage"
	"github.com/glowmance/glowmance-backend/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect relational DB (authoritative store)
	var (
		db        *sql.DB
		repo      analysis.Repository
		faultRepo faults.Repository
	)
	switch cfg.Database.Driver {
	case "mysql":
		db, err = mysqldb.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		repo = mysqldb.NewAnalysisRepository(db)
		faultRepo = mysqldb.NewFaultRepository(db)
	default:
		db, err = postgresdb.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		repo = postgresdb.NewAnalysisRepository(db)
		faultRepo = postgresdb.NewFaultRepository(db)
	}
	defer db.Close()

	checkers := map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}

	// mongo mirror opsional: tanpa URI pipeline jalan tanpa mirror
	var mirror analysis.Mirror
	if cfg.Mongo.URI != "" {
		mongoClient, err := mongodb.Connect(ctx, cfg.Mongo.URI)
		if err != nil {
			log.Fatalf("mongo connect error: %v", err)
		}
		defer mongoClient.Disconnect(context.Background())

		imageLogs, err := mongodb.NewImageLogRepository(ctx, mongoClient, cfg.Mongo.Database)
		if err != nil {
			log.Fatalf("mongo init error: %v", err)
		}
		mirror = imageLogs
		checkers["mongo"] = middleware.CheckFunc(func(ctx context.Context) error {
			return mongoClient.Ping(ctx, nil)
		})
	} else {
		log.Println("mongo uri not configured, analytics mirror disabled")
	}

	// cache: redis kalau dikonfigurasi, kalau tidak in-memory
	var productCache domaincache.Cache
	if cfg.Redis.Addr != "" {
		rdb, err := infracache.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatalf("redis connect error: %v", err)
		}
		defer rdb.Close()
		productCache = rdb
		checkers["redis"] = middleware.CheckFunc(rdb.Ping)
	} else {
		log.Println("redis not configured, using in-process cache")
		productCache = infracache.NewMemory()
	}

	// init minio
	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		log.Fatalf("minio init error: %v", err)
	}

	// init ML classifier
	mlClient := ml.NewClient(cfg.ML.BaseURL, cfg.MLTimeout())
	checkers["ml"] = middleware.CheckFunc(mlClient.Health)

	gateway := &classify.Service{
		Classifier: mlClient,
		Faults:     faultRepo,
		OnReal:     middleware.IncrementClassificationsReal,
		OnDegraded: middleware.IncrementClassificationsDegraded,
	}

	// product sources: external API (kalau enabled) lalu katalog lokal
	localCatalog, err := catalog.Load()
	if err != nil {
		log.Fatalf("catalog load error: %v", err)
	}
	sources := []domainproducts.Source{}
	if cfg.ProductAPI.Enabled && cfg.ProductAPI.URL != "" {
		sources = append(sources, productapi.NewClient(
			cfg.ProductAPI.URL, cfg.ProductAPI.APIKey, cfg.ProductAPITimeout()))
	}
	sources = append(sources, &catalog.Source{Catalog: localCatalog})

	productsSvc := &appproducts.Service{
		Sources:    sources,
		Catalog:    localCatalog,
		Cache:      productCache,
		TTL:        cfg.CacheTTL(),
		Faults:     faultRepo,
		OnFallback: middleware.IncrementProductSourceFallbacks,
	}

	analysisSvc := &appanalysis.Service{
		Repo:           repo,
		Mirror:         mirror,
		Images:         store,
		Gateway:        gateway,
		Resolver:       productsSvc,
		Faults:         faultRepo,
		Clock:          application.SystemClock{},
		OnAnalysis:     middleware.IncrementAnalyses,
		OnMirrorFailed: middleware.IncrementMirrorWritesFailed,
	}

	inciSvc := appinci.NewService(inciclient.NewClient())

	handler := httpserver.NewRouter(httpserver.Deps{
		AnalysisSvc: analysisSvc,
		ProductsSvc: productsSvc,
		InciSvc:     inciSvc,
		FaultsRepo:  faultRepo,
		JWTSecret:   []byte(cfg.Auth.JWTSecret),
		Checkers:    checkers,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s (db driver=%s)", addr, cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
