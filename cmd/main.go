package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	httpctx "github.com/dtroode/baasproxy/internal/api/http/context"
	"github.com/dtroode/baasproxy/internal/api/http/router"
	httpServer "github.com/dtroode/baasproxy/internal/api/http/server"
	"github.com/dtroode/baasproxy/internal/config"
	"github.com/dtroode/baasproxy/internal/identity/firebase"
	"github.com/dtroode/baasproxy/internal/logger"
	"github.com/dtroode/baasproxy/internal/model"
	"github.com/dtroode/baasproxy/internal/ratelimit"
	"github.com/dtroode/baasproxy/internal/repository/postgres"
	"github.com/dtroode/baasproxy/internal/server"
	"github.com/dtroode/baasproxy/internal/service"
	firestoreStore "github.com/dtroode/baasproxy/internal/storage/firestore"
	minioStore "github.com/dtroode/baasproxy/internal/storage/minio"
	mongoStore "github.com/dtroode/baasproxy/internal/storage/mongo"
	sqliteStore "github.com/dtroode/baasproxy/internal/storage/sqlite"
	"github.com/dtroode/baasproxy/internal/telemetry"
	"github.com/dtroode/baasproxy/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.Firebase.ProjectID == "" {
		logger.Fatal("FIREBASE_PROJECT_ID is required")
	}
	if cfg.Firebase.APIKey == "" && cfg.Firebase.IdentityEndpoint == "" {
		logger.Fatal("FIREBASE_API_KEY is required")
	}

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		logger.Fatal("failed to initialize tracing", "error", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to flush traces", "error", err)
		}
	}()

	documents, closeDocuments, err := openDocumentStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize document store", "backend", cfg.Documents.Backend, "error", err)
	}
	defer func() {
		if err := closeDocuments(); err != nil {
			logger.Error("failed to close document store", "error", err)
		}
	}()

	identity, err := firebase.New(ctx, firebase.Options{
		APIKey:   cfg.Firebase.APIKey,
		Endpoint: cfg.Firebase.IdentityEndpoint,
	})
	if err != nil {
		logger.Fatal("failed to initialize identity provider", "error", err)
	}

	certClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   10 * time.Second,
	}
	verifier := token.NewVerifier(cfg.Firebase.ProjectID, token.NewCertSource(cfg.Firebase.CertsURL, certClient))

	limiter, closeLimiter := newSignInLimiter(ctx, cfg.Redis, logger)
	defer closeLimiter()

	authService := service.NewAuth(identity, documents, cfg.Documents.ProfileCollection, logger)
	profileService := service.NewProfile(identity, documents, cfg.Documents.ProfileCollection, logger)
	documentService := service.NewDocuments(documents, cfg.Documents.DefaultCollection, cfg.Documents.AllowedCollections, logger)
	ctxMgr := httpctx.NewManager()

	r := router.New(authService, profileService, documentService, verifier, limiter, ctxMgr, logger).
		WithTrustedProxies(cfg.HTTP.TrustedProxies).
		WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port), cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout)

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "backend", cfg.Documents.Backend)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func openDocumentStore(ctx context.Context, cfg *config.Config) (model.DocumentStore, func() error, error) {
	switch cfg.Documents.Backend {
	case config.BackendPostgres:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewDocumentRepository(db), db.Close, nil
	case config.BackendSQLite:
		store, err := sqliteStore.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case config.BackendMinio:
		client, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
			Secure: cfg.Storage.UseSSL,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		store, err := minioStore.NewClient(ctx, client, cfg.Storage.Bucket)
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { return nil }, nil
	case config.BackendMongo:
		store, err := mongoStore.New(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		store, err := firestoreStore.New(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
}

// newSignInLimiter returns a nil limiter when REDIS_ADDR is empty or the
// server is unreachable at startup.
func newSignInLimiter(ctx context.Context, cfg config.Redis, logger *logger.Logger) (model.SignInLimiter, func()) {
	if cfg.Addr == "" {
		logger.Info("sign-in rate limiting disabled")
		return nil, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	closeClient := func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close redis client", "error", err)
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, sign-in rate limiting disabled", "addr", cfg.Addr, "error", err)
		closeClient()
		return nil, func() {}
	}

	return ratelimit.NewRedis(client, cfg.SignInLimit, cfg.SignInWindow), closeClient
}
