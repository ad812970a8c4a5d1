// Package server wires the application together: configuration, database,
// image storage, services and the HTTP server, plus graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mbertrand/piquante/internal/logging"
	"github.com/mbertrand/piquante/internal/server/config"
	apphttp "github.com/mbertrand/piquante/internal/server/http"
	"github.com/mbertrand/piquante/internal/server/repositories/repomanager"
	"github.com/mbertrand/piquante/internal/server/services"
	"github.com/mbertrand/piquante/internal/server/storage"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	userService  *services.UserService
	sauceService *services.SauceService

	// imageDir is non-empty only for the disk backend; the HTTP server
	// serves it statically under /images/.
	imageDir string
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	var (
		images   storage.ImageStore
		imageDir string
	)
	switch cfg.ImageBackend {
	case config.ImageBackendS3:
		images = storage.NewS3Store(storage.S3Config{
			RootUser:     cfg.S3RootUser,
			RootPassword: cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
	case config.ImageBackendDisk:
		disk, err := storage.NewDiskStore(cfg.ImageDir, cfg.PublicBaseURL)
		if err != nil {
			return nil, fmt.Errorf("image store init error: %w", err)
		}
		images = disk
		imageDir = disk.Dir()
	default:
		return nil, fmt.Errorf("unknown image backend: %q", cfg.ImageBackend)
	}

	us := services.NewUserService(db, rm, cfg)
	ss := services.NewSauceService(db, rm, images, logger)

	return &App{
		config:       cfg,
		logger:       logger,
		userService:  us,
		sauceService: ss,
		imageDir:     imageDir,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := apphttp.NewServer(
		app.config.EndpointAddr,
		app.logger,
		app.userService,
		app.sauceService,
		app.config.SecretKey,
		app.imageDir,
	)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
