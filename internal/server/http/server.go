// Package http exposes the REST API over chi: auth endpoints, sauce CRUD,
// the like endpoint, and static image serving for the disk backend.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/mbertrand/piquante/internal/logging"
	"github.com/mbertrand/piquante/internal/server/models"
	"github.com/mbertrand/piquante/internal/server/services"
)

// userService and sauceService are the slices of the service layer the
// handlers need; tests substitute fakes.
type userService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
}

type sauceService interface {
	List(ctx context.Context) ([]*models.Sauce, error)
	Get(ctx context.Context, id string) (*models.Sauce, error)
	Create(ctx context.Context, ownerID string, in models.SauceInput, filename string, image []byte) (*models.Sauce, error)
	Update(ctx context.Context, id, callerID string, in models.SauceInput, filename string, image []byte) (*models.Sauce, error)
	Delete(ctx context.Context, id, callerID string) error
	Vote(ctx context.Context, id, callerID string, direction int) error
}

type Server struct {
	address   string
	logger    logging.Logger
	users     userService
	sauces    sauceService
	jwtSecret []byte

	// imageDir, when non-empty, is served statically under /images/
	// (disk backend only; the S3 backend hands out presigned URLs).
	imageDir string
}

func NewServer(address string, logger logging.Logger, us userService, ss sauceService, secretKey, imageDir string) *Server {
	return &Server{
		address:   address,
		logger:    logger.With("module", "http_server"),
		users:     us,
		sauces:    ss,
		jwtSecret: []byte(secretKey),
		imageDir:  imageDir,
	}
}

const shutdownTimeout = 5 * time.Second

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
