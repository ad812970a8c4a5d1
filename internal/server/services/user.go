// Package services contains server-side business logic on top of the
// repositories: account registration/login and the sauce CRUD plus
// vote-toggle rules.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mbertrand/piquante/internal/common"
	"github.com/mbertrand/piquante/internal/server/auth"
	"github.com/mbertrand/piquante/internal/server/config"
	"github.com/mbertrand/piquante/internal/server/models"
	"github.com/mbertrand/piquante/internal/server/repositories/repomanager"
)

// Session is what a successful login yields: the user id and a signed,
// time-limited bearer token carrying only that id.
type Session struct {
	UserID string
	Token  string
}

// UserService handles registration and authentication. Emails are stored in
// masked (reversible) form, which doubles as the uniqueness key; passwords
// are stored as bcrypt hashes.
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// Register creates a new account. A second registration with the same email
// fails with ErrorDuplicateUser; the store's unique constraint is the
// authority, so concurrent signups cannot both win.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Email:        auth.MaskEmail(email),
		PasswordHash: hash,
	}

	repo := s.repomanager.Users(s.db)
	return repo.Create(ctx, user)
}

// Login verifies the credentials and returns the user id with a fresh bearer
// token. An unknown email yields ErrorNotFound, a wrong password
// ErrorInvalidCredentials; the HTTP boundary reports both as 401.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, auth.MaskEmail(email))
	if err != nil {
		return nil, err
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &Session{UserID: user.ID, Token: token}, nil
}

func validateCredentials(email, password string) error {
	if !strings.Contains(email, "@") || strings.TrimSpace(email) == "" {
		return common.ErrorValidation
	}
	if password == "" {
		return common.ErrorValidation
	}
	return nil
}
