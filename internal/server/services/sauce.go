package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mbertrand/piquante/internal/common"
	"github.com/mbertrand/piquante/internal/logging"
	"github.com/mbertrand/piquante/internal/server/models"
	"github.com/mbertrand/piquante/internal/server/repositories/repomanager"
	"github.com/mbertrand/piquante/internal/server/storage"
)

// Heat is a 1..10 scale in the submission form.
const (
	minHeat = 1
	maxHeat = 10
)

// SauceService implements the sauce lifecycle: CRUD with the associated
// image blob, ownership enforcement on mutations, and the three-state
// like/dislike toggle.
type SauceService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      storage.ImageStore
	logger      logging.Logger
}

func NewSauceService(db *sql.DB, m repomanager.RepositoryManager, images storage.ImageStore, logger logging.Logger) *SauceService {
	return &SauceService{
		db:          db,
		repomanager: m,
		images:      images,
		logger:      logger.With("module", "sauces"),
	}
}

// List returns all sauces with resolvable image URLs.
func (s *SauceService) List(ctx context.Context) ([]*models.Sauce, error) {
	repo := s.repomanager.Sauces(s.db)

	result, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, sauce := range result {
		if err := s.fillImageURL(ctx, sauce); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Get returns one sauce by id.
func (s *SauceService) Get(ctx context.Context, id string) (*models.Sauce, error) {
	repo := s.repomanager.Sauces(s.db)

	sauce, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.fillImageURL(ctx, sauce); err != nil {
		return nil, err
	}
	return sauce, nil
}

// Create validates the submission, stores the image, and persists the record
// with zeroed counters and empty voter sets. Fields are validated before the
// image is stored so a rejected submission leaves no blob behind; if the
// insert itself fails, the just-stored image is released best-effort.
func (s *SauceService) Create(ctx context.Context, ownerID string, in models.SauceInput, filename string, image []byte) (*models.Sauce, error) {
	if len(image) == 0 {
		return nil, common.ErrorMissingImage
	}
	if err := validateSauceInput(in); err != nil {
		return nil, err
	}

	key, err := s.images.Save(ctx, filename, image)
	if err != nil {
		return nil, err
	}

	sauce := &models.Sauce{
		UserID:        ownerID,
		Name:          in.Name,
		Manufacturer:  in.Manufacturer,
		Description:   in.Description,
		MainPepper:    in.MainPepper,
		Ingredients:   in.Ingredients,
		Heat:          in.Heat,
		ImageKey:      key,
		Likes:         0,
		Dislikes:      0,
		UsersLiked:    []string{},
		UsersDisliked: []string{},
	}

	repo := s.repomanager.Sauces(s.db)
	created, err := repo.Create(ctx, sauce)
	if err != nil {
		s.releaseImage(ctx, key)
		return nil, err
	}

	if err := s.fillImageURL(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update replaces the editable fields of a sauce owned by callerID. When new
// image bytes are supplied the new blob is stored, the record repointed, and
// only then is the previous blob released, so a failure partway never leaves
// the record referencing a missing image.
func (s *SauceService) Update(ctx context.Context, id, callerID string, in models.SauceInput, filename string, image []byte) (*models.Sauce, error) {
	repo := s.repomanager.Sauces(s.db)

	current, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.UserID != callerID {
		return nil, common.ErrorForbidden
	}
	if err := validateSauceInput(in); err != nil {
		return nil, err
	}

	if err := repo.UpdateFields(ctx, id, callerID, in); err != nil {
		return nil, err
	}

	if len(image) > 0 {
		newKey, err := s.images.Save(ctx, filename, image)
		if err != nil {
			return nil, err
		}
		if err := repo.UpdateImage(ctx, id, newKey); err != nil {
			s.releaseImage(ctx, newKey)
			return nil, err
		}
		s.releaseImage(ctx, current.ImageKey)
	}

	return s.Get(ctx, id)
}

// Delete removes the sauce owned by callerID together with its stored image.
// A failed image release is logged and the record is still deleted.
func (s *SauceService) Delete(ctx context.Context, id, callerID string) error {
	repo := s.repomanager.Sauces(s.db)

	sauce, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if sauce.UserID != callerID {
		return common.ErrorForbidden
	}

	s.releaseImage(ctx, sauce.ImageKey)

	return repo.Delete(ctx, id, callerID)
}

// Vote applies a three-state toggle for (sauce, caller):
//
//	+1 — add a like; fails with ErrorVoteConflict if the caller already
//	     voted either way and has not cleared first
//	-1 — add a dislike, symmetric
//	 0 — clear the caller's vote; success even when there was none
//
// Counters move by exactly 1 and always together with the voter set: the
// repository issues each vote as one atomic statement.
func (s *SauceService) Vote(ctx context.Context, id, callerID string, direction int) error {
	repo := s.repomanager.Sauces(s.db)

	switch direction {
	case models.VoteLike:
		return s.disambiguateVote(ctx, id, repo.AddLike(ctx, id, callerID))
	case models.VoteDislike:
		return s.disambiguateVote(ctx, id, repo.AddDislike(ctx, id, callerID))
	case models.VoteClear:
		return repo.ClearVote(ctx, id, callerID)
	default:
		return common.ErrorValidation
	}
}

// disambiguateVote splits the zero-rows outcome of a like/dislike statement:
// a missing sauce is NotFound, an existing one means the caller had already
// voted.
func (s *SauceService) disambiguateVote(ctx context.Context, id string, voteErr error) error {
	if !errors.Is(voteErr, common.ErrorVoteConflict) {
		return voteErr
	}
	if _, err := s.repomanager.Sauces(s.db).Get(ctx, id); err != nil {
		return err
	}
	return common.ErrorVoteConflict
}

func (s *SauceService) fillImageURL(ctx context.Context, sauce *models.Sauce) error {
	url, err := s.images.URL(ctx, sauce.ImageKey)
	if err != nil {
		return err
	}
	sauce.ImageURL = url
	return nil
}

func (s *SauceService) releaseImage(ctx context.Context, key string) {
	if err := s.images.Release(ctx, key); err != nil {
		s.logger.Warn(ctx, "failed to release image", "key", key, "error", err)
	}
}

func validateSauceInput(in models.SauceInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return common.ErrorValidation
	}
	if in.Heat < minHeat || in.Heat > maxHeat {
		return common.ErrorValidation
	}
	return nil
}
