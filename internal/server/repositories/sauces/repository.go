package sauces

import (
	"context"

	"github.com/mbertrand/piquante/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Sauce, error)
	Get(ctx context.Context, id string) (*models.Sauce, error)
	Create(ctx context.Context, sauce *models.Sauce) (*models.Sauce, error)
	UpdateFields(ctx context.Context, id, ownerID string, in models.SauceInput) error
	UpdateImage(ctx context.Context, id, imageKey string) error
	Delete(ctx context.Context, id, ownerID string) error

	// Vote mutations. Each is a single atomic statement: the counter and the
	// voter set always change together, even under concurrent voters.
	AddLike(ctx context.Context, id, userID string) error
	AddDislike(ctx context.Context, id, userID string) error
	ClearVote(ctx context.Context, id, userID string) error
}
