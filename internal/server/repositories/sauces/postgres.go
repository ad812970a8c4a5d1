// Package sauces provides the PostgreSQL-backed repository for sauce records,
// including the single-statement vote mutations that keep the like/dislike
// counters and voter sets consistent under concurrent voters.
package sauces

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mbertrand/piquante/internal/common"
	"github.com/mbertrand/piquante/internal/dbx"
	"github.com/mbertrand/piquante/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const sauceColumns = `id, user_id, name, manufacturer, description, main_pepper, ingredients, heat, image_key, likes, dislikes, users_liked, users_disliked`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSauce(row rowScanner) (*models.Sauce, error) {
	var s models.Sauce
	var ingredients, liked, disliked []byte

	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Manufacturer, &s.Description,
		&s.MainPepper, &ingredients, &s.Heat, &s.ImageKey, &s.Likes, &s.Dislikes,
		&liked, &disliked)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(ingredients, &s.Ingredients); err != nil {
		return nil, fmt.Errorf("decoding ingredients: %w", err)
	}
	if err := json.Unmarshal(liked, &s.UsersLiked); err != nil {
		return nil, fmt.Errorf("decoding users_liked: %w", err)
	}
	if err := json.Unmarshal(disliked, &s.UsersDisliked); err != nil {
		return nil, fmt.Errorf("decoding users_disliked: %w", err)
	}

	// empty sets marshal as [], not null
	if s.Ingredients == nil {
		s.Ingredients = []string{}
	}
	if s.UsersLiked == nil {
		s.UsersLiked = []string{}
	}
	if s.UsersDisliked == nil {
		s.UsersDisliked = []string{}
	}

	return &s, nil
}

// List returns every sauce in store order.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Sauce, error) {
	query := `SELECT ` + sauceColumns + ` FROM sauces`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Sauce{}
	for rows.Next() {
		s, err := scanSauce(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Sauce, error) {
	query := `SELECT ` + sauceColumns + ` FROM sauces WHERE id = $1`

	s, err := scanSauce(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

// Create inserts the sauce with zeroed counters and empty voter sets and
// returns it with the store-assigned id.
func (r *PostgresRepository) Create(ctx context.Context, sauce *models.Sauce) (*models.Sauce, error) {
	ingredients, err := json.Marshal(sauce.Ingredients)
	if err != nil {
		return nil, fmt.Errorf("encoding ingredients: %w", err)
	}

	query := `
		INSERT INTO sauces (user_id, name, manufacturer, description, main_pepper, ingredients, heat, image_key, likes, dislikes, users_liked, users_disliked)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8, 0, 0, '[]'::jsonb, '[]'::jsonb)
		RETURNING id
	`
	err = r.db.QueryRowContext(ctx, query,
		sauce.UserID, sauce.Name, sauce.Manufacturer, sauce.Description,
		sauce.MainPepper, string(ingredients), sauce.Heat, sauce.ImageKey).Scan(&sauce.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	sauce.Likes = 0
	sauce.Dislikes = 0
	sauce.UsersLiked = []string{}
	sauce.UsersDisliked = []string{}

	return sauce, nil
}

// UpdateFields replaces the caller-editable fields of the sauce owned by
// ownerID. A missing or foreign row updates nothing and yields ErrorNotFound.
func (r *PostgresRepository) UpdateFields(ctx context.Context, id, ownerID string, in models.SauceInput) error {
	ingredients, err := json.Marshal(in.Ingredients)
	if err != nil {
		return fmt.Errorf("encoding ingredients: %w", err)
	}

	query := `
		UPDATE sauces
		SET name = $3, manufacturer = $4, description = $5, main_pepper = $6, ingredients = $7::jsonb, heat = $8
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, ownerID,
		in.Name, in.Manufacturer, in.Description, in.MainPepper, string(ingredients), in.Heat)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

// UpdateImage points the record at a new stored image.
func (r *PostgresRepository) UpdateImage(ctx context.Context, id, imageKey string) error {
	query := `UPDATE sauces SET image_key = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, imageKey)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

// Delete removes the sauce owned by ownerID.
func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := `DELETE FROM sauces WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

// AddLike records a like by userID: the counter increments by exactly 1 and
// the user enters users_liked in the same statement. The guards reject voters
// already present in either set, so the statement updates no row when the
// vote would be a duplicate (or the sauce is gone) and ErrorVoteConflict is
// returned for the caller to disambiguate.
func (r *PostgresRepository) AddLike(ctx context.Context, id, userID string) error {
	query := `
		UPDATE sauces
		SET likes = likes + 1, users_liked = users_liked || to_jsonb($2::text)
		WHERE id = $1
		  AND NOT (users_liked @> to_jsonb($2::text))
		  AND NOT (users_disliked @> to_jsonb($2::text))
	`
	return r.execVote(ctx, query, id, userID, common.ErrorVoteConflict)
}

// AddDislike is symmetric to AddLike against the dislike counter and set.
func (r *PostgresRepository) AddDislike(ctx context.Context, id, userID string) error {
	query := `
		UPDATE sauces
		SET dislikes = dislikes + 1, users_disliked = users_disliked || to_jsonb($2::text)
		WHERE id = $1
		  AND NOT (users_liked @> to_jsonb($2::text))
		  AND NOT (users_disliked @> to_jsonb($2::text))
	`
	return r.execVote(ctx, query, id, userID, common.ErrorVoteConflict)
}

// ClearVote removes userID's vote, whichever direction it was, decrementing
// the matching counter in the same statement. The CASE expressions read the
// pre-update row, so membership and counter cannot diverge. Clearing when the
// user never voted matches the row but changes nothing, which is the required
// no-op success.
func (r *PostgresRepository) ClearVote(ctx context.Context, id, userID string) error {
	query := `
		UPDATE sauces
		SET likes = likes - (CASE WHEN users_liked @> to_jsonb($2::text) THEN 1 ELSE 0 END),
		    dislikes = dislikes - (CASE WHEN users_disliked @> to_jsonb($2::text) THEN 1 ELSE 0 END),
		    users_liked = users_liked - $2::text,
		    users_disliked = users_disliked - $2::text
		WHERE id = $1
	`
	return r.execVote(ctx, query, id, userID, common.ErrorNotFound)
}

func (r *PostgresRepository) execVote(ctx context.Context, query, id, userID string, noRowErr error) error {
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return noRowErr
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
