// This file defines repository methods for restaurants. Ownership checks
// are built into the queries themselves: every owner-scoped lookup filters
// by id AND owner_id in a single predicate, so "exists but owned by someone
// else" and "does not exist" are indistinguishable to callers. Handlers
// surface both as 404, which keeps restaurant ids unprobeable.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Ajeyanth/SafeServeBackend/internal/model"
)

// ErrRestaurantNotFound is returned when a restaurant cannot be found, or
// exists but does not belong to the requesting owner.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// RestaurantRepo encapsulates all database queries related to restaurants.
type RestaurantRepo struct {
	db *sql.DB
}

// NewRestaurantRepo constructs a RestaurantRepo with the provided DB handle.
func NewRestaurantRepo(db *sql.DB) *RestaurantRepo {
	return &RestaurantRepo{db: db}
}

const restaurantColumns = "id, owner_id, name, location, cuisine_type, last_updated"

func scanRestaurant(s interface{ Scan(...any) error }) (*model.Restaurant, error) {
	var r model.Restaurant
	if err := s.Scan(&r.ID, &r.OwnerID, &r.Name, &r.Location, &r.CuisineType, &r.LastUpdated); err != nil {
		return nil, err
	}
	return &r, nil
}

// Create inserts a new restaurant. On success the ID and LastUpdated
// fields are populated from the stored row.
func (r *RestaurantRepo) Create(ctx context.Context, rest *model.Restaurant) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO restaurants (owner_id, name, location, cuisine_type) VALUES (?, ?, ?, ?)",
		rest.OwnerID, rest.Name, rest.Location, rest.CuisineType)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rest.ID = uint64(id)

	// Follow-up SELECT to populate DB-assigned defaults (last_updated).
	row := r.db.QueryRowContext(ctx,
		"SELECT "+restaurantColumns+" FROM restaurants WHERE id = ?", rest.ID)
	stored, err := scanRestaurant(row)
	if err != nil {
		return err
	}
	*rest = *stored
	return nil
}

// GetByID fetches a restaurant by id regardless of owner. Used by the
// public read endpoints.
func (r *RestaurantRepo) GetByID(ctx context.Context, id uint64) (*model.Restaurant, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+restaurantColumns+" FROM restaurants WHERE id = ?", id)
	rest, err := scanRestaurant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return rest, nil
}

// GetByIDAndOwner resolves a restaurant for a write path: the row must
// match both id and owner. A miss for either reason returns
// ErrRestaurantNotFound.
func (r *RestaurantRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Restaurant, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+restaurantColumns+" FROM restaurants WHERE id = ? AND owner_id = ?", id, ownerID)
	rest, err := scanRestaurant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return rest, nil
}

// ListAll returns every restaurant ordered by id, for public browsing.
func (r *RestaurantRepo) ListAll(ctx context.Context) ([]*model.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+restaurantColumns+" FROM restaurants ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Restaurant
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rest)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies new profile fields if the restaurant belongs to the given
// owner, refreshing last_updated. ErrRestaurantNotFound covers both a
// missing row and a foreign owner.
func (r *RestaurantRepo) Update(ctx context.Context, id, ownerID uint64, name, location, cuisineType string) (*model.Restaurant, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE restaurants
		 SET name = ?, location = ?, cuisine_type = ?, last_updated = CURRENT_TIMESTAMP
		 WHERE id = ? AND owner_id = ?`,
		name, location, cuisineType, id, ownerID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguishing "not found" from "not yours" would leak existence.
		if _, err := r.GetByIDAndOwner(ctx, id, ownerID); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// DeleteByIDAndOwner removes a restaurant together with its categories and
// menu items in one transaction. The ownership predicate is part of the
// initial lookup, so a foreign restaurant is reported exactly like a
// missing one.
func (r *RestaurantRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var found uint64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM restaurants WHERE id = ? AND owner_id = ?", id, ownerID).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrRestaurantNotFound
		}
		return err
	}

	// Cascade: menu items first, then categories, then the restaurant row.
	if _, err = tx.ExecContext(ctx, "DELETE FROM menu_items WHERE restaurant_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM categories WHERE restaurant_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM restaurants WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// Touch refreshes last_updated; called after nested writes (categories,
// menu items) so the restaurant reflects its latest mutation time.
func (r *RestaurantRepo) Touch(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE restaurants SET last_updated = CURRENT_TIMESTAMP WHERE id = ?", id)
	return err
}
