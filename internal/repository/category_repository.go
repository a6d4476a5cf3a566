package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Ajeyanth/SafeServeBackend/internal/model"
)

// ErrCategoryNotFound is returned when a category lookup misses, including
// the case where the id exists but under a different restaurant.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepo provides persistence for menu categories. A category's
// restaurant is fixed at creation; no method here ever updates
// categories.restaurant_id.
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo constructs a CategoryRepo with the given DB handle.
func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// Create inserts a new category under the given restaurant. The caller is
// responsible for having resolved restaurant ownership first.
func (r *CategoryRepo) Create(ctx context.Context, cat *model.Category) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO categories (restaurant_id, name) VALUES (?, ?)",
		cat.RestaurantID, cat.Name)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	cat.ID = uint64(id)
	return nil
}

// GetByIDAndRestaurant fetches a category only if it belongs to the given
// restaurant. This single predicate is the cross-entity check used when a
// menu item write references a category: a category from another
// restaurant is simply not found.
func (r *CategoryRepo) GetByIDAndRestaurant(ctx context.Context, id, restaurantID uint64) (*model.Category, error) {
	var cat model.Category
	err := r.db.QueryRowContext(ctx,
		"SELECT id, restaurant_id, name FROM categories WHERE id = ? AND restaurant_id = ?",
		id, restaurantID).Scan(&cat.ID, &cat.RestaurantID, &cat.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &cat, nil
}

// ListByRestaurant returns all categories of a restaurant ordered by id.
func (r *CategoryRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]*model.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, restaurant_id, name FROM categories WHERE restaurant_id = ? ORDER BY id",
		restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Category
	for rows.Next() {
		cat := new(model.Category)
		if err := rows.Scan(&cat.ID, &cat.RestaurantID, &cat.Name); err != nil {
			return nil, err
		}
		out = append(out, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByIDAndRestaurant removes a category and clears category_id on the
// menu items that referenced it, in one transaction. Items survive with a
// null category; only the grouping disappears.
func (r *CategoryRepo) DeleteByIDAndRestaurant(ctx context.Context, id, restaurantID uint64) error {
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
		"SELECT id FROM categories WHERE id = ? AND restaurant_id = ?", id, restaurantID).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrCategoryNotFound
		}
		return err
	}

	if _, err = tx.ExecContext(ctx,
		"UPDATE menu_items SET category_id = NULL, last_updated = CURRENT_TIMESTAMP WHERE category_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}
