package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Ajeyanth/SafeServeBackend/internal/model"
)

// ErrMenuItemNotFound is returned when a menu item lookup misses within
// the requested restaurant.
var ErrMenuItemNotFound = errors.New("menu item not found")

// MenuItemRepo provides persistence for menu items. Reads LEFT JOIN the
// categories table so the nested category name comes back in one query.
// The restaurant reference is set once at insert and never updated.
type MenuItemRepo struct {
	db *sql.DB
}

// NewMenuItemRepo constructs a MenuItemRepo with the given DB handle.
func NewMenuItemRepo(db *sql.DB) *MenuItemRepo {
	return &MenuItemRepo{db: db}
}

const menuItemSelect = `SELECT m.id, m.restaurant_id, m.name, m.ingredients, m.allergens,
       m.category_id, c.name, m.last_updated
  FROM menu_items m
  LEFT JOIN categories c ON c.id = m.category_id`

func scanMenuItem(s interface{ Scan(...any) error }) (*model.MenuItem, error) {
	var m model.MenuItem
	if err := s.Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Ingredients, &m.Allergens,
		&m.CategoryID, &m.CategoryName, &m.LastUpdated); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a menu item and reloads it so the nested category name
// and last_updated come back populated.
func (r *MenuItemRepo) Create(ctx context.Context, item *model.MenuItem) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO menu_items (restaurant_id, name, ingredients, allergens, category_id) VALUES (?, ?, ?, ?, ?)",
		item.RestaurantID, item.Name, item.Ingredients, item.Allergens, item.CategoryID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByIDAndRestaurant(ctx, uint64(id), item.RestaurantID)
	if err != nil {
		return err
	}
	*item = *stored
	return nil
}

// GetByIDAndRestaurant fetches a menu item scoped to a restaurant. An id
// that exists under a different restaurant is reported as not found.
func (r *MenuItemRepo) GetByIDAndRestaurant(ctx context.Context, id, restaurantID uint64) (*model.MenuItem, error) {
	row := r.db.QueryRowContext(ctx,
		menuItemSelect+" WHERE m.id = ? AND m.restaurant_id = ?", id, restaurantID)
	item, err := scanMenuItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// ListByRestaurant returns all menu items of a restaurant ordered by id.
func (r *MenuItemRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]*model.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx,
		menuItemSelect+" WHERE m.restaurant_id = ? ORDER BY m.id", restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the mutable fields of a menu item and refreshes
// last_updated. The restaurant scope is part of the WHERE clause; the
// restaurant reference itself is never modified.
func (r *MenuItemRepo) Update(ctx context.Context, item *model.MenuItem) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE menu_items
		 SET name = ?, ingredients = ?, allergens = ?, category_id = ?, last_updated = CURRENT_TIMESTAMP
		 WHERE id = ? AND restaurant_id = ?`,
		item.Name, item.Ingredients, item.Allergens, item.CategoryID,
		item.ID, item.RestaurantID)
	if err != nil {
		return err
	}
	// Reload; a zero-row update falls out here as ErrMenuItemNotFound.
	stored, err := r.GetByIDAndRestaurant(ctx, item.ID, item.RestaurantID)
	if err != nil {
		return err
	}
	*item = *stored
	return nil
}

// DeleteByIDAndRestaurant removes a menu item scoped to its restaurant.
func (r *MenuItemRepo) DeleteByIDAndRestaurant(ctx context.Context, id, restaurantID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM menu_items WHERE id = ? AND restaurant_id = ?", id, restaurantID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}
