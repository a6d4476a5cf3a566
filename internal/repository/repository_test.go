package repository_test

// Shared fixtures for the repository tests. Each test gets its own
// in-memory SQLite database with the same schema shape the MySQL
// migrations produce, so the SQL under test runs against a real engine
// without requiring a server.

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/Ajeyanth/SafeServeBackend/internal/model"
	"github.com/Ajeyanth/SafeServeBackend/internal/repository"
)

const testSchema = `
CREATE TABLE users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'CUSTOMER',
	dietary_restrictions TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE restaurants (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	owner_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	cuisine_type TEXT NOT NULL DEFAULT '',
	last_updated TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE categories (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	restaurant_id INTEGER NOT NULL,
	name TEXT NOT NULL
);

CREATE TABLE menu_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	restaurant_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	ingredients TEXT NOT NULL DEFAULT '',
	allergens TEXT NOT NULL DEFAULT '',
	category_id INTEGER,
	last_updated TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE refresh_tokens (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	token_hash TEXT NOT NULL UNIQUE,
	expires_at DATETIME NOT NULL,
	revoked_at DATETIME,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Low bcrypt cost keeps the test suite fast.
const testBcryptCost = 4

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory DB.
	db.SetMaxOpenConns(1)
	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// seedUser inserts a user directly and returns its id.
func seedUser(t *testing.T, db *sql.DB, username string, role model.Role) uint64 {
	t.Helper()
	res, err := db.Exec(
		"INSERT INTO users (username, email, password_hash, role) VALUES (?,?,?,?)",
		username, username+"@example.com", "x", role.String())
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return uint64(id)
}

// seedRestaurant inserts a restaurant owned by ownerID and returns its id.
func seedRestaurant(t *testing.T, db *sql.DB, ownerID uint64, name string) uint64 {
	t.Helper()
	res, err := db.Exec(
		"INSERT INTO restaurants (owner_id, name, location, cuisine_type) VALUES (?,?,?,?)",
		ownerID, name, "Test Town", "Fusion")
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return uint64(id)
}

func seedCategory(t *testing.T, db *sql.DB, restaurantID uint64, name string) uint64 {
	t.Helper()
	res, err := db.Exec(
		"INSERT INTO categories (restaurant_id, name) VALUES (?,?)", restaurantID, name)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return uint64(id)
}

func seedMenuItem(t *testing.T, db *sql.DB, restaurantID uint64, name string, categoryID *uint64) uint64 {
	t.Helper()
	var cat any
	if categoryID != nil {
		cat = *categoryID
	}
	res, err := db.Exec(
		"INSERT INTO menu_items (restaurant_id, name, ingredients, allergens, category_id) VALUES (?,?,?,?,?)",
		restaurantID, name, "water, salt", "", cat)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return uint64(id)
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

// newRepos bundles the repositories most tests need.
func newRepos(db *sql.DB) (*repository.RestaurantRepo, *repository.CategoryRepo, *repository.MenuItemRepo) {
	return repository.NewRestaurantRepo(db), repository.NewCategoryRepo(db), repository.NewMenuItemRepo(db)
}

var ctx = context.Background()
