package handler_test

// End-to-end handler tests: a real Echo instance with all routes and the
// JWT middleware registered, backed by an in-memory SQLite database. The
// requests below exercise routing, auth and handler logic together, the
// same path a production request takes minus the network.

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/Ajeyanth/SafeServeBackend/internal/config"
	"github.com/Ajeyanth/SafeServeBackend/internal/handler"
	"github.com/Ajeyanth/SafeServeBackend/internal/model"
	"github.com/Ajeyanth/SafeServeBackend/internal/repository"
	"github.com/Ajeyanth/SafeServeBackend/internal/router"
	"github.com/Ajeyanth/SafeServeBackend/internal/utils"
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

var testCfg = config.Config{
	Env:            "test",
	Port:           "0",
	JWTSecret:      "test-secret",
	AccessTTLMin:   5,
	RefreshTTLDays: 7,
	BcryptCost:     4,
	QRBaseURL:      "https://menu.example.com",
}

type testServer struct {
	e  *echo.Echo
	db *sql.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	restaurants := repository.NewRestaurantRepo(db)
	categories := repository.NewCategoryRepo(db)
	menuItems := repository.NewMenuItemRepo(db)

	authH := handler.NewAuthHandler(testCfg, users, tokens)
	publicH := handler.NewPublicHandler(restaurants, menuItems)
	ownerH := handler.NewOwnerHandler(restaurants, categories, menuItems, nil)
	qrH := handler.NewQRHandler(testCfg)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, testCfg.JWTSecret)
	router.RegisterPublic(e, publicH)
	router.RegisterOwner(e, ownerH, qrH, testCfg.JWTSecret)

	return &testServer{e: e, db: db}
}

// do performs a request against the in-memory server. A non-empty token is
// sent as a bearer credential; body may be nil or any JSON-marshalable value.
func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// seedOwner creates a user with a signed access token and one restaurant.
func (s *testServer) seedOwner(t *testing.T, username string) (uint64, uint64, string) {
	t.Helper()
	uid := s.seedUser(t, username, model.RoleOwner)
	rid := s.seedRestaurant(t, uid, username+"'s Place")
	return uid, rid, s.tokenFor(t, uid, model.RoleOwner)
}

func (s *testServer) seedUser(t *testing.T, username string, role model.Role) uint64 {
	t.Helper()
	hash, err := utils.HashPassword("password123", testCfg.BcryptCost)
	require.NoError(t, err)
	res, err := s.db.Exec(
		"INSERT INTO users (username, email, password_hash, role) VALUES (?,?,?,?)",
		username, username+"@example.com", hash, role.String())
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return uint64(id)
}

func (s *testServer) seedRestaurant(t *testing.T, ownerID uint64, name string) uint64 {
	t.Helper()
	res, err := s.db.Exec(
		"INSERT INTO restaurants (owner_id, name, location, cuisine_type) VALUES (?,?,?,?)",
		ownerID, name, "Test Town", "Fusion")
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return uint64(id)
}

func (s *testServer) seedCategory(t *testing.T, restaurantID uint64, name string) uint64 {
	t.Helper()
	res, err := s.db.Exec("INSERT INTO categories (restaurant_id, name) VALUES (?,?)", restaurantID, name)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return uint64(id)
}

func (s *testServer) seedMenuItem(t *testing.T, restaurantID uint64, name string) uint64 {
	t.Helper()
	res, err := s.db.Exec(
		"INSERT INTO menu_items (restaurant_id, name, ingredients) VALUES (?,?,?)",
		restaurantID, name, "water, salt")
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return uint64(id)
}

func (s *testServer) tokenFor(t *testing.T, uid uint64, role model.Role) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testCfg.JWTSecret, uid, role, testCfg.AccessTTLMin)
	require.NoError(t, err)
	return tok.Token
}
