package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Ajeyanth/SafeServeBackend/internal/model"
	"github.com/Ajeyanth/SafeServeBackend/internal/utils"
)

// ErrUsernameExists is returned when a registration collides with an
// existing username.
var ErrUsernameExists = errors.New("username already exists")

// Defaults for the restaurant created alongside an owner registration.
const (
	defaultRestaurantLocation = "Default Location"
	defaultRestaurantCuisine  = "General"
)

// UserRepo provides persistence for the users table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,username,email,password_hash,role,dietary_restrictions,created_at,updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	var role string
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &role,
		&u.DietaryRestrictions, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	r, ok := model.ParseRole(role)
	if !ok {
		return model.User{}, fmt.Errorf("unknown role %q for user %d", role, u.ID)
	}
	u.Role = r
	return u, nil
}

// Create inserts a user and returns its ID. The password is hashed here so
// plain text never reaches the database layer boundary.
func (r *UserRepo) Create(ctx context.Context, username, email, password string, role model.Role, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, role) VALUES (?,?,?,?)",
		username, strings.ToLower(strings.TrimSpace(email)), hash, role.String())
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? LIMIT 1",
		strings.TrimSpace(username))
	return scanUser(row)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
	return scanUser(row)
}

// UpdateDietaryRestrictions replaces the caller's dietary restrictions
// list. Only the owning user may reach this through the API.
func (r *UserRepo) UpdateDietaryRestrictions(ctx context.Context, id uint64, restrictions string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET dietary_restrictions=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
		restrictions, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// RegisterOwner creates an OWNER user together with their default
// restaurant in one transaction. Either both rows exist afterwards or
// neither does; a user must never exist without a restaurant immediately
// after registration. Duplicate usernames abort the whole unit with
// ErrUsernameExists.
func (r *UserRepo) RegisterOwner(ctx context.Context, username, email, password string, cost int) (model.User, model.Restaurant, error) {
	username = strings.TrimSpace(username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, model.Restaurant{}, err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.User{}, model.Restaurant{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, role) VALUES (?,?,?,?)",
		username, strings.ToLower(strings.TrimSpace(email)), hash, model.RoleOwner.String())
	if err != nil {
		if isDuplicate(err) {
			err = ErrUsernameExists
		}
		return model.User{}, model.Restaurant{}, err
	}
	uid, err := res.LastInsertId()
	if err != nil {
		return model.User{}, model.Restaurant{}, err
	}

	rest := model.Restaurant{
		OwnerID:     uint64(uid),
		Name:        fmt.Sprintf("%s's Restaurant", username),
		Location:    defaultRestaurantLocation,
		CuisineType: defaultRestaurantCuisine,
	}
	res, err = tx.ExecContext(ctx,
		"INSERT INTO restaurants (owner_id, name, location, cuisine_type) VALUES (?,?,?,?)",
		rest.OwnerID, rest.Name, rest.Location, rest.CuisineType)
	if err != nil {
		return model.User{}, model.Restaurant{}, err
	}
	rid, err := res.LastInsertId()
	if err != nil {
		return model.User{}, model.Restaurant{}, err
	}
	rest.ID = uint64(rid)

	if err = tx.Commit(); err != nil {
		return model.User{}, model.Restaurant{}, err
	}

	u, err := r.GetByID(ctx, uint64(uid))
	if err != nil {
		return model.User{}, model.Restaurant{}, err
	}
	return u, rest, nil
}
