package model

// User represents an application user record as stored in the `users`
// table. DietaryRestrictions holds a free-text comma-separated list of
// allergies (e.g. "nuts,dairy") and is only ever updated by the user it
// belongs to. Handlers define separate response types with JSON tags; the
// password hash never leaves the repository/handler boundary.
type User struct {
	ID                  uint64 // users.id
	Username            string // users.username (unique)
	Email               string // users.email
	PasswordHash        string // users.password_hash (bcrypt)
	Role                Role   // users.role (OWNER or CUSTOMER)
	DietaryRestrictions string // users.dietary_restrictions
	CreatedAt           string // users.created_at
	UpdatedAt           string // users.updated_at
}
