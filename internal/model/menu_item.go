package model

import "database/sql"

// MenuItem represents a dish on a restaurant's menu. RestaurantID comes
// from the request path at creation and is never client-writable. The
// category reference is optional; when set it must point at a category of
// the same restaurant. CategoryName is populated by list/detail queries
// via a LEFT JOIN so responses can nest the category without a second
// round trip.
type MenuItem struct {
	ID           uint64         // menu_items.id
	RestaurantID uint64         // menu_items.restaurant_id
	Name         string         // menu_items.name
	Ingredients  string         // menu_items.ingredients (comma-separated)
	Allergens    string         // menu_items.allergens (comma-separated, may be empty)
	CategoryID   sql.NullInt64  // menu_items.category_id (nullable)
	CategoryName sql.NullString // categories.name from the read-side join
	LastUpdated  string         // menu_items.last_updated
}
