package model

// Category groups menu items within a single restaurant. RestaurantID is
// fixed at creation; a category never moves between restaurants. Deleting
// a category leaves its menu items in place with a cleared category.
type Category struct {
	ID           uint64 // categories.id
	RestaurantID uint64 // categories.restaurant_id
	Name         string // categories.name
}
