package model

// Restaurant represents a venue owned by exactly one user. OwnerID is set
// at creation and never changes; ownership does not transfer. LastUpdated
// is refreshed by the repository on every mutation.
type Restaurant struct {
	ID          uint64 // restaurants.id
	OwnerID     uint64 // restaurants.owner_id
	Name        string // restaurants.name
	Location    string // restaurants.location
	CuisineType string // restaurants.cuisine_type
	LastUpdated string // restaurants.last_updated
}
