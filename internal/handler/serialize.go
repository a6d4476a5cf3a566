// This file defines the JSON response shapes shared by public and owner
// endpoints. Menu items nest their category as {id,name} on reads while
// writes accept a separate write-only category_id; restaurants embed
// their full menu on reads. Internal fields such as password hashes and
// sql.Null* representations never appear here.
package handler

import "github.com/Ajeyanth/SafeServeBackend/internal/model"

type categoryPart struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type menuItemResponse struct {
	ID          uint64        `json:"id"`
	Name        string        `json:"name"`
	Ingredients string        `json:"ingredients"`
	Allergens   string        `json:"allergens"`
	Category    *categoryPart `json:"category"`
	LastUpdated string        `json:"last_updated"`
	Restaurant  uint64        `json:"restaurant"`
}

type restaurantResponse struct {
	ID          uint64             `json:"id"`
	Owner       uint64             `json:"owner"`
	Name        string             `json:"name"`
	Location    string             `json:"location"`
	CuisineType string             `json:"cuisine_type"`
	LastUpdated string             `json:"last_updated"`
	MenuItems   []menuItemResponse `json:"menu_items"`
}

type userResponse struct {
	ID                  uint64 `json:"id"`
	Username            string `json:"username"`
	Email               string `json:"email"`
	Role                string `json:"role"`
	DietaryRestrictions string `json:"dietary_restrictions"`
}

func newMenuItemResponse(m *model.MenuItem) menuItemResponse {
	resp := menuItemResponse{
		ID:          m.ID,
		Name:        m.Name,
		Ingredients: m.Ingredients,
		Allergens:   m.Allergens,
		LastUpdated: m.LastUpdated,
		Restaurant:  m.RestaurantID,
	}
	if m.CategoryID.Valid {
		resp.Category = &categoryPart{
			ID:   uint64(m.CategoryID.Int64),
			Name: m.CategoryName.String,
		}
	}
	return resp
}

func newMenuItemResponses(items []*model.MenuItem) []menuItemResponse {
	out := make([]menuItemResponse, 0, len(items))
	for _, m := range items {
		out = append(out, newMenuItemResponse(m))
	}
	return out
}

func newRestaurantResponse(r *model.Restaurant, items []*model.MenuItem) restaurantResponse {
	return restaurantResponse{
		ID:          r.ID,
		Owner:       r.OwnerID,
		Name:        r.Name,
		Location:    r.Location,
		CuisineType: r.CuisineType,
		LastUpdated: r.LastUpdated,
		MenuItems:   newMenuItemResponses(items),
	}
}

func newUserResponse(u model.User) userResponse {
	return userResponse{
		ID:                  u.ID,
		Username:            u.Username,
		Email:               u.Email,
		Role:                u.Role.String(),
		DietaryRestrictions: u.DietaryRestrictions,
	}
}
