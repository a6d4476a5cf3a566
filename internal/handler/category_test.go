package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ajeyanth/SafeServeBackend/internal/model"
)

func TestCreateAndListCategories(t *testing.T) {
	s := newTestServer(t)
	_, rid, token := s.seedOwner(t, "owner1")
	path := fmt.Sprintf("/v1/restaurants/%d/categories", rid)

	rec := s.do(t, http.MethodPost, path, token, map[string]any{"name": "Starters"})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "Starters", decodeBody(t, rec)["name"])

	rec = s.do(t, http.MethodPost, path, token, map[string]any{"name": ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decodeBody(t, rec)["errors"].(map[string]any), "name")

	// Listing is open to any authenticated role, not just the owner.
	uid := s.seedUser(t, "guest", model.RoleCustomer)
	customerToken := s.tokenFor(t, uid, model.RoleCustomer)
	rec = s.do(t, http.MethodGet, path, customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decodeBody(t, rec)["items"].([]any)
	require.Len(t, items, 1)

	rec = s.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateCategoryMasksForeignRestaurant(t *testing.T) {
	s := newTestServer(t)
	_, rid, _ := s.seedOwner(t, "owner1")
	_, _, intruderToken := s.seedOwner(t, "owner2")

	rec := s.do(t, http.MethodPost, fmt.Sprintf("/v1/restaurants/%d/categories", rid),
		intruderToken, map[string]any{"name": "Sneaky"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "restaurant not found", decodeBody(t, rec)["error"])
}

func TestDeleteCategoryKeepsItems(t *testing.T) {
	s := newTestServer(t)
	_, rid, token := s.seedOwner(t, "owner1")
	catID := s.seedCategory(t, rid, "Starters")
	itemID := s.seedMenuItem(t, rid, "Bread")
	_, err := s.db.Exec("UPDATE menu_items SET category_id = ? WHERE id = ?", catID, itemID)
	require.NoError(t, err)

	rec := s.do(t, http.MethodDelete,
		fmt.Sprintf("/v1/restaurants/%d/categories/%d", rid, catID), token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// The item survives; its category reads as null.
	rec = s.do(t, http.MethodGet, fmt.Sprintf("/v1/restaurants/%d/menu/%d", rid, itemID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, decodeBody(t, rec)["category"])
}
