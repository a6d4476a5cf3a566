package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateMenuItem(t *testing.T) {
	s := newTestServer(t)
	_, rid, token := s.seedOwner(t, "owner1")
	catID := s.seedCategory(t, rid, "Starters")
	path := fmt.Sprintf("/v1/restaurants/%d/menu", rid)

	rec := s.do(t, http.MethodPost, path, "", map[string]any{"name": "Bread"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, path, token, map[string]any{
		"name":        "Bruschetta",
		"ingredients": "bread, tomato, basil",
		"allergens":   "gluten",
		"category_id": catID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "Bruschetta", body["name"])
	cat := body["category"].(map[string]any)
	require.Equal(t, float64(catID), cat["id"])
	require.Equal(t, "Starters", cat["name"])
	require.Equal(t, float64(rid), body["restaurant"])
}

// Every invalid field is reported in one response, not just the first.
func TestCreateMenuItemAggregatesErrors(t *testing.T) {
	s := newTestServer(t)
	_, rid, token := s.seedOwner(t, "owner1")
	_, otherRid, _ := s.seedOwner(t, "owner2")
	foreignCat := s.seedCategory(t, otherRid, "Theirs")

	rec := s.do(t, http.MethodPost, fmt.Sprintf("/v1/restaurants/%d/menu", rid), token, map[string]any{
		"name":        "  ",
		"category_id": foreignCat,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decodeBody(t, rec)["errors"].(map[string]any)
	require.Contains(t, errs, "name")
	require.Contains(t, errs, "ingredients")
	require.Contains(t, errs, "category_id")
	msgs := errs["category_id"].([]any)
	require.Equal(t, "Category does not belong to this restaurant.", msgs[0])
}

func TestCreateMenuItemRejectsBadCategoryValue(t *testing.T) {
	s := newTestServer(t)
	_, rid, token := s.seedOwner(t, "owner1")

	rec := s.do(t, http.MethodPost, fmt.Sprintf("/v1/restaurants/%d/menu", rid), token, map[string]any{
		"name":        "Soup",
		"ingredients": "stock",
		"category_id": "starters",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decodeBody(t, rec)["errors"].(map[string]any)
	require.Contains(t, errs, "category_id")
}

func TestUpdateMenuItemPutVsPatch(t *testing.T) {
	s := newTestServer(t)
	_, rid, token := s.seedOwner(t, "owner1")
	catID := s.seedCategory(t, rid, "Mains")
	itemID := s.seedMenuItem(t, rid, "Bread")
	_, err := s.db.Exec("UPDATE menu_items SET category_id = ? WHERE id = ?", catID, itemID)
	require.NoError(t, err)
	path := fmt.Sprintf("/v1/restaurants/%d/menu/%d", rid, itemID)

	// PATCH with one field leaves the rest alone, category included.
	rec := s.do(t, http.MethodPatch, path, token, map[string]any{"allergens": "gluten"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "gluten", body["allergens"])
	require.Equal(t, "Bread", body["name"])
	require.NotNil(t, body["category"], "PATCH must not clear an omitted category")

	// PATCH with an explicit null clears the category.
	rec = s.do(t, http.MethodPatch, path, token, map[string]any{"category_id": nil})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, decodeBody(t, rec)["category"])

	// PUT replaces the whole resource and requires name and ingredients.
	rec = s.do(t, http.MethodPut, path, token, map[string]any{"allergens": "none"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decodeBody(t, rec)["errors"].(map[string]any)
	require.Contains(t, errs, "name")
	require.Contains(t, errs, "ingredients")

	_, err = s.db.Exec("UPDATE menu_items SET category_id = ? WHERE id = ?", catID, itemID)
	require.NoError(t, err)
	rec = s.do(t, http.MethodPut, path, token, map[string]any{
		"name":        "Focaccia",
		"ingredients": "flour, olive oil",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	require.Equal(t, "Focaccia", body["name"])
	require.Nil(t, body["category"], "PUT with category omitted clears it")
}

// Item writes resolve the owning restaurant first; an intruder sees 404
// for the restaurant, never a hint that the item exists.
func TestMenuItemWritesMaskForeignOwnership(t *testing.T) {
	s := newTestServer(t)
	_, rid, _ := s.seedOwner(t, "owner1")
	itemID := s.seedMenuItem(t, rid, "Bread")
	_, _, intruderToken := s.seedOwner(t, "owner2")
	path := fmt.Sprintf("/v1/restaurants/%d/menu/%d", rid, itemID)

	for _, method := range []string{http.MethodPut, http.MethodPatch, http.MethodDelete} {
		rec := s.do(t, method, path, intruderToken, map[string]any{"name": "Hijacked", "ingredients": "x"})
		require.Equal(t, http.StatusNotFound, rec.Code, method)
		require.Equal(t, "restaurant not found", decodeBody(t, rec)["error"], method)
	}

	var name string
	require.NoError(t, s.db.QueryRow("SELECT name FROM menu_items WHERE id = ?", itemID).Scan(&name))
	require.Equal(t, "Bread", name)
}

func TestDeleteMenuItem(t *testing.T) {
	s := newTestServer(t)
	_, rid, token := s.seedOwner(t, "owner1")
	itemID := s.seedMenuItem(t, rid, "Bread")
	path := fmt.Sprintf("/v1/restaurants/%d/menu/%d", rid, itemID)

	rec := s.do(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "menu item not found", decodeBody(t, rec)["error"])
}
