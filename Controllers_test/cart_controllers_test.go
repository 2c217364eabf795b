package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCartAdd(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	t.Run("grocery may join a restaurant cart", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/cart/validate", "", map[string]interface{}{
			"cart": []map[string]interface{}{
				{"vendor_slug": "mang-kanor-grill"},
			},
			"item": map[string]interface{}{"vendor_slug": "palengke-mart"},
		})
		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeData(t, w)
		assert.Equal(t, true, data["ok"])
	})

	t.Run("second restaurant is refused with a reason", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/cart/validate", "", map[string]interface{}{
			"cart": []map[string]interface{}{
				{"vendor_slug": "mang-kanor-grill"},
			},
			"item": map[string]interface{}{"restaurant_name": "Lutong Bahay"},
		})
		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeData(t, w)
		assert.Equal(t, false, data["ok"])
		assert.NotEmpty(t, data["reason"])
	})
}

func TestGetDeliveryFee(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	w := doJSON(r, http.MethodGet, "/delivery-fee?distance_km=1.5", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, 29.0, data["fee_php"])

	w = doJSON(r, http.MethodGet, "/delivery-fee?distance_km=11", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w)
	assert.Equal(t, 110.0, data["fee_php"])

	w = doJSON(r, http.MethodGet, "/delivery-fee?distance_km=30", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(r, http.MethodGet, "/delivery-fee?distance_km=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRestaurantEndpoints(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	token := staffToken(t)

	// Staff creates a vendor without a slug; one is derived from the name.
	w := doJSON(r, http.MethodPost, "/admin/restaurants", token, map[string]interface{}{
		"name":                "Aling Nena Carinderia",
		"food_commission_pct": 25,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "aling-nena-carinderia", data["slug"])

	// Public browse sees it.
	w = doJSON(r, http.MethodGet, "/restaurants/aling-nena-carinderia", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/restaurants/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
