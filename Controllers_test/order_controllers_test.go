package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sugoph/sugo-backend/models"
)

func TestCreateOrder(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	w := doJSON(r, http.MethodPost, "/orders", "", checkoutBody([]map[string]interface{}{
		grillItem("Liempo Rice", 100, 2),
		grillItem("Halo-Halo", 80, 1),
	}))
	assert.Equal(t, http.StatusCreated, w.Code)

	data := decodeData(t, w)
	orderID := uint(data["order_id"].(float64))
	assert.NotZero(t, orderID)

	var order models.Order
	assert.NoError(t, db.Preload("Items").First(&order, orderID).Error)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Len(t, order.Items, 2)

	// 3.4 km falls in the 2-5 km band (PHP 50)
	assert.Equal(t, 50.0, order.DeliveryFee)
	assert.Equal(t, 280.0, order.Subtotal)
	// total = subtotal + fee + tip
	assert.InDelta(t, 350.0, order.Total, 0.001)

	// Cost frozen at checkout from the default 30% commission
	assert.InDelta(t, 76.92, order.Items[0].Cost, 0.01)

	assert.NotNil(t, order.CancelCutoffAt)
	assert.True(t, order.CancelCutoffAt.After(order.CreatedAt))
}

func TestCreateOrder_RejectsEmptyItems(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	w := doJSON(r, http.MethodPost, "/orders", "", checkoutBody(nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrder_RejectsNegativeMoney(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	for _, field := range []string{"tip", "priority_fee", "discount", "distance_km"} {
		t.Run(field, func(t *testing.T) {
			body := checkoutBody([]map[string]interface{}{grillItem("Liempo Rice", 100, 1)})
			body[field] = -40.0
			w := doJSON(r, http.MethodPost, "/orders", "", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	var count int64
	assert.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCreateOrder_RejectsMissingLandmark(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	body := checkoutBody([]map[string]interface{}{grillItem("Liempo Rice", 100, 1)})
	delete(body, "landmark")
	w := doJSON(r, http.MethodPost, "/orders", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrder_RejectsTwoRestaurants(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	w := doJSON(r, http.MethodPost, "/orders", "", checkoutBody([]map[string]interface{}{
		grillItem("Liempo Rice", 100, 1),
		{
			"restaurant_name": "Lutong Bahay",
			"vendor_slug":     "lutong-bahay",
			"name":            "Adobo Meal",
			"price":           130,
			"quantity":        1,
		},
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrder_AllowsRestaurantPlusGrocery(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	w := doJSON(r, http.MethodPost, "/orders", "", checkoutBody([]map[string]interface{}{
		grillItem("Liempo Rice", 100, 1),
		{
			"restaurant_name": "Palengke Mart",
			"vendor_slug":     "palengke-mart",
			"name":            "Eggs (dozen)",
			"price":           95,
			"quantity":        1,
		},
	}))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateOrder_RejectsOutsideServiceArea(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	body := checkoutBody([]map[string]interface{}{grillItem("Liempo Rice", 100, 1)})
	body["distance_km"] = 40.0
	w := doJSON(r, http.MethodPost, "/orders", "", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetOrderByID(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	orderID := createTestOrder(t, r)

	w := doJSON(r, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/orders/99999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAllOrders_FiltersByStatus(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)
	createTestOrder(t, r)
	orderID := createTestOrder(t, r)
	assert.NoError(t, db.Model(&models.Order{}).Where("id = ?", orderID).
		Update("status", models.StatusConfirmed).Error)

	token := staffToken(t)
	w := doJSON(r, http.MethodGet, "/admin/orders?status=pending", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)
	assert.NotContains(t, w.Body.String(), `"status":"confirmed"`)
}

func TestGetAllOrders_RequiresStaff(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	w := doJSON(r, http.MethodGet, "/admin/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/admin/orders", driverToken(t, 1), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
