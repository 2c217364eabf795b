package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sugoph/sugo-backend/models"
	"github.com/sugoph/sugo-backend/router"
	"github.com/sugoph/sugo-backend/services"
	"github.com/sugoph/sugo-backend/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// setupTestDB -> in-memory sqlite with the full schema and two vendors.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Driver{},
		&models.RestaurantConfig{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payout{},
		&models.PayoutOrder{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	db.Create(&models.RestaurantConfig{
		Slug: "mang-kanor-grill",
		Name: "Mang Kanor Grill",
	})
	db.Create(&models.RestaurantConfig{
		Slug:      "palengke-mart",
		Name:      "Palengke Mart",
		IsGrocery: true,
	})
	return db
}

func setupRouter(db *gorm.DB) *gin.Engine {
	cfg := services.DefaultSettlementConfig()
	fees := services.NewFeeCalculator(services.DefaultZones(), services.DefaultServiceCeilingKm)
	notifier := services.NewVendorNotifier(db, "")
	return router.SetupRouter(db, cfg, fees, notifier)
}

func staffToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateToken(1, "staff")
	if err != nil {
		t.Fatalf("failed to generate staff token: %v", err)
	}
	return token
}

func driverToken(t *testing.T, driverID uint) string {
	t.Helper()
	token, err := utils.GenerateToken(driverID, "driver")
	if err != nil {
		t.Fatalf("failed to generate driver token: %v", err)
	}
	return token
}

func doJSON(r *gin.Engine, method, url, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	data, _ := resp["data"].(map[string]interface{})
	return data
}

// checkoutBody is a valid two-vendor order request used across tests.
func checkoutBody(items []map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"customer_name":    "Juan Dela Cruz",
		"customer_phone":   "+639171234567",
		"delivery_address": "12 Mabini St",
		"landmark":         "beside the red sari-sari store",
		"distance_km":      3.4,
		"tip":              20,
		"items":            items,
	}
}

func grillItem(name string, price float64, qty int) map[string]interface{} {
	return map[string]interface{}{
		"restaurant_name": "Mang Kanor Grill",
		"vendor_slug":     "mang-kanor-grill",
		"name":            name,
		"price":           price,
		"quantity":        qty,
	}
}

func createTestOrder(t *testing.T, r *gin.Engine) uint {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/orders", "", checkoutBody([]map[string]interface{}{
		grillItem("Liempo Rice", 100, 1),
	}))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected order creation to succeed, got %d: %s", w.Code, w.Body.String())
	}
	data := decodeData(t, w)
	id, _ := data["order_id"].(float64)
	return uint(id)
}
