package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
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

// TestEndToEndIntegration walks the main delivery flow:
// 0. Seed staff + vendor, login -> token
// 1. Customer places an order (pending)
// 2. Staff confirms, kitchen prepares, order goes ready
// 3. Staff registers a courier and assigns the order
// 4. Courier logs in, picks up and delivers
// 5. Courier earnings show the delivery
// 6. Cash collected and turned in reconciles clean
func TestEndToEndIntegration(t *testing.T) {
	db := setupIntegrationDB()
	r := routerForTest(db)

	staffTok := staffLoginTest(t, r)

	orderID := placeOrderTest(t, r)

	setStatusTest(t, r, "/admin", orderID, staffTok, "confirmed", nil)
	setStatusTest(t, r, "/admin", orderID, staffTok, "preparing", nil)
	setStatusTest(t, r, "/admin", orderID, staffTok, "ready", nil)

	driverID := createDriverTest(t, r, staffTok)
	setStatusTest(t, r, "/admin", orderID, staffTok, "assigned", &driverID)

	driverTok := driverLoginTest(t, r)

	setStatusTest(t, r, "/driver", orderID, driverTok, "picked", nil)
	setStatusTest(t, r, "/driver", orderID, driverTok, "out_for_delivery", nil)
	setStatusTest(t, r, "/driver", orderID, driverTok, "delivered", nil)

	checkDriverEarningsTest(t, r, driverTok)
	cashFlowTest(t, r, orderID, staffTok, driverTok)
}

func setupIntegrationDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	autoMigrate(db)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	db.Create(&models.User{
		Name:     "Test Staff",
		Email:    "staff@example.com",
		Password: string(hashed),
		Role:     "staff",
	})

	db.Create(&models.RestaurantConfig{
		Slug: "mang-kanor-grill",
		Name: "Mang Kanor Grill",
	})

	return db
}

func routerForTest(db *gorm.DB) *gin.Engine {
	cfg := services.DefaultSettlementConfig()
	fees := services.NewFeeCalculator(services.DefaultZones(), services.DefaultServiceCeilingKm)
	notifier := services.NewVendorNotifier(db, "")
	return router.SetupRouter(db, cfg, fees, notifier)
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func request(t *testing.T, r *gin.Engine, method, url, token string, body interface{}, wantCode int) envelope {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != wantCode {
		t.Fatalf("%s %s: want %d, got %d, body=%s", method, url, wantCode, w.Code, w.Body.String())
	}
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%s %s: decode response: %v", method, url, err)
	}
	return resp
}

func staffLoginTest(t *testing.T, r *gin.Engine) string {
	resp := request(t, r, http.MethodPost, "/login", "", map[string]string{
		"email":    "staff@example.com",
		"password": "secret123",
	}, http.StatusOK)

	var data struct {
		Token string `json:"token"`
	}
	json.Unmarshal(resp.Data, &data)
	if data.Token == "" {
		t.Fatalf("staffLoginTest: token empty")
	}
	return data.Token
}

// placeOrderTest -> POST /orders => 201 => status=pending
func placeOrderTest(t *testing.T, r *gin.Engine) uint {
	resp := request(t, r, http.MethodPost, "/orders", "", map[string]interface{}{
		"customer_name":    "Juan Dela Cruz",
		"customer_phone":   "09171234567",
		"delivery_address": "12 Mabini St",
		"landmark":         "beside the red sari-sari store",
		"distance_km":      3.4,
		"tip":              20,
		"items": []map[string]interface{}{
			{
				"restaurant_name": "Mang Kanor Grill",
				"vendor_slug":     "mang-kanor-grill",
				"name":            "Liempo Rice",
				"price":           100,
				"quantity":        2,
			},
		},
	}, http.StatusCreated)

	var data struct {
		OrderID uint `json:"order_id"`
		Order   struct {
			Status string  `json:"status"`
			Total  float64 `json:"total"`
		} `json:"order"`
	}
	json.Unmarshal(resp.Data, &data)
	if data.OrderID == 0 {
		t.Fatalf("placeOrderTest: order id empty")
	}
	if data.Order.Status != "pending" {
		t.Fatalf("placeOrderTest: expected status 'pending', got %s", data.Order.Status)
	}
	// subtotal 200 + zone-2 fee 50 + tip 20
	if data.Order.Total != 270 {
		t.Fatalf("placeOrderTest: expected total 270, got %v", data.Order.Total)
	}
	return data.OrderID
}

func setStatusTest(t *testing.T, r *gin.Engine, prefix string, orderID uint, token, status string, driverID *uint) {
	body := map[string]interface{}{"status": status}
	if driverID != nil {
		body["driver_id"] = *driverID
	}
	url := fmt.Sprintf("%s/orders/%d/status", prefix, orderID)
	request(t, r, http.MethodPatch, url, token, body, http.StatusOK)
}

func createDriverTest(t *testing.T, r *gin.Engine, token string) uint {
	resp := request(t, r, http.MethodPost, "/admin/drivers", token, map[string]interface{}{
		"name":     "Berto",
		"phone":    "09180001111",
		"password": "kuryente",
	}, http.StatusCreated)

	var data struct {
		DriverID uint `json:"driver_id"`
	}
	json.Unmarshal(resp.Data, &data)
	if data.DriverID == 0 {
		t.Fatalf("createDriverTest: driver id empty")
	}
	return data.DriverID
}

func driverLoginTest(t *testing.T, r *gin.Engine) string {
	resp := request(t, r, http.MethodPost, "/driver/login", "", map[string]string{
		"phone":    "09180001111",
		"password": "kuryente",
	}, http.StatusOK)

	var data struct {
		Token string `json:"token"`
	}
	json.Unmarshal(resp.Data, &data)
	if data.Token == "" {
		t.Fatalf("driverLoginTest: token empty")
	}
	return data.Token
}

// checkDriverEarningsTest -> the fresh delivery shows up in today's window.
func checkDriverEarningsTest(t *testing.T, r *gin.Engine, driverTok string) {
	resp := request(t, r, http.MethodGet, "/driver/earnings", driverTok, nil, http.StatusOK)

	var data struct {
		TodayPhp   float64 `json:"today_php"`
		PendingPhp float64 `json:"pending_php"`
	}
	json.Unmarshal(resp.Data, &data)
	// 70% of the 50 fee + 20 tip
	if data.TodayPhp != 55 {
		t.Fatalf("checkDriverEarningsTest: expected today 55, got %v", data.TodayPhp)
	}
	if data.PendingPhp != 55 {
		t.Fatalf("checkDriverEarningsTest: expected pending 55, got %v", data.PendingPhp)
	}
}

func cashFlowTest(t *testing.T, r *gin.Engine, orderID uint, staffTok, driverTok string) {
	url := fmt.Sprintf("/driver/orders/%d/cash-received", orderID)
	request(t, r, http.MethodPatch, url, driverTok, map[string]interface{}{
		"amount": 270,
	}, http.StatusOK)

	url = fmt.Sprintf("/admin/orders/%d/cash-turned-in", orderID)
	resp := request(t, r, http.MethodPatch, url, staffTok, map[string]interface{}{
		"amount": 270,
	}, http.StatusOK)

	var data struct {
		HasVariance bool    `json:"has_variance"`
		Variance    float64 `json:"variance"`
	}
	json.Unmarshal(resp.Data, &data)
	if data.HasVariance {
		t.Fatalf("cashFlowTest: expected clean reconciliation, variance=%v", data.Variance)
	}

	// The variance report stays empty.
	resp = request(t, r, http.MethodGet, "/admin/reports/cash-variance", staffTok, nil, http.StatusOK)
	var report struct {
		Count int `json:"count"`
	}
	json.Unmarshal(resp.Data, &report)
	if report.Count != 0 {
		t.Fatalf("cashFlowTest: expected 0 variances, got %d", report.Count)
	}
}
