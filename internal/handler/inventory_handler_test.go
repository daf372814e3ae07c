package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/kleenkanteen/cityflow/internal/entity"
	"github.com/kleenkanteen/cityflow/internal/repository"
	"github.com/kleenkanteen/cityflow/internal/service"
	"github.com/kleenkanteen/cityflow/internal/testutil"
	"go.uber.org/zap"
)

func setupInventoryTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	// No mail client in tests: decision emails are skipped, not sent.
	inventorySvc := service.NewInventoryService(repos.Inventory, nil, zap.NewNop())
	handler := NewInventoryHandler(inventorySvc)

	router := testutil.SetupRouter()
	router.POST("/api/v1/requests", handler.CreateRequest)
	api := testutil.AuthGroup(router, "/api/v1")
	api.POST("/inventory", handler.CreateItem)
	api.GET("/inventory", handler.ListItems)
	api.PATCH("/inventory/:id", handler.UpdateItem)
	api.DELETE("/inventory/:id", handler.DeleteItem)
	api.GET("/requests", handler.ListRequests)
	api.PATCH("/requests/:id", handler.UpdateRequestStatus)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func seedInventoryItem(t *testing.T, env *testutil.TestEnv, name string, qty int) string {
	t.Helper()
	item := &entity.InventoryItem{Name: name, Quantity: qty}
	if err := env.DB.Create(item).Error; err != nil {
		t.Fatalf("Failed to seed inventory item: %v", err)
	}
	return item.ID
}

func TestInventoryItemCRUD(t *testing.T) {
	env := setupInventoryTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/inventory", map[string]interface{}{
		"name":     "Folding Barricade",
		"quantity": 40,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	itemID := resp["data"].(map[string]interface{})["id"].(string)

	// Zero quantity is valid; a missing quantity is not.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/inventory",
		map[string]interface{}{"name": "No Quantity"}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without quantity, got %d: %s", w.Code, w.Body.String())
	}
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/inventory",
		map[string]interface{}{"name": "Out of Stock", "quantity": 0}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 with zero quantity, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodPatch, "/api/v1/inventory/"+itemID,
		map[string]interface{}{"quantity": 35}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp = testutil.ParseResponse(w)
	if resp["data"].(map[string]interface{})["quantity"].(float64) != 35 {
		t.Fatalf("expected quantity 35, got %v", resp["data"])
	}

	w = testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/inventory/"+itemID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var n int64
	env.DB.Model(&entity.InventoryItem{}).Where("id = ?", itemID).Count(&n)
	if n != 0 {
		t.Fatal("expected item to be deleted")
	}
}

func TestEquipmentRequestIntake(t *testing.T) {
	env := setupInventoryTest(t)
	itemID := seedInventoryItem(t, env, "Traffic Cone Set", 25)

	start := time.Now().AddDate(0, 0, 7)
	end := start.AddDate(0, 0, 3)

	// Public endpoint, no token.
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/requests", map[string]interface{}{
		"requestor_email": "resident@example.com",
		"inventory_id":    itemID,
		"quantity":        4,
		"start_date":      start.Format(time.RFC3339),
		"end_date":        end.Format(time.RFC3339),
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["status"] != entity.RequestStatusPending {
		t.Fatalf("expected pending status, got %v", data["status"])
	}
	// Item name is snapshotted onto the request.
	if data["inventory_item_name"] != "Traffic Cone Set" {
		t.Fatalf("expected item name snapshot, got %v", data["inventory_item_name"])
	}

	// End before start is rejected.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/requests", map[string]interface{}{
		"requestor_email": "resident@example.com",
		"inventory_id":    itemID,
		"quantity":        1,
		"start_date":      end.Format(time.RFC3339),
		"end_date":        start.Format(time.RFC3339),
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted dates, got %d: %s", w.Code, w.Body.String())
	}

	// Unknown item is a 404.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/requests", map[string]interface{}{
		"requestor_email": "resident@example.com",
		"inventory_id":    "b0000000-0000-4000-8000-000000000099",
		"quantity":        1,
		"start_date":      start.Format(time.RFC3339),
		"end_date":        end.Format(time.RFC3339),
	}, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown item, got %d: %s", w.Code, w.Body.String())
	}
}

func TestEquipmentRequestDecision(t *testing.T) {
	env := setupInventoryTest(t)
	token := testutil.DefaultTestToken()
	itemID := seedInventoryItem(t, env, "Portable Generator", 3)

	request := &entity.EquipmentRequest{
		RequestorEmail:    "crew@example.com",
		InventoryID:       itemID,
		InventoryItemName: "Portable Generator",
		Quantity:          1,
		StartDate:         time.Now().AddDate(0, 0, 1),
		EndDate:           time.Now().AddDate(0, 0, 2),
		Status:            entity.RequestStatusPending,
	}
	if err := env.DB.Create(request).Error; err != nil {
		t.Fatalf("Failed to seed request: %v", err)
	}

	// Denying without a reason is rejected.
	w := testutil.DoRequest(env.Router, http.MethodPatch, "/api/v1/requests/"+request.ID,
		map[string]interface{}{"status": "denied"}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 denying without reason, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodPatch, "/api/v1/requests/"+request.ID,
		map[string]interface{}{"status": "denied", "denial_reason": "unit reserved for storm response"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["status"] != entity.RequestStatusDenied {
		t.Fatalf("expected denied status, got %v", data["status"])
	}
	if data["denial_reason"] != "unit reserved for storm response" {
		t.Fatalf("expected denial reason, got %v", data["denial_reason"])
	}

	// Approving clears any previous denial reason.
	w = testutil.DoRequest(env.Router, http.MethodPatch, "/api/v1/requests/"+request.ID,
		map[string]interface{}{"status": "approved"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var updated entity.EquipmentRequest
	env.DB.Where("id = ?", request.ID).First(&updated)
	if updated.Status != entity.RequestStatusApproved {
		t.Fatalf("expected approved, got %s", updated.Status)
	}
	if updated.DenialReason != nil {
		t.Fatalf("expected denial reason cleared, got %v", *updated.DenialReason)
	}

	// Status filter on the list endpoint.
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/requests?status=approved", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp = testutil.ParseResponse(w)
	items := resp["data"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 approved request, got %d", len(items))
	}
}

// TestInventoryDeleteRemovesRequests verifies deleting an item takes its
// rental requests with it.
func TestInventoryDeleteRemovesRequests(t *testing.T) {
	env := setupInventoryTest(t)
	token := testutil.DefaultTestToken()
	itemID := seedInventoryItem(t, env, "Light Tower", 2)

	request := &entity.EquipmentRequest{
		RequestorEmail:    "crew@example.com",
		InventoryID:       itemID,
		InventoryItemName: "Light Tower",
		Quantity:          1,
		StartDate:         time.Now(),
		EndDate:           time.Now().AddDate(0, 0, 1),
		Status:            entity.RequestStatusPending,
	}
	if err := env.DB.Create(request).Error; err != nil {
		t.Fatalf("Failed to seed request: %v", err)
	}

	w := testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/inventory/"+itemID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var n int64
	env.DB.Model(&entity.EquipmentRequest{}).Count(&n)
	if n != 0 {
		t.Fatalf("expected requests removed with item, found %d", n)
	}
}
