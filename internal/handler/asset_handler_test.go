package handler

import (
	"net/http"
	"testing"

	"github.com/kleenkanteen/cityflow/internal/entity"
	"github.com/kleenkanteen/cityflow/internal/repository"
	"github.com/kleenkanteen/cityflow/internal/service"
	"github.com/kleenkanteen/cityflow/internal/testutil"
	"github.com/shopspring/decimal"
)

func setupAssetTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	assetSvc := service.NewAssetService(repos.Asset)
	handler := NewAssetHandler(assetSvc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.POST("/assets", handler.Create)
	api.GET("/assets", handler.List)
	api.GET("/assets/:id", handler.Get)
	api.PATCH("/assets/:id", handler.Update)
	api.DELETE("/assets/:id", handler.Delete)
	api.POST("/assets/:id/logs", handler.CreateLog)
	api.GET("/assets/:id/logs", handler.ListLogs)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestAssetCRUDAndLogs(t *testing.T) {
	env := setupAssetTest(t)
	token := testutil.DefaultTestToken()

	// Coordinates are required, including zero values.
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/assets", map[string]interface{}{
		"name":  "Well Pump 3",
		"color": "#1d4ed8",
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without coordinates, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/assets", map[string]interface{}{
		"name":  "Well Pump 3",
		"lng":   -79.3832,
		"lat":   43.6532,
		"color": "#1d4ed8",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	assetID := resp["data"].(map[string]interface{})["id"].(string)

	// Maintenance log on the asset.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/assets/"+assetID+"/logs", map[string]interface{}{
		"title":       "Seal replacement",
		"description": "Replaced worn shaft seal",
		"job_type":    "repair",
		"technician":  "M. Osei",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/assets/"+assetID+"/logs", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp = testutil.ParseResponse(w)
	logs := resp["data"].([]interface{})
	if len(logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(logs))
	}

	// Logs against a missing asset 404.
	w = testutil.DoRequest(env.Router, http.MethodGet,
		"/api/v1/assets/b0000000-0000-4000-8000-000000000099/logs", nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

// TestAssetDeleteDetachesPartOrders verifies that deleting an asset removes
// its maintenance logs but only detaches part orders referencing it.
func TestAssetDeleteDetachesPartOrders(t *testing.T) {
	env := setupAssetTest(t)
	token := testutil.DefaultTestToken()

	asset := &entity.Asset{Name: "Streetlight 88", Lng: -79.38, Lat: 43.65, Color: "#f59e0b"}
	if err := env.DB.Create(asset).Error; err != nil {
		t.Fatalf("Failed to seed asset: %v", err)
	}
	log := &entity.MaintenanceLog{
		Title: "Ballast swap", Description: "Swapped ballast", JobType: "repair",
		Technician: "J. Park", AssetID: asset.ID,
	}
	if err := env.DB.Create(log).Error; err != nil {
		t.Fatalf("Failed to seed log: %v", err)
	}

	supplier := &entity.Supplier{Name: "Lighting Co", IsActive: true}
	if err := env.DB.Create(supplier).Error; err != nil {
		t.Fatalf("Failed to seed supplier: %v", err)
	}
	part := &entity.Part{
		PartNumber: "BL-9", Name: "Ballast", Category: "electrical",
		MinimumOrderQuantity: 1, LeadTimeDays: 7, SupplierID: supplier.ID, IsActive: true,
	}
	if err := env.DB.Create(part).Error; err != nil {
		t.Fatalf("Failed to seed part: %v", err)
	}
	order := &entity.BatchOrder{
		BatchNumber: "BO-20260801-000002", SupplierID: supplier.ID,
		Status: entity.BatchOrderStatusDraft, OrderedBy: testutil.TestUserID,
	}
	if err := env.DB.Create(order).Error; err != nil {
		t.Fatalf("Failed to seed batch order: %v", err)
	}
	line := &entity.PartOrder{
		BatchOrderID: order.ID, PartID: part.ID, Quantity: 1,
		UnitPrice: decimal.RequireFromString("12.00"), TotalPrice: decimal.RequireFromString("12.00"),
		RequestedBy: testutil.TestUserID, RequestReason: "ballast failure",
		UrgencyLevel: entity.UrgencyHigh, AssetID: &asset.ID,
	}
	if err := env.DB.Create(line).Error; err != nil {
		t.Fatalf("Failed to seed part order: %v", err)
	}

	w := testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/assets/"+asset.ID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var logs int64
	env.DB.Model(&entity.MaintenanceLog{}).Count(&logs)
	if logs != 0 {
		t.Fatalf("expected maintenance logs removed, found %d", logs)
	}

	var updated entity.PartOrder
	if err := env.DB.Where("id = ?", line.ID).First(&updated).Error; err != nil {
		t.Fatalf("expected part order to survive asset delete: %v", err)
	}
	if updated.AssetID != nil {
		t.Fatalf("expected asset reference cleared, got %v", *updated.AssetID)
	}
}
