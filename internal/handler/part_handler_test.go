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

func setupPartTest(t *testing.T) (*testutil.TestEnv, string) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	partSvc := service.NewPartService(repos.Part, repos.Supplier)
	handler := NewPartHandler(partSvc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.POST("/parts", handler.Create)
	api.GET("/parts", handler.List)
	api.GET("/parts/:id", handler.Get)
	api.PATCH("/parts/:id", handler.Update)
	api.DELETE("/parts/:id", handler.Delete)

	supplier := &entity.Supplier{Name: "Valve World", IsActive: true}
	if err := db.Create(supplier).Error; err != nil {
		t.Fatalf("Failed to seed supplier: %v", err)
	}

	return &testutil.TestEnv{DB: db, Router: router, T: t}, supplier.ID
}

func TestPartCreateDefaultsAndRounding(t *testing.T) {
	env, supplierID := setupPartTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/parts", map[string]interface{}{
		"part_number": "VLV-200",
		"name":        "Gate Valve",
		"category":    "valves",
		"unit_price":  "10.005",
		"supplier_id": supplierID,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	partID := data["id"].(string)

	var part entity.Part
	if err := env.DB.Where("id = ?", partID).First(&part).Error; err != nil {
		t.Fatalf("Failed to fetch part: %v", err)
	}
	if !part.UnitPrice.Valid || !part.UnitPrice.Decimal.Equal(decimal.RequireFromString("10.01")) {
		t.Fatalf("expected unit price rounded to 10.01, got %v", part.UnitPrice)
	}
	if part.MinimumOrderQuantity != 1 {
		t.Fatalf("expected default MOQ 1, got %d", part.MinimumOrderQuantity)
	}
	if part.LeadTimeDays != 7 {
		t.Fatalf("expected default lead time 7, got %d", part.LeadTimeDays)
	}

	// A part with no price is allowed; its price stays null.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/parts", map[string]interface{}{
		"part_number": "VLV-201",
		"name":        "Check Valve",
		"category":    "valves",
		"supplier_id": supplierID,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPartNumberUniquePerSupplier(t *testing.T) {
	env, supplierID := setupPartTest(t)
	token := testutil.DefaultTestToken()

	body := map[string]interface{}{
		"part_number": "VLV-300",
		"name":        "Ball Valve",
		"category":    "valves",
		"supplier_id": supplierID,
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/parts", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Same part number, same supplier: rejected.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/parts", body, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate part number, got %d: %s", w.Code, w.Body.String())
	}

	// Same part number under a different supplier is fine.
	other := &entity.Supplier{Name: "Other Valves", IsActive: true}
	if err := env.DB.Create(other).Error; err != nil {
		t.Fatalf("Failed to seed supplier: %v", err)
	}
	body["supplier_id"] = other.ID
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/parts", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for same part number at another supplier, got %d: %s", w.Code, w.Body.String())
	}

	// Unknown supplier is a 404.
	body["supplier_id"] = "b0000000-0000-4000-8000-000000000099"
	body["part_number"] = "VLV-301"
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/parts", body, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown supplier, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPartListFilters(t *testing.T) {
	env, supplierID := setupPartTest(t)
	token := testutil.DefaultTestToken()

	seed := []entity.Part{
		{PartNumber: "F-1", Name: "Air Filter", Category: "filters", MinimumOrderQuantity: 1, LeadTimeDays: 7, SupplierID: supplierID, IsActive: true},
		{PartNumber: "F-2", Name: "Oil Filter", Category: "filters", MinimumOrderQuantity: 1, LeadTimeDays: 7, SupplierID: supplierID, IsActive: false},
		{PartNumber: "V-1", Name: "Relief Valve", Category: "valves", MinimumOrderQuantity: 1, LeadTimeDays: 7, SupplierID: supplierID, IsActive: true},
	}
	for i := range seed {
		if err := env.DB.Create(&seed[i]).Error; err != nil {
			t.Fatalf("Failed to seed part: %v", err)
		}
	}

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/parts?category=filters&active=true", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	items := resp["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 active filter part, got %d", len(items))
	}

	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/parts?search=filter", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp = testutil.ParseResponse(w)
	items = resp["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("expected 2 matches for 'filter', got %d", len(items))
	}
}
