package handler

import (
	"net/http"
	"testing"

	"github.com/kleenkanteen/cityflow/internal/entity"
	"github.com/kleenkanteen/cityflow/internal/service"
	"github.com/kleenkanteen/cityflow/internal/testutil"
)

func TestDashboardSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewDashboardHandler(service.NewDashboardService(db))

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/dashboard/summary", handler.Summary)

	seeds := []interface{}{
		&entity.Asset{Name: "Hydrant 12", Lng: -79.4, Lat: 43.7, Color: "#ef4444"},
		&entity.Asset{Name: "Hydrant 13", Lng: -79.41, Lat: 43.71, Color: "#ef4444"},
		&entity.Supplier{Name: "Active Co", IsActive: true},
		&entity.Supplier{Name: "Dormant Co", IsActive: false},
		&entity.Complaint{Description: "Noise", Location: "Main St", Status: entity.ComplaintStatusPending},
		&entity.Complaint{Description: "Done", Location: "Main St", Status: entity.ComplaintStatusResolved},
		&entity.InventoryItem{Name: "Cones", Quantity: 10},
	}
	for _, s := range seeds {
		if err := db.Create(s).Error; err != nil {
			t.Fatalf("Failed to seed: %v", err)
		}
	}

	w := testutil.DoRequest(router, http.MethodGet, "/api/v1/dashboard/summary", nil, testutil.DefaultTestToken())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})

	checks := map[string]float64{
		"assets":           2,
		"active_suppliers": 1,
		"open_complaints":  1,
		"inventory_items":  1,
		"draft_orders":     0,
	}
	for field, want := range checks {
		if got := data[field].(float64); got != want {
			t.Fatalf("expected %s=%v, got %v", field, want, got)
		}
	}
}
