package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kleenkanteen/cityflow/internal/entity"
	"github.com/kleenkanteen/cityflow/internal/repository"
	"github.com/kleenkanteen/cityflow/internal/service"
	"github.com/kleenkanteen/cityflow/internal/testutil"
)

func setupComplaintTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	// No object storage in tests: photo endpoints report storage unavailable.
	complaintSvc := service.NewComplaintService(repos.Complaint, nil, "")
	handler := NewComplaintHandler(complaintSvc)

	router := testutil.SetupRouter()
	router.POST("/api/v1/complaints", handler.Create)
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/complaints", handler.List)
	api.PATCH("/complaints/:id", handler.Update)
	api.DELETE("/complaints/:id", handler.Delete)
	api.POST("/complaints/:id/photo", handler.UploadPhoto)
	api.GET("/complaints/:id/photo", handler.DownloadPhoto)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestComplaintIntakeAndResolution(t *testing.T) {
	env := setupComplaintTest(t)
	token := testutil.DefaultTestToken()

	// Anonymous public intake: name and email optional.
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/complaints", map[string]interface{}{
		"description": "Pothole growing at the intersection",
		"location":    "King St W & Bathurst St",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	complaintID := data["id"].(string)
	if data["status"] != entity.ComplaintStatusPending {
		t.Fatalf("expected pending status, got %v", data["status"])
	}

	// Description and location are both required.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/complaints",
		map[string]interface{}{"description": "no location"}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without location, got %d: %s", w.Code, w.Body.String())
	}

	// Move to in_progress: no resolution timestamp yet.
	w = testutil.DoRequest(env.Router, http.MethodPatch, "/api/v1/complaints/"+complaintID,
		map[string]interface{}{"status": "in_progress", "reviewed": true}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var complaint entity.Complaint
	env.DB.Where("id = ?", complaintID).First(&complaint)
	if complaint.Resolved != nil {
		t.Fatal("expected no resolved timestamp while in progress")
	}
	if !complaint.Reviewed {
		t.Fatal("expected complaint marked reviewed")
	}

	// Resolving stamps the timestamp once.
	w = testutil.DoRequest(env.Router, http.MethodPatch, "/api/v1/complaints/"+complaintID,
		map[string]interface{}{"status": "resolved"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	env.DB.Where("id = ?", complaintID).First(&complaint)
	if complaint.Resolved == nil {
		t.Fatal("expected resolved timestamp")
	}
	firstResolved := *complaint.Resolved

	w = testutil.DoRequest(env.Router, http.MethodPatch, "/api/v1/complaints/"+complaintID,
		map[string]interface{}{"status": "resolved"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	env.DB.Where("id = ?", complaintID).First(&complaint)
	if !complaint.Resolved.Equal(firstResolved) {
		t.Fatal("expected resolved timestamp to be stamped only once")
	}

	// Unknown status is rejected by binding.
	w = testutil.DoRequest(env.Router, http.MethodPatch, "/api/v1/complaints/"+complaintID,
		map[string]interface{}{"status": "escalated"}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad status, got %d: %s", w.Code, w.Body.String())
	}
}

func TestComplaintPhotoWithoutStorage(t *testing.T) {
	env := setupComplaintTest(t)
	token := testutil.DefaultTestToken()

	complaint := entity.Complaint{Description: "Flooded underpass", Location: "Dundas St E", Status: entity.ComplaintStatusPending}
	if err := env.DB.Create(&complaint).Error; err != nil {
		t.Fatalf("Failed to seed complaint: %v", err)
	}

	// No photo attached yet: download is a 404 regardless of storage.
	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/complaints/"+complaint.ID+"/photo", nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with no photo, got %d: %s", w.Code, w.Body.String())
	}

	// Upload with storage disabled is a 400, not a crash.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "pothole.jpg")
	if err != nil {
		t.Fatalf("Failed to build multipart body: %v", err)
	}
	fw.Write([]byte("not-really-a-jpeg"))
	mw.Close()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/complaints/"+complaint.ID+"/photo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 with storage disabled, got %d: %s", rec.Code, rec.Body.String())
	}

	// Missing file part is also a 400.
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/complaints/"+complaint.ID+"/photo", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without file, got %d: %s", w.Code, w.Body.String())
	}
}

func TestComplaintListFilterAndDelete(t *testing.T) {
	env := setupComplaintTest(t)
	token := testutil.DefaultTestToken()

	seed := []entity.Complaint{
		{Description: "Broken swing", Location: "Riverdale Park", Status: entity.ComplaintStatusPending},
		{Description: "Graffiti", Location: "Underpass", Status: entity.ComplaintStatusResolved},
	}
	for i := range seed {
		if err := env.DB.Create(&seed[i]).Error; err != nil {
			t.Fatalf("Failed to seed complaint: %v", err)
		}
	}

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/complaints?status=pending", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	items := resp["data"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 pending complaint, got %d", len(items))
	}

	w = testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/complaints/"+seed[1].ID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Deleting again is a 404.
	w = testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/complaints/"+seed[1].ID, nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on double delete, got %d: %s", w.Code, w.Body.String())
	}
}
