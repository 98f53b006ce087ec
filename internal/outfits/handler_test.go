package outfits_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"wardrobe-backend/internal/analysis"
	"wardrobe-backend/internal/bootstrap"
	"wardrobe-backend/internal/shared/config"
)

func newTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		PublicBaseURL:   "http://localhost:8080",
		ObjectStoreType: "local",
		Env:             "dev",
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

type outfitPayload struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	ImageURL       string         `json:"imageUrl"`
	Name           string         `json:"name"`
	Tags           []string       `json:"tags"`
	AnalysisStatus string         `json:"analysisStatus"`
	Analysis       map[string]any `json:"analysis"`
	IsFavorite     bool           `json:"isFavorite"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func uploadOutfit(t *testing.T, app *bootstrap.App, userID, fileName string) outfitPayload {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	// Min upload size is 1KB.
	if _, err := fileWriter.Write(bytes.Repeat([]byte("x"), 2048)); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.WriteField("name", "weekend look"); err != nil {
		t.Fatalf("write name field: %v", err)
	}
	if err := writer.WriteField("tags", "casual,denim"); err != nil {
		t.Fatalf("write tags field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/outfits?user_id="+userID, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body %s", resp.Code, resp.Body.String())
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	var outfit outfitPayload
	if err := json.Unmarshal(env.Data, &outfit); err != nil {
		t.Fatalf("decode outfit: %v", err)
	}
	return outfit
}

func TestUploadReturnsPendingImmediately(t *testing.T) {
	app := newTestApp(t)

	outfit := uploadOutfit(t, app, "user-1", "outfit.jpg")

	if outfit.ID == "" {
		t.Fatal("expected outfit id")
	}
	if outfit.AnalysisStatus != analysis.StatusPending {
		t.Fatalf("status = %q, want %q", outfit.AnalysisStatus, analysis.StatusPending)
	}
	if outfit.Analysis != nil {
		t.Fatalf("fresh upload must not carry a result, got %v", outfit.Analysis)
	}
	if len(outfit.Tags) != 2 {
		t.Fatalf("tags = %v", outfit.Tags)
	}
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	app := newTestApp(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fw, _ := writer.CreateFormFile("file", "notes.txt")
	_, _ = fw.Write(bytes.Repeat([]byte("x"), 2048))
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/outfits?user_id=user-1", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

func TestUploadRequiresUserID(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/outfits", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	app := newTestApp(t)
	outfit := uploadOutfit(t, app, "user-1", "outfit.jpg")

	req := httptest.NewRequest(http.MethodGet, "/api/outfits/"+outfit.ID+"?user_id=intruder", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.Code)
	}
}

func TestListReturnsUserOutfits(t *testing.T) {
	app := newTestApp(t)
	uploadOutfit(t, app, "user-1", "one.jpg")
	uploadOutfit(t, app, "user-1", "two.png")
	uploadOutfit(t, app, "user-2", "other.jpg")

	req := httptest.NewRequest(http.MethodGet, "/api/outfits?user_id=user-1", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.Code, resp.Body.String())
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	var listed []outfitPayload
	if err := json.Unmarshal(env.Data, &listed); err != nil {
		t.Fatalf("decode outfits: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 outfits, got %d", len(listed))
	}
	for _, o := range listed {
		if o.UserID != "user-1" {
			t.Fatalf("leaked outfit for %q", o.UserID)
		}
	}
}

func TestDeleteThenGet(t *testing.T) {
	app := newTestApp(t)
	outfit := uploadOutfit(t, app, "user-1", "outfit.jpg")

	reqDel := httptest.NewRequest(http.MethodDelete, "/api/outfits/"+outfit.ID+"?user_id=user-1", nil)
	respDel := httptest.NewRecorder()
	app.Router.ServeHTTP(respDel, reqDel)
	if respDel.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body %s", respDel.Code, respDel.Body.String())
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/outfits/"+outfit.ID+"?user_id=user-1", nil)
	respGet := httptest.NewRecorder()
	app.Router.ServeHTTP(respGet, reqGet)
	if respGet.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", respGet.Code)
	}
}

func TestTagLifecycle(t *testing.T) {
	app := newTestApp(t)
	outfit := uploadOutfit(t, app, "user-1", "outfit.jpg")

	addBody := bytes.NewBufferString(`{"tag": "Vintage"}`)
	reqAdd := httptest.NewRequest(http.MethodPost, "/api/outfits/"+outfit.ID+"/tags?user_id=user-1", addBody)
	reqAdd.Header.Set("Content-Type", "application/json")
	respAdd := httptest.NewRecorder()
	app.Router.ServeHTTP(respAdd, reqAdd)
	if respAdd.Code != http.StatusOK {
		t.Fatalf("add tag status = %d, body %s", respAdd.Code, respAdd.Body.String())
	}

	var env envelope
	_ = json.NewDecoder(respAdd.Body).Decode(&env)
	var updated outfitPayload
	_ = json.Unmarshal(env.Data, &updated)
	if !containsString(updated.Tags, "vintage") {
		t.Fatalf("tags after add = %v", updated.Tags)
	}

	// Adding the same tag again conflicts.
	dupBody := bytes.NewBufferString(`{"tag": "vintage"}`)
	reqDup := httptest.NewRequest(http.MethodPost, "/api/outfits/"+outfit.ID+"/tags?user_id=user-1", dupBody)
	reqDup.Header.Set("Content-Type", "application/json")
	respDup := httptest.NewRecorder()
	app.Router.ServeHTTP(respDup, reqDup)
	if respDup.Code != http.StatusConflict {
		t.Fatalf("duplicate tag status = %d, want 409", respDup.Code)
	}

	reqDel := httptest.NewRequest(http.MethodDelete, "/api/outfits/"+outfit.ID+"/tags/vintage?user_id=user-1", nil)
	respDel := httptest.NewRecorder()
	app.Router.ServeHTTP(respDel, reqDel)
	if respDel.Code != http.StatusOK {
		t.Fatalf("remove tag status = %d, body %s", respDel.Code, respDel.Body.String())
	}

	reqMissing := httptest.NewRequest(http.MethodDelete, "/api/outfits/"+outfit.ID+"/tags/vintage?user_id=user-1", nil)
	respMissing := httptest.NewRecorder()
	app.Router.ServeHTTP(respMissing, reqMissing)
	if respMissing.Code != http.StatusNotFound {
		t.Fatalf("remove missing tag status = %d, want 404", respMissing.Code)
	}
}

func TestSearchMatchesTags(t *testing.T) {
	app := newTestApp(t)
	uploadOutfit(t, app, "user-1", "outfit.jpg")

	req := httptest.NewRequest(http.MethodGet, "/api/search?user_id=user-1&q=denim", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("search status = %d, body %s", resp.Code, resp.Body.String())
	}

	var env envelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	var found []outfitPayload
	_ = json.Unmarshal(env.Data, &found)
	if len(found) != 1 {
		t.Fatalf("expected 1 match, got %d", len(found))
	}

	reqEmpty := httptest.NewRequest(http.MethodGet, "/api/search?user_id=user-1", nil)
	respEmpty := httptest.NewRecorder()
	app.Router.ServeHTTP(respEmpty, reqEmpty)
	if respEmpty.Code != http.StatusBadRequest {
		t.Fatalf("empty query status = %d, want 400", respEmpty.Code)
	}
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
