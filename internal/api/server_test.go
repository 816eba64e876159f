package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/foodshedmap/foodshedmap/internal/config"
)

func fakeSheets(t *testing.T, fail bool) *httptest.Server {
	t.Helper()
	grids := map[string][][]string{
		"Addresses!A:N": {
			{"Category", "Name", "Geocode", "Address", "Description", "Location Image",
				"BIPOC Owned", "Woman Owned", "Certified Organic", "School Site", "Food Bank Partner"},
			{"Farm", "Green Acres", "37.1, -122.1"},
			{"Hub", "Valley Hub", "38.0, -121.0"},
		},
		"Distributions!A:N": {
			{"Hub", "Distribution Site", "Delivery Date"},
			{"Valley Hub", "Green Acres", "5/14/2021"},
		},
		"Purchases!A:N": {
			{"Hub Organization", "Farm Name", "Contract", "2021 June"},
			{"Valley Hub", "Green Acres", "CSA", "$100"},
		},
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if fail {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"code": 403, "message": "The caller does not have permission", "status": "PERMISSION_DENIED"},
			})
			return
		}
		idx := strings.Index(r.URL.Path, "/values/")
		grid := grids[r.URL.Path[idx+len("/values/"):]]
		json.NewEncoder(w).Encode(map[string]any{"values": grid})
	}))
}

func testServer(t *testing.T, sheetsURL string) *Server {
	t.Helper()
	schema, err := config.LoadSchema()
	if err != nil {
		t.Fatal(err)
	}
	return NewServer(config.Config{
		Port:          "0",
		SpreadsheetID: "test-sheet",
		SheetsBaseURL: sheetsURL,
		CORSOrigins:   []string{"http://localhost:3000"},
		Schema:        schema,
	})
}

func TestHealth(t *testing.T) {
	s := testServer(t, "http://unused.invalid")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestLocationsRequiresAuthorization(t *testing.T) {
	s := testServer(t, "http://unused.invalid")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/locations", nil)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["error"] == "" {
		t.Error("expected error message in body")
	}
}

func TestLocationsReturnsDataset(t *testing.T) {
	sheets := fakeSheets(t, false)
	defer sheets.Close()
	s := testServer(t, sheets.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/locations", nil)
	req.Header.Set("Authorization", "ya29.token")
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Locations       []json.RawMessage `json:"locations"`
		Distributions   []json.RawMessage `json:"distributions"`
		Purchases       []json.RawMessage `json:"purchases"`
		Contracts       []string          `json:"contracts"`
		AvailableMonths []string          `json:"availableMonths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Locations) != 2 || len(body.Distributions) != 1 || len(body.Purchases) != 1 {
		t.Errorf("unexpected payload sizes: %d locations, %d distributions, %d purchases",
			len(body.Locations), len(body.Distributions), len(body.Purchases))
	}
	if len(body.Contracts) != 1 || body.Contracts[0] != "CSA" {
		t.Errorf("unexpected contracts %v", body.Contracts)
	}
	if len(body.AvailableMonths) != 2 {
		t.Errorf("unexpected available months %v", body.AvailableMonths)
	}
}

func TestLocationsPropagatesUpstreamStatus(t *testing.T) {
	sheets := fakeSheets(t, true)
	defer sheets.Close()
	s := testServer(t, sheets.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/locations", nil)
	req.Header.Set("Authorization", "expired-token")
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["error"] != "The caller does not have permission" {
		t.Errorf("expected upstream message, got %q", body["error"])
	}
}
