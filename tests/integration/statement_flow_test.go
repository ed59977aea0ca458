package integration

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/justmenoble-ux/mano-web-app/internal/extraction"
)

func (app *testApp) upload(t *testing.T, token, filename, content, owner string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if owner != "" {
		if err := w.WriteField("owner", owner); err != nil {
			t.Fatalf("failed to write owner field: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/v1/statements/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func TestStatementFlow_UploadProcessAndDelete(t *testing.T) {
	app := setupApp(t)
	token, _ := newToken(t)
	app.Extractor.candidates = []extraction.Candidate{
		{Date: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), Vendor: "Loblaws", Amount: 4250, Category: "Groceries"},
		{Date: time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC), Vendor: "Netflix", Amount: 1599, Category: "Subscriptions"},
	}

	// Step 1: Upload a CSV statement for member1
	rec := app.upload(t, token, "jan.csv", "date,vendor,amount\n2024-01-05,Loblaws,42.50\n", "member1")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 uploading, got %d: %s", rec.Code, rec.Body.String())
	}
	statement := parseJSON(t, rec)["statement"].(map[string]interface{})
	statementID := statement["id"].(float64)
	if statement["status"] != "pending" {
		t.Errorf("expected pending status, got %v", statement["status"])
	}

	// Step 2: Process it
	rec = app.request("POST", fmt.Sprintf("/api/v1/statements/%.0f/process", statementID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 processing, got %d: %s", rec.Code, rec.Body.String())
	}

	// Step 3: The statement now carries its extracted transactions with the inherited owner
	rec = app.request("GET", fmt.Sprintf("/api/v1/statements/%.0f", statementID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	got := parseJSON(t, rec)["statement"].(map[string]interface{})
	if got["status"] != "processed" {
		t.Errorf("expected processed status, got %v", got["status"])
	}
	transactions := got["transactions"].([]interface{})
	if len(transactions) != 2 {
		t.Fatalf("expected 2 extracted transactions, got %d", len(transactions))
	}
	for _, raw := range transactions {
		tx := raw.(map[string]interface{})
		if tx["owner"] != "member1" {
			t.Errorf("expected owner member1 inherited, got %v", tx["owner"])
		}
	}

	// Step 4: Processing again is a no-op
	rec = app.request("POST", fmt.Sprintf("/api/v1/statements/%.0f/process", statementID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if msg := parseJSON(t, rec)["message"]; msg != "Statement already processed" {
		t.Errorf("expected already-processed message, got %v", msg)
	}

	// Step 5: Deleting the statement removes the extracted transactions too
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/statements/%.0f", statementID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 deleting, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/v1/transactions", "", token)
	if list := parseJSON(t, rec)["transactions"].([]interface{}); len(list) != 0 {
		t.Errorf("expected no transactions after cascade delete, got %d", len(list))
	}
}

func TestStatementFlow_UnsupportedFileType(t *testing.T) {
	app := setupApp(t)
	token, _ := newToken(t)

	rec := app.upload(t, token, "statement.pdf", "%PDF-1.4", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	// No statement record must exist after the rejection.
	rec = app.request("GET", "/api/v1/statements", "", token)
	if list := parseJSON(t, rec)["statements"].([]interface{}); len(list) != 0 {
		t.Errorf("expected no statements, got %d", len(list))
	}
}

func TestStatementFlow_ExtractionFailure(t *testing.T) {
	app := setupApp(t)
	token, _ := newToken(t)
	app.Extractor.err = errors.New("model unavailable")

	rec := app.upload(t, token, "jan.csv", "date,vendor,amount\n", "")
	statement := parseJSON(t, rec)["statement"].(map[string]interface{})
	statementID := statement["id"].(float64)

	rec = app.request("POST", fmt.Sprintf("/api/v1/statements/%.0f/process", statementID), "", token)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", fmt.Sprintf("/api/v1/statements/%.0f", statementID), "", token)
	got := parseJSON(t, rec)["statement"].(map[string]interface{})
	if got["status"] != "failed" {
		t.Errorf("expected failed status, got %v", got["status"])
	}
}
