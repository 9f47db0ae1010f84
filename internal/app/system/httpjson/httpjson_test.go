package httpjson_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/campushub/unihub/internal/app/system/httpjson"
)

func TestRespond(t *testing.T) {
	rec := httptest.NewRecorder()
	httpjson.Respond(rec, 200, map[string]any{"success": true})

	if rec.Code != 200 {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["success"] != true {
		t.Errorf("body: got %v", body)
	}
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	httpjson.Error(rec, 404, "team not found")

	if rec.Code != 404 {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Success || body.Message != "team not found" {
		t.Errorf("body: got %+v", body)
	}
}

func TestDecode(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.c"}`))
	var dst struct {
		Email string `json:"email"`
	}
	if err := httpjson.Decode(req, &dst); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if dst.Email != "a@b.c" {
		t.Errorf("email: got %q", dst.Email)
	}
}

func TestDecode_BadJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{`))
	var dst map[string]any
	if err := httpjson.Decode(req, &dst); err == nil {
		t.Error("expected error for truncated JSON")
	}
}

func TestParseID(t *testing.T) {
	if _, err := httpjson.ParseID("5f2a6c1d9e8b7a0012345678"); err != nil {
		t.Errorf("valid hex rejected: %v", err)
	}
	if _, err := httpjson.ParseID("not-an-id"); err != httpjson.ErrBadID {
		t.Errorf("expected ErrBadID, got %v", err)
	}
}
