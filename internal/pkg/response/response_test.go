package response

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func decode(t *testing.T, rr *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body
}

func TestJSONSuccessFollowsStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	Accepted(rr, map[string]string{"status": "submitting"})
	if rr.Code != http.StatusAccepted || !decode(t, rr).Success {
		t.Fatalf("202 should be a success envelope")
	}

	rr = httptest.NewRecorder()
	JSON(rr, http.StatusTeapot, nil)
	if decode(t, rr).Success {
		t.Fatal("418 must not be a success envelope")
	}
}

func TestUploadErrors(t *testing.T) {
	rr := httptest.NewRecorder()
	UnsupportedMediaType(rr, "nope")
	if body := decode(t, rr); rr.Code != http.StatusUnsupportedMediaType || body.Error.Code != "INVALID_FILE_TYPE" {
		t.Fatalf("got %d %+v", rr.Code, body.Error)
	}

	rr = httptest.NewRecorder()
	PayloadTooLarge(rr, "too big")
	if body := decode(t, rr); rr.Code != http.StatusRequestEntityTooLarge || body.Error.Code != "FILE_TOO_LARGE" {
		t.Fatalf("got %d %+v", rr.Code, body.Error)
	}
}

func TestValidationErrorDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	ValidationError(rr, map[string]string{"email": "Invalid email format"})
	body := decode(t, rr)
	if rr.Code != http.StatusUnprocessableEntity || body.Error.Details["email"] != "Invalid email format" {
		t.Fatalf("got %d %+v", rr.Code, body.Error)
	}
}

func TestDownload(t *testing.T) {
	rr := httptest.NewRecorder()
	Download(rr, "hall-bookings-2025-12.xlsx", "application/octet-stream", bytes.NewBufferString("PK"))

	if got := rr.Header().Get("Content-Disposition"); got != `attachment; filename="hall-bookings-2025-12.xlsx"` {
		t.Fatalf("Content-Disposition = %q", got)
	}
	if rr.Header().Get("Content-Length") != "2" || rr.Body.String() != "PK" {
		t.Fatalf("body = %q", rr.Body.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	if err := DecodeJSON(io.NopCloser(strings.NewReader(`{"name":"Aigerim"}`)), &v); err != nil || v.Name != "Aigerim" {
		t.Fatalf("DecodeJSON = %v, %+v", err, v)
	}
	if err := DecodeJSON(io.NopCloser(strings.NewReader(`{`)), &v); err == nil {
		t.Fatal("expected error for truncated body")
	}
}
