package shell

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseTab(t *testing.T) {
	cases := map[string]TabType{
		"":         TabBooking,
		"booking":  TabBooking,
		"calendar": TabCalendar,
		"Calendar": TabBooking,
		"admin":    TabBooking,
	}
	for in, want := range cases {
		if got := ParseTab(in); got != want {
			t.Errorf("ParseTab(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGetReturnsShell(t *testing.T) {
	h := NewHandler("Central Library Hall")

	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?tab=calendar", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var body struct {
		Success bool     `json:"success"`
		Data    Response `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Data.HallName != "Central Library Hall" || body.Data.ActiveTab != TabCalendar {
		t.Fatalf("unexpected body: %+v", body)
	}
	if len(body.Data.Tabs) != 2 || body.Data.Tabs[0].Label != "Book Hall" || body.Data.Tabs[1].Label != "View Calendar" {
		t.Fatalf("tabs = %+v", body.Data.Tabs)
	}
}
