package handlers

import (
	"net/http"
	"testing"

	"github.com/frotaops/go-fleet-backend/internal/app"
	"github.com/frotaops/go-fleet-backend/internal/domain"
)

type submitResponse struct {
	Request domain.Request `json:"request"`
	State   app.State      `json:"state"`
}

func TestGetUIState(t *testing.T) {
	r, _ := newTestAPI(t, stubAnalyzer{})

	w := doJSON(t, r, http.MethodGet, "/ui/state", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	st := decode[app.State](t, w)
	if st.View != app.ViewOverview || st.Editing != nil {
		t.Fatalf("state = %+v", st)
	}
}

func TestSelectView(t *testing.T) {
	r, _ := newTestAPI(t, stubAnalyzer{})

	w := doJSON(t, r, http.MethodPost, "/ui/view", map[string]any{"view": "list"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if st := decode[app.State](t, w); st.View != app.ViewList {
		t.Fatalf("view = %q", st.View)
	}

	w = doJSON(t, r, http.MethodPost, "/ui/view", map[string]any{"view": "dashboard"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown view status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/ui/view", map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing view status = %d", w.Code)
	}
}

func TestBeginCreateAndCancel(t *testing.T) {
	r, _ := newTestAPI(t, stubAnalyzer{})

	w := doJSON(t, r, http.MethodPost, "/ui/new", nil)
	st := decode[app.State](t, w)
	if st.View != app.ViewEdit || st.Editing != nil {
		t.Fatalf("after new: %+v", st)
	}

	w = doJSON(t, r, http.MethodPost, "/ui/cancel", nil)
	st = decode[app.State](t, w)
	if st.View != app.ViewList || st.Editing != nil {
		t.Fatalf("after cancel: %+v", st)
	}
}

func TestBeginEdit(t *testing.T) {
	r, _ := newTestAPI(t, stubAnalyzer{})

	w := doJSON(t, r, http.MethodPost, "/ui/edit/REQ-002", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	st := decode[app.State](t, w)
	if st.View != app.ViewEdit || st.Editing == nil || st.Editing.ID != "REQ-002" {
		t.Fatalf("state = %+v", st)
	}

	w = doJSON(t, r, http.MethodPost, "/ui/edit/REQ-404", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestSubmitForm_Create(t *testing.T) {
	r, rp := newTestAPI(t, stubAnalyzer{})

	if w := doJSON(t, r, http.MethodPost, "/ui/new", nil); w.Code != http.StatusOK {
		t.Fatalf("new status = %d", w.Code)
	}
	w := doJSON(t, r, http.MethodPost, "/ui/submit", validBody())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	resp := decode[submitResponse](t, w)
	if resp.Request.ID != "REQ-003" {
		t.Fatalf("request = %+v", resp.Request)
	}
	if resp.State.View != app.ViewList || resp.State.Editing != nil {
		t.Fatalf("state = %+v", resp.State)
	}
	if rp.Count() != 3 {
		t.Fatalf("count = %d", rp.Count())
	}
}

func TestSubmitForm_Update(t *testing.T) {
	r, rp := newTestAPI(t, stubAnalyzer{})

	if w := doJSON(t, r, http.MethodPost, "/ui/edit/REQ-001", nil); w.Code != http.StatusOK {
		t.Fatalf("edit status = %d", w.Code)
	}

	body := validBody()
	body["status"] = "CONFIRMED"
	w := doJSON(t, r, http.MethodPost, "/ui/submit", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	resp := decode[submitResponse](t, w)
	if resp.Request.ID != "REQ-001" || resp.Request.Status != domain.StatusConfirmed {
		t.Fatalf("request = %+v", resp.Request)
	}
	if rp.Count() != 2 {
		t.Fatalf("submit created instead of updating: count = %d", rp.Count())
	}
}

func TestSubmitForm_ValidationFault(t *testing.T) {
	r, _ := newTestAPI(t, stubAnalyzer{})

	if w := doJSON(t, r, http.MethodPost, "/ui/edit/REQ-001", nil); w.Code != http.StatusOK {
		t.Fatalf("edit status = %d", w.Code)
	}

	body := validBody()
	body["clientName"] = ""
	w := doJSON(t, r, http.MethodPost, "/ui/submit", body)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	// The editing slot survives the fault so the form can be corrected.
	w = doJSON(t, r, http.MethodGet, "/ui/state", nil)
	st := decode[app.State](t, w)
	if st.View != app.ViewEdit || st.Editing == nil || st.Editing.ID != "REQ-001" {
		t.Fatalf("state = %+v", st)
	}
}
