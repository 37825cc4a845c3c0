package drawing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	mw "github.com/inkboard/inkboard/internal/middleware"
)

func newTestRouter() *mux.Router {
	svc, _ := newTestService()
	r := mux.NewRouter()
	NewHandler(svc).Register(r)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeDrawing(t *testing.T, rec *httptest.ResponseRecorder) Drawing {
	t.Helper()
	var resp struct {
		Success bool            `json:"success"`
		Drawing json.RawMessage `json:"drawing"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	if !resp.Success {
		t.Fatalf("success = false in %s", rec.Body.String())
	}
	var d Drawing
	if err := json.Unmarshal(resp.Drawing, &d); err != nil {
		t.Fatalf("decode drawing: %v", err)
	}
	return d
}

func TestHandlerLifecycle(t *testing.T) {
	r := newTestRouter()

	rec := do(t, r, "POST", "/api/draw/save", `{"userId": "`+testUser+`", "title": "sketch", "shapes": `+twoShapes+`}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("save status = %d: %s", rec.Code, rec.Body.String())
	}
	saved := decodeDrawing(t, rec)
	if saved.Title != "sketch" || len(saved.Shapes) != 2 {
		t.Fatalf("saved = %+v", saved)
	}

	rec = do(t, r, "GET", "/api/draw/"+saved.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	if got := decodeDrawing(t, rec); got.ID != saved.ID {
		t.Errorf("get returned %q", got.ID)
	}

	rec = do(t, r, "PUT", "/api/draw/"+saved.ID, `{"title": "renamed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeDrawing(t, rec); got.Title != "renamed" || len(got.Shapes) != 2 {
		t.Errorf("updated = %+v", got)
	}

	rec = do(t, r, "GET", "/api/draw/user/"+testUser, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var list struct {
		Success  bool              `json:"success"`
		Drawings []json.RawMessage `json:"drawings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil || len(list.Drawings) != 1 {
		t.Fatalf("list = %s (%v)", rec.Body.String(), err)
	}

	rec = do(t, r, "DELETE", "/api/draw/"+saved.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = do(t, r, "GET", "/api/draw/"+saved.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", rec.Code)
	}
}

func TestHandlerErrors(t *testing.T) {
	r := newTestRouter()
	tests := []struct {
		name, method, path, body string
		want                     int
	}{
		{"malformed body", "POST", "/api/draw/save", `{`, http.StatusBadRequest},
		{"bad user", "POST", "/api/draw/save", `{"userId": "x", "shapes": ` + twoShapes + `}`, http.StatusBadRequest},
		{"empty shapes", "POST", "/api/draw/save", `{"userId": "` + testUser + `", "shapes": []}`, http.StatusBadRequest},
		{"bad id", "GET", "/api/draw/nope", "", http.StatusBadRequest},
		{"list bad user", "GET", "/api/draw/user/nope", "", http.StatusBadRequest},
		{"put malformed", "PUT", "/api/draw/nope", `[`, http.StatusBadRequest},
		{"wrong method", "PATCH", "/api/draw/nope", "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, r, tt.method, tt.path, tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
			if tt.want == http.StatusBadRequest && !strings.Contains(rec.Body.String(), `"error"`) {
				t.Errorf("body %q lacks an error field", rec.Body.String())
			}
		})
	}
}

func TestHandlerPreflightThroughRouter(t *testing.T) {
	r := newTestRouter()
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	h := mw.CORS([]string{"http://localhost:5173"})(r)

	for _, tc := range []struct {
		path, method string
	}{
		{"/api/draw/save", "POST"},
		{"/api/draw/drw_01h455vb4pex5vsknk084sn02q", "PUT"},
		{"/api/draw/drw_01h455vb4pex5vsknk084sn02q", "DELETE"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, tc.path, nil)
			req.Header.Set("Origin", "http://localhost:5173")
			req.Header.Set("Access-Control-Request-Method", tc.method)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusNoContent {
				t.Errorf("status = %d, want 204", rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
				t.Errorf("allow-origin = %q", got)
			}
		})
	}

	rec := do(t, h, "POST", "/api/draw/save", `{"userId": "`+testUser+`", "shapes": `+twoShapes+`}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("save through the wrapped router = %d: %s", rec.Code, rec.Body.String())
	}
}
