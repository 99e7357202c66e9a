package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/einkhub/renderer/internal/config"
	"github.com/einkhub/renderer/internal/display"
	"github.com/einkhub/renderer/internal/layout"
	"github.com/einkhub/renderer/internal/render"
	"github.com/einkhub/renderer/internal/snapshot"
	"github.com/einkhub/renderer/internal/state"
	"github.com/einkhub/renderer/internal/widget"
	"github.com/einkhub/renderer/pkg/models"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	dir := t.TempDir()

	layoutsPath := filepath.Join(dir, "layouts.yaml")
	content := `
layouts:
  main:
    widgets:
      - {type: clock, x: 0, y: 0, width: 200, height: 60}
rotation:
  sequence: [main]
`
	if err := os.WriteFile(layoutsPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	registry := widget.Builtins()
	store, err := layout.Load(layoutsPath, registry, 400, 300)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	logger := zap.NewNop()
	snaps := snapshot.NewMemoryStore()
	outputDir := filepath.Join(dir, "out")
	photosDir := filepath.Join(dir, "photos")
	renderer := render.New(store, registry, 400, 300, outputDir, logger)
	controller := display.NewController(
		config.DisplayConfig{Width: 400, Height: 300, PhotoFitMode: "fit"},
		config.PathsConfig{OutputDir: outputDir, PhotosDir: photosDir},
		renderer, store, snaps,
		state.NewManager(filepath.Join(dir, "state.json"), logger),
		display.LogSink{Logger: logger}, logger,
	)

	mux := http.NewServeMux()
	NewHandler(controller, renderer, store, registry, snaps, photosDir, logger).RegisterRoutes(mux)
	return mux
}

func TestHealth(t *testing.T) {
	mux := newTestMux(t)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestLayoutsAndWidgets(t *testing.T) {
	mux := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/layouts", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("layouts status = %d", rec.Code)
	}
	var layoutsResp struct {
		Layouts  []string `json:"layouts"`
		Rotation []string `json:"rotation"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &layoutsResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(layoutsResp.Layouts) != 1 || layoutsResp.Layouts[0] != "main" {
		t.Errorf("layouts = %v", layoutsResp.Layouts)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/widgets", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("widgets status = %d", rec.Code)
	}
	var widgetsResp struct {
		Widgets []string `json:"widgets"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &widgetsResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(widgetsResp.Widgets) != 10 {
		t.Errorf("widgets = %v", widgetsResp.Widgets)
	}
}

func TestRenderEndpoints(t *testing.T) {
	mux := newTestMux(t)

	t.Run("render known layout", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/render/main", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("render unknown layout is 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/render/ghost", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("preview returns a png", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/preview/main", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
			t.Errorf("content-type = %s", ct)
		}
		if !bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")) {
			t.Error("body is not a PNG")
		}
	})
}

func TestSnapshotEndpoints(t *testing.T) {
	mux := newTestMux(t)

	t.Run("put then get", func(t *testing.T) {
		body := `{"payload": {"current_temp": 68}, "ttl_seconds": 900}`
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/snapshots/weather", strings.NewReader(body)))
		if rec.Code != http.StatusOK {
			t.Fatalf("put status = %d: %s", rec.Code, rec.Body.String())
		}

		rec = httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/snapshots/weather", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("get status = %d", rec.Code)
		}
		var snap models.ProviderSnapshot
		if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if snap.Provider != "weather" || snap.TTLSeconds != 900 {
			t.Errorf("snapshot = %+v", snap)
		}
		if snap.FetchedAt.IsZero() {
			t.Error("fetched_at not set by server")
		}
	})

	t.Run("get missing is 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/snapshots/ghost", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("list summaries", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/snapshots", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var summaries map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &summaries); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if _, ok := summaries["weather"]; !ok {
			t.Errorf("summaries = %v", summaries)
		}
	})

	t.Run("delete", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/snapshots/weather", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		rec = httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/snapshots/weather", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("status after delete = %d", rec.Code)
		}
	})
}

func TestDisplayEndpoints(t *testing.T) {
	mux := newTestMux(t)

	t.Run("state", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/display", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var st models.DisplayState
		if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if st.Mode != models.ModeManual {
			t.Errorf("mode = %q", st.Mode)
		}
	})

	t.Run("invalid mode is 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/display/mode", strings.NewReader(`{"mode":"disco"}`)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("mode switch and advance", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/display/mode", strings.NewReader(`{"mode":"auto_rotate"}`)))
		if rec.Code != http.StatusOK {
			t.Fatalf("mode status = %d", rec.Code)
		}

		rec = httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/display/advance", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("advance status = %d: %s", rec.Code, rec.Body.String())
		}
		var st models.DisplayState
		if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if st.CurrentLayout != "main" {
			t.Errorf("layout = %q", st.CurrentLayout)
		}
	})

	t.Run("photo with empty dir is 409", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/display/photo", strings.NewReader(`{"index":0}`)))
		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d", rec.Code)
		}
	})
}

func TestPhotoEndpoints(t *testing.T) {
	mux := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/photos", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 0 {
		t.Errorf("count = %d", resp.Count)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/photos/thumbnail/missing.png", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("thumbnail status = %d", rec.Code)
	}
}
