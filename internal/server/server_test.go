package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/roomgen/pkg/cache"
	"github.com/matzehuels/roomgen/pkg/dungeon"
	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/observability"
	"github.com/matzehuels/roomgen/pkg/pipeline"
	"github.com/matzehuels/roomgen/pkg/store"
)

const smallMap = "height=30&width=30&density=0.3"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := pipeline.NewRunner(fc, nil, logger)
	return New(runner, store.NewMemoryStore(), logger, Config{Timeout: time.Minute})
}

func do(t *testing.T, s *Server, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorDetail {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body.Error
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Status != "ok" || got.Build.Version == "" {
		t.Errorf("health = %+v", got)
	}
}

func TestGenerateText(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/v1/dungeons?seed=42&format=text&"+smallMap, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := rec.Header().Get(SeedHeader); got != "42" {
		t.Errorf("%s = %q, want 42", SeedHeader, got)
	}
	if got := rec.Header().Get(CacheHeader); got != "miss" {
		t.Errorf("%s = %q on first request", CacheHeader, got)
	}
	rows := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	if len(rows) != 30 {
		t.Errorf("got %d rows, want 30", len(rows))
	}

	again := do(t, s, http.MethodGet, "/v1/dungeons?seed=42&format=text&"+smallMap, nil)
	if again.Body.String() != rec.Body.String() {
		t.Error("same seed produced a different map")
	}
	if got := again.Header().Get(CacheHeader); got != "hit" {
		t.Errorf("%s = %q on repeat request", CacheHeader, got)
	}
}

func TestGenerateJSONDefault(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/v1/dungeons?seed=3&"+smallMap, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	d, err := dungeon.Unmarshal(rec.Body.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if d.Seed != 3 || d.Size.H != 30 || d.Size.W != 30 {
		t.Errorf("dungeon seed=%d size=%v", d.Seed, d.Size)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name  string
		query string
		code  errors.Code
	}{
		{"bad seed", "seed=abc", errors.ErrCodeInvalidInput},
		{"bad density", "seed=1&density=2", errors.ErrCodeInvalidDensity},
		{"negative size", "seed=1&height=-4&width=10", errors.ErrCodeInvalidSize},
		{"too many cells", "seed=1&height=500&width=510", errors.ErrCodeInvalidSize},
		{"bad format", "seed=1&format=gif&" + smallMap, errors.ErrCodeInvalidFormat},
		{"bad flag", "seed=1&labels=maybe", errors.ErrCodeInvalidInput},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, "/v1/dungeons?"+tt.query, nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if got := decodeError(t, rec); got.Code != string(tt.code) {
				t.Errorf("code = %s, want %s (%s)", got.Code, tt.code, got.Message)
			}
		})
	}
}

func TestDungeonLifecycle(t *testing.T) {
	s := newTestServer(t)

	body := strings.NewReader(`{"seed": 7, "height": 30, "width": 30, "density": 0.3}`)
	rec := do(t, s, http.MethodPost, "/v1/dungeons", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	var created createResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if uuid.Validate(created.ID) != nil {
		t.Fatalf("id %q is not a uuid", created.ID)
	}
	if loc := rec.Header().Get("Location"); loc != "/v1/dungeons/"+created.ID {
		t.Errorf("Location = %q", loc)
	}
	if created.Summary.Seed != 7 || created.Stats.Rooms != created.Summary.Rooms {
		t.Errorf("created = %+v", created)
	}
	path := "/v1/dungeons/" + created.ID

	t.Run("get json", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		d, err := dungeon.Unmarshal(rec.Body.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if d.ID != created.ID || d.Seed != 7 {
			t.Errorf("got id=%s seed=%d", d.ID, d.Seed)
		}
	})

	t.Run("get svg", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, path+"?format=svg&outlines", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
			t.Errorf("Content-Type = %q", ct)
		}
		if !bytes.Contains(rec.Body.Bytes(), []byte(`id="room-`)) {
			t.Error("svg lacks room outlines")
		}
	})

	t.Run("graph dot", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, path+"/graph?format=dot", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if !strings.HasPrefix(rec.Body.String(), "graph G {") {
			t.Errorf("dot = %q", rec.Body.String())
		}
	})

	t.Run("graph bad format", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, path+"/graph?format=pdf", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("list", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/v1/saved", nil)
		var got listResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatal(err)
		}
		if len(got.Dungeons) != 1 || got.Dungeons[0].ID != created.ID {
			t.Errorf("list = %+v", got.Dungeons)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if rec := do(t, s, http.MethodDelete, path, nil); rec.Code != http.StatusNoContent {
			t.Fatalf("delete status = %d", rec.Code)
		}
		rec := do(t, s, http.MethodGet, path, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("get after delete status = %d", rec.Code)
		}
		if got := decodeError(t, rec); got.Code != string(errors.ErrCodeNotFound) {
			t.Errorf("code = %s", got.Code)
		}
		if rec := do(t, s, http.MethodDelete, path, nil); rec.Code != http.StatusNotFound {
			t.Errorf("second delete status = %d", rec.Code)
		}
	})
}

func TestCreateRejectsBadBody(t *testing.T) {
	tests := map[string]string{
		"unknown field": `{"bogus": 1}`,
		"not json":      `seed=4`,
		"bad density":   `{"density": 4}`,
	}
	s := newTestServer(t)
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/v1/dungeons", strings.NewReader(body))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestEmptyList(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/v1/saved", nil)
	if got := strings.TrimSpace(rec.Body.String()); got != `{"dungeons":[]}` {
		t.Errorf("body = %s", got)
	}
}

func TestUnknownRoute(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/v2/nothing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decodeError(t, rec); got.Code != string(errors.ErrCodeNotFound) {
		t.Errorf("code = %s", got.Code)
	}
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != id {
		t.Errorf("request id = %q, want echoed %q", got, id)
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); uuid.Validate(got) != nil {
		t.Errorf("request id = %q, want a fresh uuid", got)
	}
}

type requestRecord struct {
	method, route string
	status        int
}

type recordingServerHooks struct {
	observability.NoopServerHooks
	mu      sync.Mutex
	records []requestRecord
}

func (h *recordingServerHooks) OnRequest(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, requestRecord{method, route, status})
}

func TestServerHooks(t *testing.T) {
	hooks := &recordingServerHooks{}
	observability.SetServerHooks(hooks)
	defer observability.Reset()

	s := newTestServer(t)
	do(t, s, http.MethodGet, "/healthz", nil)
	do(t, s, http.MethodGet, "/v1/dungeons/"+uuid.NewString(), nil)

	want := []requestRecord{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/v1/dungeons/{id}", http.StatusNotFound},
	}
	if len(hooks.records) != len(want) {
		t.Fatalf("records = %+v", hooks.records)
	}
	for i, w := range want {
		if hooks.records[i] != w {
			t.Errorf("record %d = %+v, want %+v", i, hooks.records[i], w)
		}
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidInput, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeInvalidSize, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeNotFound, "x"), http.StatusNotFound},
		{store.ErrNotFound, http.StatusNotFound},
		{errors.New(errors.ErrCodePlacement, "x"), http.StatusInternalServerError},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
