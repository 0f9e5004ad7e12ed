package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hotelzululima/flashback/pkg/observability"
	"github.com/hotelzululima/flashback/pkg/pipeline"
)

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func newTestServer(t *testing.T, cfg *Config) *httptest.Server {
	t.Helper()
	if cfg == nil {
		cfg = DefaultConfig()
	}
	logger := log.New(io.Discard)
	s := newServer(pipeline.NewRunner(nil, nil, logger), cfg, logger)
	ts := httptest.NewServer(s.routes())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url string, body []byte) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, data
}

func TestServeHealth(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || strings.TrimSpace(string(body)) != "ok" {
		t.Errorf("GET /healthz = %d %q", resp.StatusCode, body)
	}
}

func TestServeConvert(t *testing.T) {
	ts := newTestServer(t, nil)
	movie := readTestdata(t, "movie.json")

	tests := []struct {
		query      string
		wantScript bool
	}{
		{"", false},
		{"?mode=svg", false},
		{"?mode=js", true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, body := post(t, ts.URL+"/convert"+tt.query, movie)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, body %s", resp.StatusCode, body)
			}
			if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
				t.Errorf("Content-Type = %q", ct)
			}
			if resp.Header.Get("X-Request-ID") == "" {
				t.Error("missing X-Request-ID")
			}
			if !bytes.Contains(body, []byte("<svg")) {
				t.Errorf("body is not an SVG document: %.200s", body)
			}
			if got := bytes.Contains(body, []byte("<script")); got != tt.wantScript {
				t.Errorf("script present = %v, want %v", got, tt.wantScript)
			}
		})
	}
}

func TestServeConvertErrors(t *testing.T) {
	small := DefaultConfig()
	small.Serve.MaxBody = 16
	tests := []struct {
		name     string
		cfg      *Config
		query    string
		body     []byte
		wantCode int
		wantErr  string
	}{
		{"integrity", nil, "", readTestdata(t, "dangling.json"), http.StatusUnprocessableEntity, "UNDEFINED_CHARACTER"},
		{"garbage", nil, "", []byte("not json"), http.StatusBadRequest, "INVALID_INPUT"},
		{"mode", nil, "?mode=flash", readTestdata(t, "movie.json"), http.StatusBadRequest, "INVALID_MODE"},
		{"too large", small, "", readTestdata(t, "movie.json"), http.StatusRequestEntityTooLarge, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, tt.cfg)
			resp, body := post(t, ts.URL+"/convert"+tt.query, tt.body)
			if resp.StatusCode != tt.wantCode {
				t.Fatalf("status = %d, want %d (%s)", resp.StatusCode, tt.wantCode, body)
			}
			var e errorResponse
			if err := json.Unmarshal(body, &e); err != nil {
				t.Fatalf("error body is not JSON: %s", body)
			}
			if e.Code != tt.wantErr {
				t.Errorf("code = %q, want %q", e.Code, tt.wantErr)
			}
			if e.RequestID == "" || e.RequestID != resp.Header.Get("X-Request-ID") {
				t.Errorf("request id %q does not match header %q", e.RequestID, resp.Header.Get("X-Request-ID"))
			}
		})
	}
}

func TestServeGraphDOT(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, body := post(t, ts.URL+"/graph?format=dot", readTestdata(t, "movie.json"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, body)
	}
	if !bytes.Contains(body, []byte(`"c_2" -> "c_1";`)) {
		t.Errorf("graph missing sprite edge:\n%s", body)
	}
}

type countingServerHooks struct {
	observability.NoopServerHooks
	requests  int
	responses []int
}

func (h *countingServerHooks) OnRequest(context.Context, string, string, string) { h.requests++ }
func (h *countingServerHooks) OnResponse(_ context.Context, _ string, status int, _ time.Duration) {
	h.responses = append(h.responses, status)
}

func TestServeHooks(t *testing.T) {
	hooks := &countingServerHooks{}
	observability.SetServerHooks(hooks)
	defer observability.Reset()

	ts := newTestServer(t, nil)
	post(t, ts.URL+"/convert", []byte("{"))
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	// Close waits for the handlers, and with them the response hooks.
	ts.Close()

	if hooks.requests != 2 || len(hooks.responses) != 2 {
		t.Fatalf("hooks saw %d requests, %v responses", hooks.requests, hooks.responses)
	}
	if hooks.responses[0] != http.StatusBadRequest || hooks.responses[1] != http.StatusOK {
		t.Errorf("statuses = %v", hooks.responses)
	}
}

func TestDisplayAddr(t *testing.T) {
	if got := displayAddr(":8080"); got != "localhost:8080" {
		t.Errorf("displayAddr(:8080) = %q", got)
	}
	if got := displayAddr("0.0.0.0:80"); got != "0.0.0.0:80" {
		t.Errorf("displayAddr(0.0.0.0:80) = %q", got)
	}
}
