package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/linetrace/pkg/errors"
)

// maskPNG encodes a small mask with one horizontal line.
func maskPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 40, 20))
	for x := 5; x <= 35; x++ {
		img.SetGray(x, 10, color.Gray{Y: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode mask: %v", err)
	}
	return buf.Bytes()
}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	s, err := New(Config{Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func decodeError(t *testing.T, body io.Reader) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return resp
}

func TestHealthz(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var health map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health["status"] != "ok" {
		t.Errorf("status = %q, want %q", health["status"], "ok")
	}
	if health["version"] == "" {
		t.Error("version should not be empty")
	}
}

func TestPresetsList(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/v1/presets")
	if err != nil {
		t.Fatalf("GET /v1/presets error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var presets []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&presets); err != nil {
		t.Fatalf("decode presets: %v", err)
	}

	found := false
	for _, p := range presets {
		if p.Name == "default" {
			found = true
		}
	}
	if !found {
		t.Errorf("presets %v should include default", presets)
	}
}

func TestVectorize(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/v1/vectorize", "image/png", bytes.NewReader(maskPNG(t)))
	if err != nil {
		t.Fatalf("POST /v1/vectorize error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want %q", ct, "image/svg+xml")
	}
	if resp.Header.Get("X-Job-ID") == "" {
		t.Error("X-Job-ID header should be set")
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "<svg") {
		t.Error("response should contain an svg element")
	}
}

func TestVectorizeJSONFormat(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/v1/vectorize?format=json", "image/png", bytes.NewReader(maskPNG(t)))
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}

	var doc map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("artifact should be valid JSON: %v", err)
	}
	if len(doc) == 0 {
		t.Error("artifact JSON should not be empty")
	}
}

func TestVectorizeWithPreset(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/v1/vectorize?preset=fast", "image/png", bytes.NewReader(maskPNG(t)))
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestVectorizeEmptyBody(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/v1/vectorize", "image/png", nil)
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
	if e := decodeError(t, resp.Body); e.Code != string(errors.ErrCodeInvalidMask) {
		t.Errorf("code = %q, want %q", e.Code, errors.ErrCodeInvalidMask)
	}
}

func TestVectorizeInvalidImage(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/v1/vectorize", "image/png", strings.NewReader("not an image"))
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
	if e := decodeError(t, resp.Body); e.Code != string(errors.ErrCodeInvalidMask) {
		t.Errorf("code = %q, want %q", e.Code, errors.ErrCodeInvalidMask)
	}
}

func TestVectorizeInvalidFormat(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/v1/vectorize?format=bmp", "image/png", bytes.NewReader(maskPNG(t)))
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
	if e := decodeError(t, resp.Body); e.Code != string(errors.ErrCodeInvalidFormat) {
		t.Errorf("code = %q, want %q", e.Code, errors.ErrCodeInvalidFormat)
	}
}

func TestVectorizeInvalidParam(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/v1/vectorize?min_points=abc", "image/png", bytes.NewReader(maskPNG(t)))
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
	if e := decodeError(t, resp.Body); e.Code != string(errors.ErrCodeInvalidInput) {
		t.Errorf("code = %q, want %q", e.Code, errors.ErrCodeInvalidInput)
	}
}

func TestVectorizeUnknownPreset(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/v1/vectorize?preset=nope", "image/png", bytes.NewReader(maskPNG(t)))
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
	if e := decodeError(t, resp.Body); e.Code != string(errors.ErrCodeInvalidPreset) {
		t.Errorf("code = %q, want %q", e.Code, errors.ErrCodeInvalidPreset)
	}
}

func TestStatusFromCode(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeInvalidInput, http.StatusBadRequest},
		{errors.ErrCodeInvalidMask, http.StatusBadRequest},
		{errors.ErrCodeInvalidFormat, http.StatusBadRequest},
		{errors.ErrCodeInvalidFilter, http.StatusBadRequest},
		{errors.ErrCodeInvalidPreset, http.StatusBadRequest},
		{errors.ErrCodeNotFound, http.StatusNotFound},
		{errors.ErrCodeFileNotFound, http.StatusNotFound},
		{errors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{errors.ErrCodeNetwork, http.StatusBadGateway},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
		{errors.Code(""), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := statusFromCode(tt.code); got != tt.want {
			t.Errorf("statusFromCode(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
