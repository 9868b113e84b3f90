package handlers

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondWithJSONSmallPayloadUncompressed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()

	RespondWithJSON(rr, req, http.StatusOK, map[string]string{"status": "ok"})

	if rr.Header().Get("Content-Encoding") != "" {
		t.Error("Small payload should not be compressed")
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Unexpected content type: %s", ct)
	}
}

func TestRespondWithJSONCompressesLargePayload(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()

	payload := map[string]string{"blob": strings.Repeat("x", 2*compressionThreshold)}
	RespondWithJSON(rr, req, http.StatusOK, payload)

	if rr.Header().Get("Content-Encoding") != "gzip" {
		t.Fatal("Expected large payload to be gzip-compressed")
	}

	gz, err := gzip.NewReader(rr.Body)
	if err != nil {
		t.Fatalf("Failed to open gzip reader: %v", err)
	}
	defer gz.Close()

	decoded, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("Failed to decompress body: %v", err)
	}

	var out map[string]string
	if err := json.Unmarshal(decoded, &out); err != nil {
		t.Fatalf("Decompressed body is not valid JSON: %v", err)
	}
	if len(out["blob"]) != 2*compressionThreshold {
		t.Errorf("Round-tripped payload has wrong length: %d", len(out["blob"]))
	}
}

func TestRespondWithJSONSkipsCompressionWithoutAcceptEncoding(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	payload := map[string]string{"blob": strings.Repeat("x", 2*compressionThreshold)}
	RespondWithJSON(rr, req, http.StatusOK, payload)

	if rr.Header().Get("Content-Encoding") != "" {
		t.Error("Client did not accept gzip, response must be uncompressed")
	}
}

func TestRespondWithError(t *testing.T) {
	rr := httptest.NewRecorder()

	RespondWithError(rr, http.StatusBadRequest, "medication is required")

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rr.Code)
	}

	var out map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to decode error payload: %v", err)
	}
	if out["error"] != "medication is required" {
		t.Errorf("Unexpected error message: %q", out["error"])
	}
}
