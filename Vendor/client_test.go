package Vendor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testClient(baseURL string) *Client {
	return &Client{
		APIKey:       "test-key",
		BaseURL:      baseURL,
		HTTPClient:   &http.Client{Timeout: 5 * time.Second},
		UploadClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestRequestUploadURLWithoutKey(t *testing.T) {
	client := testClient("http://unused")
	client.APIKey = ""

	_, err := client.RequestUploadURL("a.jpg", "image/jpeg")
	if !errors.Is(err, ErrKeyMissing) {
		t.Errorf("expected ErrKeyMissing, got %v", err)
	}
}

func TestRequestUploadURL(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
	}{
		{"camelCase field", map[string]string{"uploadUrl": "https://store.example/signed"}},
		{"snake_case field", map[string]string{"upload_url": "https://store.example/signed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/upload-url" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if r.Header.Get("X-API-Key") != "test-key" {
					t.Errorf("missing X-API-Key header")
				}
				var req map[string]string
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Fatal(err)
				}
				if req["fileName"] != "a.jpg" || req["contentType"] != "image/jpeg" {
					t.Errorf("unexpected request body %v", req)
				}
				json.NewEncoder(w).Encode(tt.body)
			}))
			defer server.Close()

			got, err := testClient(server.URL).RequestUploadURL("a.jpg", "image/jpeg")
			if err != nil {
				t.Fatalf("RequestUploadURL failed: %v", err)
			}
			if got != "https://store.example/signed" {
				t.Errorf("uploadURL = %q", got)
			}
		})
	}
}

func TestRequestUploadURLRejections(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, "boom"},
		{"unauthorized", http.StatusUnauthorized, `{"error":"bad key"}`},
		{"no url in response", http.StatusOK, `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			if _, err := testClient(server.URL).RequestUploadURL("a.jpg", "image/jpeg"); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestUploadApprovedImage(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "MOB_BLR_FC_20260201_F001.jpg")
	content := []byte("jpeg bytes here")
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		t.Fatal(err)
	}

	var putBody []byte
	var putHeaders http.Header
	store := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "PUT" {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		putHeaders = r.Header.Clone()
		body, _ := io.ReadAll(r.Body)
		putBody = body
		w.WriteHeader(http.StatusOK)
	}))
	defer store.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"uploadUrl": store.URL + "/signed-object"})
	}))
	defer api.Close()

	err := testClient(api.URL).UploadApprovedImage(filePath, "MOB_BLR_FC_20260201_F001.jpg", "image/jpeg")
	if err != nil {
		t.Fatalf("UploadApprovedImage failed: %v", err)
	}
	if string(putBody) != string(content) {
		t.Errorf("uploaded body = %q, want %q", putBody, content)
	}
	// The signed PUT must not carry extra headers that would break the
	// object store's signature.
	for _, forbidden := range []string{"X-Api-Key", "Content-Type", "Authorization"} {
		if putHeaders.Get(forbidden) != "" {
			t.Errorf("PUT carried forbidden header %s", forbidden)
		}
	}
}

func TestUploadApprovedImageStoreRejects(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "a.jpg")
	if err := os.WriteFile(filePath, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	store := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("SignatureDoesNotMatch"))
	}))
	defer store.Close()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"uploadUrl": store.URL})
	}))
	defer api.Close()

	if err := testClient(api.URL).UploadApprovedImage(filePath, "a.jpg", "image/jpeg"); err == nil {
		t.Error("expected error when the store rejects the upload")
	}
}
