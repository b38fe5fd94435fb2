package Vendor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"ImageVault/Config"
)

// ErrKeyMissing is returned when no vendor API key is configured.
var ErrKeyMissing = errors.New("VENDOR_API_KEY is not configured in environment")

// Client hands approved assets to the vendor object store through its
// signed-URL flow.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	// UploadClient bounds the asset PUT separately: signed-URL exchanges
	// are small, asset uploads are not.
	UploadClient *http.Client
}

// NewClient builds a vendor client from the environment.
func NewClient() *Client {
	return &Client{
		APIKey:       Config.Getenv("VENDOR_API_KEY", ""),
		BaseURL:      Config.Getenv("VENDOR_BASE_URL", "https://annonest.labelnest.in/api/vendor"),
		HTTPClient:   &http.Client{Timeout: 15 * time.Second},
		UploadClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type signedURLRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

type signedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	// Some vendor deployments spell the field with an underscore.
	UploadURLAlt string `json:"upload_url"`
}

// RequestUploadURL exchanges the API key for a short-lived signed URL.
func (c *Client) RequestUploadURL(fileName, mimeType string) (string, error) {
	if c.APIKey == "" {
		return "", ErrKeyMissing
	}

	payload, err := json.Marshal(signedURLRequest{FileName: fileName, ContentType: mimeType})
	if err != nil {
		return "", fmt.Errorf("error marshaling JSON: %v", err)
	}

	req, err := http.NewRequest("POST", c.BaseURL+"/upload-url", bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("X-API-Key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to request signed upload URL from vendor: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading vendor response: %v", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("vendor signed URL request failed with status %d: %s", resp.StatusCode, truncate(body, 200))
	}

	var parsed signedURLResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("error unmarshaling vendor response: %v", err)
	}

	uploadURL := parsed.UploadURL
	if uploadURL == "" {
		uploadURL = parsed.UploadURLAlt
	}
	if uploadURL == "" {
		return "", errors.New("vendor did not return uploadUrl")
	}
	return uploadURL, nil
}

// UploadApprovedImage uploads the file at filePath to the vendor: a signed
// URL exchange followed by a raw PUT of the bytes. The PUT carries only
// the Host and Content-Length headers; anything extra invalidates the
// object store's signature.
func (c *Client) UploadApprovedImage(filePath, fileName, mimeType string) error {
	log.Printf("[VENDOR_UPLOAD] Requesting signed URL for: %s", fileName)
	uploadURL, err := c.RequestUploadURL(fileName, mimeType)
	if err != nil {
		return err
	}
	log.Println("[VENDOR_UPLOAD] Received signed URL (expires in 30 min)")

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file for vendor upload: %v", err)
	}

	parsed, err := url.Parse(uploadURL)
	if err != nil {
		return fmt.Errorf("vendor returned an invalid signed URL: %v", err)
	}

	req, err := http.NewRequest("PUT", uploadURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("error creating upload request: %v", err)
	}
	req.Host = parsed.Host
	req.ContentLength = int64(len(data))
	// No other headers. Go adds Content-Type sniffing only when the header
	// map carries it; leaving it unset keeps the signature valid.

	log.Printf("[VENDOR_UPLOAD] Uploading %d bytes to vendor store...", len(data))
	resp, err := c.UploadClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to upload file to vendor signed URL: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[VENDOR_UPLOAD] Upload failed (HTTP %d): %s", resp.StatusCode, truncate(body, 200))
		return fmt.Errorf("vendor upload rejected with status %d: %s", resp.StatusCode, truncate(body, 200))
	}

	log.Printf("[VENDOR_UPLOAD] File uploaded successfully (HTTP %d)", resp.StatusCode)
	return nil
}

func truncate(body []byte, limit int) string {
	if len(body) > limit {
		body = body[:limit]
	}
	return string(body)
}
