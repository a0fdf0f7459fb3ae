// ABOUTME: Integration tests for the media upload endpoint: type checks, size
// ABOUTME: caps, extension handling, and degradation when storage is absent.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/britecreationsdylanne/brite-side/internal/blob"
	"github.com/britecreationsdylanne/brite-side/internal/config"
)

// uploadBody builds a multipart body with one file part carrying an explicit
// Content-Type. multipart.Writer.CreateFormFile hardcodes octet-stream, so the
// part header is written by hand.
func uploadBody(t *testing.T, field, filename, contentType string, data []byte) (string, io.Reader) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return mw.FormDataContentType(), &buf
}

func doUpload(t *testing.T, ctx context.Context, ts *httptest.Server, contentType string, body io.Reader) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.URL+"/api/upload-media", body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := ts.Client().Do(req) //nolint:gosec // G704 false positive: ts.URL is httptest.Server
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return resp
}

// TestUploadImage verifies an image lands under media/ with a randomized name
// keeping the original extension lowercased.
func TestUploadImage(t *testing.T) {
	t.Parallel()
	srv, ts := newTestServer(t, nil)
	ctx := context.Background()

	data := []byte("\x89PNG not really a png")
	contentType, body := uploadBody(t, "file", "Team Photo.PNG", "image/png", data)
	resp := doUpload(t, ctx, ts, contentType, body)
	defer resp.Body.Close() //nolint:errcheck,gosec // G104
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got %d, want 200", resp.StatusCode)
	}
	var out uploadMediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Success || out.Type != "image" || out.Filename != "Team Photo.PNG" {
		t.Errorf("response = %+v", out)
	}
	if out.Size != int64(len(data)) {
		t.Errorf("size = %d, want %d", out.Size, len(data))
	}
	if !strings.HasPrefix(out.URL, "memory://media/") || !strings.HasSuffix(out.URL, ".png") {
		t.Errorf("url = %q, want memory://media/<name>.png", out.URL)
	}

	mem, ok := srv.store.(*blob.Memory)
	if !ok {
		t.Fatalf("store is %T, want *blob.Memory", srv.store)
	}
	if mem.Len() != 1 {
		t.Errorf("store holds %d blobs, want 1", mem.Len())
	}
}

// TestUploadVideo verifies the video MIME set and its type label.
func TestUploadVideo(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t, nil)
	ctx := context.Background()

	contentType, body := uploadBody(t, "file", "party.mp4", "video/mp4", []byte("fake mp4 bytes"))
	resp := doUpload(t, ctx, ts, contentType, body)
	defer resp.Body.Close() //nolint:errcheck,gosec // G104
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got %d, want 200", resp.StatusCode)
	}
	var out uploadMediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Type != "video" || !strings.HasSuffix(out.URL, ".mp4") {
		t.Errorf("response = %+v", out)
	}
}

// TestUploadExtensionFromMIME verifies a bare filename gets the extension of
// its MIME type.
func TestUploadExtensionFromMIME(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t, nil)
	ctx := context.Background()

	contentType, body := uploadBody(t, "file", "snapshot", "image/webp", []byte("webp-ish"))
	resp := doUpload(t, ctx, ts, contentType, body)
	defer resp.Body.Close() //nolint:errcheck,gosec // G104
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got %d, want 200", resp.StatusCode)
	}
	var out uploadMediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasSuffix(out.URL, ".webp") {
		t.Errorf("url = %q, want .webp suffix", out.URL)
	}
}

// TestUploadRejectsUnsupportedType verifies the MIME allowlist.
func TestUploadRejectsUnsupportedType(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t, nil)
	ctx := context.Background()

	contentType, body := uploadBody(t, "file", "report.pdf", "application/pdf", []byte("%PDF-1.7"))
	resp := doUpload(t, ctx, ts, contentType, body)
	defer resp.Body.Close() //nolint:errcheck,gosec // G104
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", resp.StatusCode)
	}
	var out struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Error != "Unsupported file type: application/pdf" {
		t.Errorf("error = %q", out.Error)
	}
}

// TestUploadRequiresFile verifies a form without the file field is rejected.
func TestUploadRequiresFile(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t, nil)
	ctx := context.Background()

	contentType, body := uploadBody(t, "attachment", "x.png", "image/png", []byte("png"))
	resp := doUpload(t, ctx, ts, contentType, body)
	defer resp.Body.Close() //nolint:errcheck,gosec // G104
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", resp.StatusCode)
	}
	var out struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Error != "No file provided" {
		t.Errorf("error = %q", out.Error)
	}
}

// TestUploadImageTooLarge verifies the 10MB image cap.
func TestUploadImageTooLarge(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t, nil)
	ctx := context.Background()

	contentType, body := uploadBody(t, "file", "huge.png", "image/png", bytes.Repeat([]byte{0xAB}, maxImageSize+1))
	resp := doUpload(t, ctx, ts, contentType, body)
	defer resp.Body.Close() //nolint:errcheck,gosec // G104
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", resp.StatusCode)
	}
	var out struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Error != "File too large. Max 10MB." {
		t.Errorf("error = %q", out.Error)
	}
}

// TestUploadWithoutStore verifies the 503 when object storage is not wired.
func TestUploadWithoutStore(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t, func(_ *config.Config, deps *Deps) {
		deps.Store = nil
	})
	ctx := context.Background()

	contentType, body := uploadBody(t, "file", "x.png", "image/png", []byte("png"))
	resp := doUpload(t, ctx, ts, contentType, body)
	defer resp.Body.Close() //nolint:errcheck,gosec // G104
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("got %d, want 503", resp.StatusCode)
	}
	var out struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Error != "Storage not available" {
		t.Errorf("error = %q", out.Error)
	}
}
