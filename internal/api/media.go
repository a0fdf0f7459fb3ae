// ABOUTME: HTTP handler for uploading newsletter images and videos to object
// ABOUTME: storage under media/ with randomized names and a public URL back.
package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	maxImageSize = 10 << 20
	maxVideoSize = 50 << 20
)

// allowedImageTypes and allowedVideoTypes map an accepted MIME type to the
// extension used when the filename carries none.
var (
	allowedImageTypes = map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/gif":  ".gif",
		"image/webp": ".webp",
	}
	allowedVideoTypes = map[string]string{
		"video/mp4":       ".mp4",
		"video/quicktime": ".mov",
		"video/webm":      ".webm",
	}
)

// uploadMediaResponse is the JSON response for POST /api/upload-media.
type uploadMediaResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Type     string `json:"type"`
	Size     int64  `json:"size"`
}

// uploadMediaHandler handles POST /api/upload-media. Accepts one multipart
// file field named "file", stores it under media/, and returns its public URL
// for the editor to embed.
func (srv *Server) uploadMediaHandler(w http.ResponseWriter, r *http.Request) {
	if srv.store == nil {
		writeError(w, http.StatusServiceUnavailable, "Storage not available")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "Empty filename")
		return
	}

	contentType := header.Header.Get("Content-Type")
	_, isImage := allowedImageTypes[contentType]
	_, isVideo := allowedVideoTypes[contentType]
	if !isImage && !isVideo {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unsupported file type: %s", contentType))
		return
	}

	limit := int64(maxImageSize)
	kind := "image"
	if isVideo {
		limit = maxVideoSize
		kind = "video"
	}
	if header.Size > limit {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("File too large. Max %dMB.", limit>>20))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read upload")
		return
	}
	if int64(len(data)) > limit {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("File too large. Max %dMB.", limit>>20))
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		if isImage {
			ext = allowedImageTypes[contentType]
		} else {
			ext = allowedVideoTypes[contentType]
		}
	}

	key := "media/" + strings.ReplaceAll(uuid.NewString(), "-", "") + ext
	if err := srv.store.Write(r.Context(), key, data, contentType); err != nil {
		slog.ErrorContext(r.Context(), "media upload failed", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	slog.InfoContext(r.Context(), "media uploaded", "key", key, "type", kind, "size", len(data))

	writeJSON(w, http.StatusOK, uploadMediaResponse{
		Success:  true,
		URL:      srv.store.PublicURL(key),
		Filename: header.Filename,
		Type:     kind,
		Size:     int64(len(data)),
	})
}
