package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/fpgabadges/badge-api/internal/auth"
	"github.com/fpgabadges/badge-api/internal/store"
	"github.com/google/uuid"
)

const maxUploadBytes = 10 << 20

// UploadHandler accepts badge icon images as multipart form uploads and
// stores them under the static images directory. It runs as a plain chi
// handler behind the auth middleware because huma does not model the
// multipart form the frontend sends.
type UploadHandler struct {
	store     *store.Store
	staticDir string
}

func NewUploadHandler(store *store.Store, staticDir string) *UploadHandler {
	return &UploadHandler{store: store, staticDir: staticDir}
}

func (h *UploadHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to write upload response: %v", err)
	}
}

func (h *UploadHandler) fail(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]any{"success": false, "message": message})
}

// safeFilename rejects anything that could escape the images directory.
func safeFilename(name string) bool {
	return name != "" && !strings.Contains(name, "..") &&
		!strings.ContainsAny(name, `/\`)
}

func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.fail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	user, err := h.store.GetUser(userID)
	if err != nil || !user.IsAdmin() {
		h.fail(w, http.StatusForbidden, "Administrator access required")
		return
	}

	imageDir := filepath.Join(h.staticDir, "images")
	if err := os.MkdirAll(imageDir, 0o755); err != nil {
		h.fail(w, http.StatusInternalServerError, "Failed to prepare image directory")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.fail(w, http.StatusBadRequest, "Invalid upload")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		h.fail(w, http.StatusBadRequest, "No image file found")
		return
	}
	defer file.Close()

	filename := r.FormValue("filename")
	if !safeFilename(filename) {
		filename = header.Filename
	}
	if !safeFilename(filename) {
		filename = fmt.Sprintf("badge_%s.jpg", uuid.NewString())
	}

	dst, err := os.Create(filepath.Join(imageDir, filename))
	if err != nil {
		h.fail(w, http.StatusInternalServerError, "Failed to save image")
		return
	}
	defer dst.Close()

	size, err := io.Copy(dst, file)
	if err != nil {
		h.fail(w, http.StatusInternalServerError, "Failed to save image")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"filename": filename,
		"size":     size,
	})
}
