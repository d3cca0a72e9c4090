package imports

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Result summarizes one processed file.
type Result struct {
	Filename string `json:"filename"`
	RowCount int    `json:"row_count"`
	Applied  int    `json:"applied"`
	Kind     string `json:"kind"`
}

// Importer is the service-layer entry point the ingest handlers call.
type Importer interface {
	ImportFile(ctx context.Context, companyID uuid.UUID, kind, filename string, r io.Reader) (*Result, error)
}

// Handler exposes the ingest endpoints: multipart upload and Google Drive
// pull. The Drive source may be nil when no credentials are configured.
type Handler struct {
	importer Importer
	drive    *DriveSource
}

func NewHandler(importer Importer, drive *DriveSource) *Handler {
	return &Handler{importer: importer, drive: drive}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/ingest/upload", h.Upload).Methods("POST")
	router.HandleFunc("/api/ingest/drive/files", h.ListDriveFiles).Methods("GET")
	router.HandleFunc("/api/ingest/drive/pull", h.PullDriveFile).Methods("POST")
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	kind := r.URL.Query().Get("kind")
	if kind == "" {
		http.Error(w, "kind parameter is required (orders or inventory)", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.importer.ImportFile(r.Context(), companyID, kind, header.Filename, file)
	if err != nil {
		http.Error(w, fmt.Sprintf("import failed: %v", err), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *Handler) ListDriveFiles(w http.ResponseWriter, r *http.Request) {
	if h.drive == nil {
		http.Error(w, "drive source not configured", http.StatusServiceUnavailable)
		return
	}

	query := r.URL.Query()
	folderID := query.Get("folderId")
	folderPath := query.Get("path")

	var err error
	if folderPath != "" {
		folderID, err = h.drive.FindFolderByPath(folderPath)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
	}

	files, err := h.drive.ListFiles(folderID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(files)
}

// PullDriveFile downloads one file from Drive and runs it through the
// importer. The file name decides CSV vs XLSX handling.
func (h *Handler) PullDriveFile(w http.ResponseWriter, r *http.Request) {
	if h.drive == nil {
		http.Error(w, "drive source not configured", http.StatusServiceUnavailable)
		return
	}

	companyID, err := companyFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	fileID := r.URL.Query().Get("fileId")
	if fileID == "" {
		http.Error(w, "fileId parameter is required", http.StatusBadRequest)
		return
	}
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		http.Error(w, "kind parameter is required (orders or inventory)", http.StatusBadRequest)
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		name = fileID + ".csv"
	}

	var buf bytes.Buffer
	if err := h.drive.DownloadFile(fileID, &buf); err != nil {
		http.Error(w, fmt.Sprintf("download failed: %v", err), http.StatusBadGateway)
		return
	}

	result, err := h.importer.ImportFile(r.Context(), companyID, kind, name, &buf)
	if err != nil {
		http.Error(w, fmt.Sprintf("import failed: %v", err), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func companyFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(r.Header.Get("X-Company-ID"))
	if raw == "" {
		return uuid.Nil, fmt.Errorf("missing X-Company-ID header")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid X-Company-ID header")
	}
	return id, nil
}
