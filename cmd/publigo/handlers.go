package main

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/publigo-project/publigo"
)

type handler struct {
	svc        *publigo.Service
	enginePath string
	maxUpload  int64
}

func newHandler(svc *publigo.Service, enginePath string, maxUpload int64) *handler {
	return &handler{svc: svc, enginePath: enginePath, maxUpload: maxUpload}
}

// mergeFile mirrors the wire format of one manifest entry.
type mergeFile struct {
	Filename string `json:"filename"`
	Mime     string `json:"mime"`
	Base64   string `json:"base64"`
}

type mergeResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Label     string      `json:"label,omitempty"`
	Files     []mergeFile `json:"files,omitempty"`
	ZipBase64 string      `json:"zipBase64,omitempty"`
	Skipped   int         `json:"skipped,omitempty"`
}

// POST /merge
// Multipart parts: template (docx/pptx), datafile (csv/xlsx);
// optional field outputType (pdf, docx, pptx, png, jpg; default pdf).
func (h *handler) handleMerge(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "ERR_MISSING_FILES")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	templateBytes, templateName, okT := formFile(r, "template")
	dataBytes, dataName, okD := formFile(r, "datafile")
	if !okT || !okD {
		writeError(w, http.StatusBadRequest, "ERR_MISSING_FILES")
		return
	}

	result, err := h.svc.Merge(r.Context(), publigo.Input{
		TemplateName: templateName,
		Template:     templateBytes,
		DataName:     dataName,
		Data:         dataBytes,
		OutputType:   r.FormValue("outputType"),
	})
	if err != nil {
		if code, ok := publigo.ErrorCode(err); ok {
			writeError(w, http.StatusBadRequest, code)
			return
		}
		slog.Error("merge failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	files := make([]mergeFile, 0, len(result.Artifacts))
	for _, a := range result.Artifacts {
		files = append(files, mergeFile{
			Filename: a.Filename,
			Mime:     publigo.MimeType(a.Kind),
			Base64:   base64.StdEncoding.EncodeToString(a.Content),
		})
	}

	writeJSON(w, http.StatusOK, mergeResponse{
		Success:   true,
		Label:     result.Label,
		Files:     files,
		ZipBase64: base64.StdEncoding.EncodeToString(result.Archive),
		Skipped:   result.Skipped,
	})
}

// GET /health
func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"engine": h.enginePath,
	})
}

// formFile reads one uploaded part fully into memory.
func formFile(r *http.Request, name string) (content []byte, filename string, ok bool) {
	file, header, err := r.FormFile(name)
	if err != nil {
		return nil, "", false
	}
	defer closeQuiet(file)

	content, err = io.ReadAll(file)
	if err != nil || len(content) == 0 {
		return nil, "", false
	}
	return content, header.Filename, true
}

func closeQuiet(f multipart.File) {
	_ = f.Close()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, mergeResponse{Success: false, Message: message})
}
