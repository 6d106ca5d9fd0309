package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"flattenrepo/internal/gateway/repository/artifact"
	"flattenrepo/internal/gateway/repository/taskstore"
	"flattenrepo/internal/gateway/service/flattener"
)

// TaskHandler serves the JSON task API and the document endpoints.
type TaskHandler struct {
	svc *flattener.Service
}

func NewTaskHandler(svc *flattener.Service) *TaskHandler {
	return &TaskHandler{svc: svc}
}

type taskResponse struct {
	TaskID   string `json:"task_id"`
	RepoURL  string `json:"repo_url,omitempty"`
	Status   string `json:"status"`
	Message  string `json:"message"`
	Progress int    `json:"progress"`
	FileSize int64  `json:"file_size,omitempty"`
}

func toTaskResponse(t taskstore.Task) taskResponse {
	return taskResponse{
		TaskID:   t.ID,
		RepoURL:  t.RepoURL,
		Status:   string(t.Status),
		Message:  t.Message,
		Progress: t.Progress,
		FileSize: t.FileSize,
	}
}

func (h *TaskHandler) HandleFlatten(w http.ResponseWriter, r *http.Request) {
	var in struct {
		RepoURL  string `json:"repo_url"`
		MaxBytes int64  `json:"max_bytes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	repoURL := strings.TrimSpace(in.RepoURL)
	if repoURL == "" {
		http.Error(w, "repo_url is required", http.StatusBadRequest)
		return
	}

	task, err := h.svc.Start(repoURL, in.MaxBytes)
	if err != nil {
		if errors.Is(err, flattener.ErrInvalidRepoURL) {
			http.Error(w, "Please enter a valid GitHub repository URL", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(toTaskResponse(task))
}

func (h *TaskHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	task, ok, err := h.svc.Status(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toTaskResponse(task))
}

func (h *TaskHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	filename, doc, ok := h.document(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(doc)
}

func (h *TaskHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	_, doc, ok := h.document(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(doc)
}

func (h *TaskHandler) document(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	id := strings.TrimSpace(r.PathValue("id"))
	filename, doc, err := h.svc.Document(r.Context(), id)
	switch {
	case err == nil:
		return filename, doc, true
	case errors.Is(err, flattener.ErrNotReady):
		http.Error(w, "document not ready", http.StatusConflict)
	case errors.Is(err, artifact.ErrNotFound):
		http.Error(w, "task not found", http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
	return "", nil, false
}
