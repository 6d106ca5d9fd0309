package server

import (
	"net/http"

	"flattenrepo/internal/gateway/handler"
	"flattenrepo/internal/gateway/middleware"
)

func NewMux(taskHandler *handler.TaskHandler, watchHandler *handler.WatchHandler) http.Handler {
	mux := http.NewServeMux()

	// Task API
	mux.HandleFunc("POST /api/flatten", taskHandler.HandleFlatten)
	mux.HandleFunc("GET /api/status/{id}", taskHandler.HandleStatus)
	mux.HandleFunc("GET /api/watch/{id}", watchHandler.HandleWatch)

	// Document delivery
	mux.HandleFunc("GET /download/{id}", taskHandler.HandleDownload)
	mux.HandleFunc("GET /view/{id}", taskHandler.HandleView)

	return middleware.CORS(mux)
}
