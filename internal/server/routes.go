package server

import "net/http"

func registerRoutes(mux *http.ServeMux, srv *Server) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": srv.version})
	})
	mux.HandleFunc("/api/v1/check", srv.handleCheck)
	mux.HandleFunc("/api/v1/reports", srv.handleReports)
}
