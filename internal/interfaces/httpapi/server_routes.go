package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerFixtureRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/fixtures", handler.ListFixtures)
	mux.HandleFunc("GET /v1/rounds", handler.ListRounds)
}

func registerTipRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/tips/process", handler.ProcessTips)
	mux.HandleFunc("POST /v1/tips/decrypt", handler.DecryptTips)
	mux.HandleFunc("POST /v1/tips", handler.SaveTip)
	mux.HandleFunc("GET /v1/tips", handler.ListTips)
}
