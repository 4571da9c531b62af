package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/events", handler.ListEvents)
	mux.HandleFunc("POST /v1/events", handler.CreateEvent)
	mux.HandleFunc("GET /v1/events/{eventID}", handler.GetEvent)
	mux.HandleFunc("GET /v1/events/{eventID}/registrations", handler.ListRegistrationsByEvent)
	mux.HandleFunc("POST /v1/events/{eventID}/registrations", handler.RegisterAttendee)
	mux.HandleFunc("POST /v1/events/{eventID}/registrations/export", handler.ExportRegistrations)
	mux.HandleFunc("GET /v1/events/{eventID}/matches", handler.ListMatchesByEvent)
	mux.HandleFunc("POST /v1/events/{eventID}/matches", handler.CreateMatch)
	mux.HandleFunc("GET /v1/events/{eventID}/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("POST /v1/events/{eventID}/leaderboard/export", handler.ExportLeaderboard)
	mux.HandleFunc("GET /v1/events/{eventID}/spins", handler.GetSpinUsage)
	mux.HandleFunc("POST /v1/events/{eventID}/spins", handler.SpinWheel)
	mux.HandleFunc("GET /v1/predictions", handler.ListPredictions)
	mux.HandleFunc("POST /v1/predictions", handler.SubmitPrediction)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/sync-results", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncResultsJob)))
}
