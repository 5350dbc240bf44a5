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

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("GET /v1/slots", handler.ListSlots)
	mux.HandleFunc("GET /v1/contests", handler.ListContests)
	mux.HandleFunc("GET /v1/contests/{contestID}", handler.GetContest)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/hot", handler.ListHotPlayers)
	mux.HandleFunc("GET /v1/players/hot/ids", handler.ListHotPlayerIDs)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/players/{playerID}/hot", handler.GetPlayerHot)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeamDetail)

	// The leaderboard renders for everyone; a bearer token only adds
	// the caller's own entry to the payload.
	mux.Handle("GET /v1/leaderboard", OptionalAuth(verifier, http.HandlerFunc(handler.GetLeaderboard)))
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("GET /v1/teams/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMyTeam)))
	mux.Handle("PUT /v1/teams/{teamID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateTeam)))
	mux.Handle("POST /v1/teams/{teamID}/enrollments", RequireAuth(verifier, http.HandlerFunc(handler.EnrollTeam)))
	mux.Handle("DELETE /v1/teams/{teamID}/enrollments/{contestID}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveTeamEnrollment)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/ingestion/player-points", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.IngestPlayerPoints)))
	mux.Handle("POST /v1/internal/jobs/refresh-points", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRefreshPointsJob)))
}
