package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/xgenie/xgenie-api/internal/api"
	apiMiddleware "github.com/xgenie/xgenie-api/internal/api/middleware"
)

// requestTimeout bounds a request end to end. It covers the worst-case
// generation: four attempts plus three capped waits.
const requestTimeout = 3 * time.Minute

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenValidator)
	generateHandler := api.NewGenerateHandler(app.draftService, app.logger)
	draftHandler := api.NewDraftHandler(app.draftService, app.logger)
	keyHandler := api.NewKeyHandler(app.apiKeyService, app.logger)
	healthHandler := api.NewHealthHandler(app.healthPinger(), app.orchestrator.HasDefaultCredential())

	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Post("/generate", generateHandler.Generate)

		r.Get("/drafts", draftHandler.ListDrafts)
		r.Get("/drafts/{id}", draftHandler.GetDraft)
		r.Delete("/drafts/{id}", draftHandler.DeleteDraft)

		r.Get("/keys", keyHandler.GetKey)
		r.Put("/keys", keyHandler.SaveKey)
		r.Delete("/keys", keyHandler.DeleteKey)
		r.Post("/keys/test", keyHandler.TestKey)
	})

	return r
}
