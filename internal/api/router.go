package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func NewRouter(h *Handler, mw *Middleware) http.Handler {
	router := chi.NewRouter()

	router.Use(mw.Log, mw.Recover, mw.Cors)

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Group(func(r chi.Router) {
			r.Use(mw.Auth)

			r.Post("/intakes", h.CreateIntake)
			r.Post("/intakes/{id}/submit", h.SubmitIntake)
			r.Post("/intakes/{id}/approve", h.ApproveIntake)

			r.Post("/runs", h.RequestRun)
			r.Get("/runs", h.Runs)
			r.Post("/runs/{id}/cancel", h.CancelRun)
			r.Get("/runs/{id}/summary", h.RunSummary)
			r.Get("/runs/{id}/findings", h.RunFindings)

			r.Patch("/findings/{id}/status", h.UpdateFindingStatus)
		})
	})

	return router
}
