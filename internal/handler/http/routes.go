package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withMetrics)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/login", h.login)
		r.Post("/api/users", h.registerConsumer)
		r.Method("GET", "/metrics", promhttp.Handler())
	})

	// routes behind JWT authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/users", h.listConsumers)
		r.Get("/api/users/{id}", h.getConsumer)
		r.Put("/api/users/{id}", h.updateConsumer)
		r.Delete("/api/users/{id}", h.deleteConsumer)

		r.Post("/api/users/{id}/bills", h.generateBill)
		r.Get("/api/users/{id}/bills", h.listBills)
		r.Get("/api/bills/{billID}", h.getBill)
		r.Post("/api/bills/{billID}/pay", h.payBill)
	})

	return router
}
