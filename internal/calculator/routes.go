package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the form endpoint used by the front end and the JSON
// per-operation endpoints.
func RegisterRoutes(r chi.Router) {
	r.Post("/api/calculate", Calculate)

	r.Route("/calculator", func(r chi.Router) {
		r.Post("/{operation}", Evaluate)
	})
}
