package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/equiprent/pkg/app"
	"github.com/ghuser/equiprent/pkg/auth"
	"github.com/ghuser/equiprent/services/rental/application/handlers"
	appsvcs "github.com/ghuser/equiprent/services/rental/application/services"
)

// RentalRoutes registers rental endpoints on the provided chi router.
//
// Catalog writes need an operator session, so PATCH /items/{id}/image is
// mounted only when a.SessionStore is set, and the sign-in endpoints only
// when an operator API key is configured.
func RentalRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	prod := a.Config.IsProduction()
	items := handlers.NewGetItemsHandler(svcs, a.Logger, prod)

	r.Group(func(r chi.Router) {
		r.Post("/reservations", handlers.NewPostReservationHandler(svcs, a.Logger, prod).Execute)

		r.Route("/items", func(r chi.Router) {
			r.Get("/", items.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", items.Get)
				r.Get("/booked-ranges", handlers.NewGetBookedRangesHandler(svcs, a.Logger, prod).Execute)

				if a.SessionStore != nil {
					r.With(auth.RequireAuth(a.SessionStore, a.Logger)).
						Patch("/image", handlers.NewPatchItemImageHandler(svcs, a.Logger, prod).Execute)
				}
			})
		})
	})

	if a.SessionStore != nil && a.Config.OperatorAPIKey != "" {
		r.Route("/operator/session", func(r chi.Router) {
			r.Post("/", auth.SignInHandler(a.SessionStore, a.Config.OperatorAPIKey, a.Logger))
			r.Delete("/", auth.SignOutHandler(a.SessionStore, a.Logger))
		})
	}
}
