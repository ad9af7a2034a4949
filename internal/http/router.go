package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/credito/internal/http/auth"
	"github.com/MrJamesThe3rd/credito/internal/http/client"
	"github.com/MrJamesThe3rd/credito/internal/http/export"
	"github.com/MrJamesThe3rd/credito/internal/http/importcsv"
	"github.com/MrJamesThe3rd/credito/internal/http/loan"
	"github.com/MrJamesThe3rd/credito/internal/http/portfolio"
	"github.com/MrJamesThe3rd/credito/internal/http/transaction"
)

type Options struct {
	JWTSecret   string
	CORSOrigins []string
}

func New(
	opts Options,
	clientsV1 *client.Handler,
	loansV1 *loan.Handler,
	importV1 *importcsv.Handler,
	cashflowV1 *transaction.Handler,
	exportV1 *export.Handler,
	portfolioV1 *portfolio.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(opts.JWTSecret))

		r.Route("/clients", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			clientsV1.Routes(r)
		})

		r.Route("/loans", func(r chi.Router) {
			importV1.Routes(r)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				loansV1.Routes(r)
			})
		})

		r.Route("/cashflow", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			cashflowV1.Routes(r)
			exportV1.Routes(r)
		})

		r.Route("/portfolio", portfolioV1.Routes)
	})

	return router
}
