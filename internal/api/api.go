package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/obiora/librarium/internal/config"
	"github.com/obiora/librarium/internal/logger"
	"github.com/obiora/librarium/internal/session"
	"github.com/obiora/librarium/internal/store"
)

var validate = validator.New()

type Api struct {
	router   *chi.Mux
	logger   logger.Logger
	store    store.Store
	sessions session.Manager
	config   *config.Config
}

func New(
	router *chi.Mux,
	logger logger.Logger,
	store store.Store,
	sessions session.Manager,
	config *config.Config,
) *Api {
	return &Api{
		router:   router,
		logger:   logger,
		store:    store,
		sessions: sessions,
		config:   config,
	}
}

func (a *Api) RegisterRoutes() {
	a.router.Use(middleware.Recoverer)
	a.router.Use(a.LoggingMiddleware)

	a.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	a.router.Post("/login", a.HandleLogin)
	a.router.Post("/logout", a.HandleLogout)

	a.router.Route("/api", func(r chi.Router) {
		r.Route("/reader", func(r chi.Router) {
			r.Use(a.RequireAuthenticated)
			r.Get("/books", a.HandleListBooks)
			r.Post("/borrow/{bookId}", a.HandleBorrowBook)
			r.Post("/return/{bookId}", a.HandleReturnBook)
			r.Post("/purchase/{bookId}", a.HandlePurchaseBook)
		})

		r.Route("/books", func(r chi.Router) {
			r.Use(a.RequireAdmin)
			r.Get("/", a.HandleListBooks)
			r.Post("/", a.HandleCreateBook)
			r.Put("/{id}", a.HandleUpdateBook)
			r.Delete("/{id}", a.HandleDeleteBook)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(a.RequireAdmin)
			r.Get("/borrowed", a.HandleOutstandingLoans)
		})
	})

	if a.config.Static_dir != "" {
		a.router.Handle("/*", http.FileServer(http.Dir(a.config.Static_dir)))
	}
}
