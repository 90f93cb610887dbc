// Package server exposes the calculators over a JSON HTTP API. It is the
// reactive-UI shim: every request recomputes derived state from the inputs
// it carries, with no state surviving between requests beyond the expense
// store and the schedule cache.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/loanlens/loanlens/internal/banks"
	"github.com/loanlens/loanlens/internal/cache"
	"github.com/loanlens/loanlens/internal/expense"
	"github.com/loanlens/loanlens/pkg/amortize"
	"github.com/loanlens/loanlens/pkg/eligibility"
	"github.com/loanlens/loanlens/pkg/validation"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	logger     *zap.Logger
	engine     *amortize.Engine
	checker    *eligibility.Checker
	comparator *banks.Comparator
	expenses   expense.Store
	cache      cache.Cache
	bounds     validation.Bounds
	version    string
}

// Options configures a Handler.
type Options struct {
	Logger     *zap.Logger
	Comparator *banks.Comparator
	Expenses   expense.Store
	Cache      cache.Cache
	Bounds     validation.Bounds
	Version    string
}

// NewHandler creates a Handler with the given collaborators. Nil optional
// collaborators get working defaults.
func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	comparator := opts.Comparator
	if comparator == nil {
		comparator = banks.NewComparator(logger, nil)
	}
	c := opts.Cache
	if c == nil {
		c = cache.NewMemory()
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		logger:     logger,
		engine:     amortize.NewEngine(logger),
		checker:    eligibility.NewChecker(logger),
		comparator: comparator,
		expenses:   opts.Expenses,
		cache:      c,
		bounds:     opts.Bounds,
		version:    version,
	}
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/amortize", h.Amortize)
		r.Post("/eligibility", h.Eligibility)

		r.Route("/banks", func(r chi.Router) {
			r.Get("/", h.ListBanks)
			r.Get("/compare", h.CompareBanks)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", h.ListExpenses)
			r.Post("/", h.AddExpense)
			r.Get("/summary", h.ExpenseSummary)
			r.Get("/export", h.ExportExpenses)
		})

		r.Get("/version", h.Version)
	})

	return r
}

// Version reports build metadata for UI chrome.
func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"version": h.version})
}
