package fakeapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/requestid"
)

type account struct {
	Account
	hash      []byte
	lastLogin time.Time
}

// API is an http.Handler serving the storefront endpoints from memory.
// It is safe for concurrent use.
type API struct {
	router     chi.Router
	logger     *slog.Logger
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int

	seedAccounts []Account
	products     []Product
	categories   []string

	mu       sync.RWMutex
	accounts map[string]*account
	revoked  map[string]struct{}
	nextID   int64
}

// New builds an API with the default fixtures unless overridden by options.
func New(opts ...Option) *API {
	a := &API{
		logger:       logger.Nop(),
		secret:       []byte("storefront-fakeapi-secret-0123456789"),
		tokenTTL:     24 * time.Hour,
		bcryptCost:   bcrypt.MinCost,
		seedAccounts: DefaultAccounts(),
		products:     DefaultProducts(),
		categories:   DefaultCategories(),
		accounts:     make(map[string]*account),
		revoked:      make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.categories == nil {
		for _, p := range a.products {
			if !slices.Contains(a.categories, p.Category) {
				a.categories = append(a.categories, p.Category)
			}
		}
		slices.Sort(a.categories)
	}

	for _, acc := range a.seedAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), a.bcryptCost)
		if err != nil {
			panic("fakeapi: hash fixture password: " + err.Error())
		}
		acc.Password = ""
		a.accounts[acc.Username] = &account{Account: acc, hash: hash}
		a.nextID = max(a.nextID, acc.ID)
	}

	a.router = a.routes()
	return a
}

func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

func (a *API) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestid.Middleware, a.logRequests)

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/login", a.handleLogin)
		r.Post("/register", a.handleRegister)
		r.Group(func(r chi.Router) {
			r.Use(a.requireAuth)
			r.Get("/profile", a.handleProfile)
			r.Put("/profile", a.handleUpdateProfile)
			r.Post("/reset-password", a.handleResetPassword)
		})
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", a.handleListProducts)
		r.Get("/categories", a.handleCategories)
		r.Get("/{id}", a.handleProduct)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "not found")
	})
	return r
}

func (a *API) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		a.logger.DebugContext(r.Context(), "fakeapi request",
			logger.Method(r.Method),
			logger.URL(r.URL.Path),
			logger.Status(rec.status),
			logger.Duration(time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

type claimsKey struct{}

func (a *API) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeMessage(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		claims, err := a.parseToken(token)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
	})
}

func claimsFrom(ctx context.Context) *Claims {
	c, _ := ctx.Value(claimsKey{}).(*Claims)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}
