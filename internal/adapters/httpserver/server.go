package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/codstore/internal/adapters/identity"
	"github.com/phenrril/codstore/internal/auth"
	"github.com/phenrril/codstore/internal/domain"
	"github.com/phenrril/codstore/internal/metrics"
	"github.com/phenrril/codstore/internal/usecase"
)

const maxBodyBytes = 1 << 20

type Deps struct {
	Products *usecase.ProductUC
	Content  *usecase.ContentUC
	Carts    *usecase.CartUC
	Orders   *usecase.OrderUC
	Auth     *usecase.AuthUC
	// Google is nil when Google sign-in is not configured.
	Google  *identity.Google
	Cookies *auth.Signer
	Metrics *metrics.Registry
	// SecureCookies forces the Secure flag even behind plain HTTP.
	SecureCookies bool
	// RateLimit is the per-client budget per minute across all routes; 0 disables it.
	RateLimit  int
	TrustProxy bool
}

// sensitiveLimits are per-client requests per minute on anonymous write endpoints.
var sensitiveLimits = map[string]int{
	"POST /admin/login":    10,
	"POST /api/checkout":   10,
	"POST /api/cart/items": 60,
}

type Server struct {
	mux      *http.ServeMux
	products *usecase.ProductUC
	content  *usecase.ContentUC
	carts    *usecase.CartUC
	orders   *usecase.OrderUC
	auth     *usecase.AuthUC
	google   *identity.Google
	cookies  *auth.Signer
	metrics  *metrics.Registry
	secure   bool
}

func New(d Deps) http.Handler {
	s := &Server{
		mux:      http.NewServeMux(),
		products: d.Products,
		content:  d.Content,
		carts:    d.Carts,
		orders:   d.Orders,
		auth:     d.Auth,
		google:   d.Google,
		cookies:  d.Cookies,
		metrics:  d.Metrics,
		secure:   d.SecureCookies,
	}
	s.routes()
	return Chain(s.mux,
		RequestID,
		Recovery,
		Logging(d.Metrics),
		PublicRateLimit(sensitiveLimits, d.TrustProxy),
		RateLimit(d.RateLimit, d.TrustProxy),
		Gzip,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics.Handler())
	}

	// catálogo público
	s.mux.HandleFunc("GET /api/products", s.apiProducts)
	s.mux.HandleFunc("GET /api/products/{id}", s.apiProduct)
	s.mux.HandleFunc("GET /api/categories", s.apiCategories)
	s.mux.HandleFunc("GET /api/faqs", s.apiFAQs)
	s.mux.HandleFunc("GET /api/settings", s.apiSettings)
	s.mux.HandleFunc("GET /api/provinces", s.apiProvinces)

	s.mux.HandleFunc("GET /api/cart", s.apiCart)
	s.mux.HandleFunc("POST /api/cart/items", s.apiCartAdd)
	s.mux.HandleFunc("PUT /api/cart/items/{productID}", s.apiCartUpdate)
	s.mux.HandleFunc("DELETE /api/cart/items/{productID}", s.apiCartRemove)
	s.mux.HandleFunc("DELETE /api/cart", s.apiCartClear)

	s.mux.HandleFunc("POST /api/checkout", s.apiCheckout)
	s.mux.HandleFunc("GET /api/orders/{id}", s.apiOrderConfirmation)

	// auth admin
	s.mux.HandleFunc("POST /admin/login", s.handleAdminLogin)
	s.mux.HandleFunc("POST /admin/logout", s.handleAdminLogout)
	s.mux.HandleFunc("GET /admin/session", s.handleAdminSession)
	s.mux.HandleFunc("GET /auth/google/login", s.handleGoogleLogin)
	s.mux.HandleFunc("GET /auth/google/callback", s.handleGoogleCallback)

	s.mux.HandleFunc("GET /admin/api/dashboard", s.requireAdmin(s.adminDashboard))

	s.mux.HandleFunc("GET /admin/api/orders", s.requireAdmin(s.adminOrders))
	s.mux.HandleFunc("GET /admin/api/orders/export.xlsx", s.requireAdmin(s.adminOrdersExport))
	s.mux.HandleFunc("GET /admin/api/orders/{id}", s.requireAdmin(s.adminOrder))
	s.mux.HandleFunc("PATCH /admin/api/orders/{id}", s.requireAdmin(s.adminOrderUpdate))
	s.mux.HandleFunc("GET /admin/api/orders/{id}/invoice", s.requireAdmin(s.adminInvoice))
	s.mux.HandleFunc("GET /admin/api/orders/{id}/invoice.xlsx", s.requireAdmin(s.adminInvoiceXLSX))

	s.mux.HandleFunc("POST /admin/api/products", s.requireAdmin(s.adminProductCreate))
	s.mux.HandleFunc("PUT /admin/api/products/{id}", s.requireAdmin(s.adminProductUpdate))
	s.mux.HandleFunc("DELETE /admin/api/products/{id}", s.requireAdmin(s.adminProductDelete))
	s.mux.HandleFunc("PATCH /admin/api/products/{id}/stock", s.requireAdmin(s.adminProductStock))

	s.mux.HandleFunc("POST /admin/api/categories", s.requireAdmin(s.adminCategoryCreate))
	s.mux.HandleFunc("PUT /admin/api/categories/{id}", s.requireAdmin(s.adminCategoryUpdate))
	s.mux.HandleFunc("DELETE /admin/api/categories/{id}", s.requireAdmin(s.adminCategoryDelete))

	s.mux.HandleFunc("GET /admin/api/faqs", s.requireAdmin(s.adminFAQs))
	s.mux.HandleFunc("POST /admin/api/faqs", s.requireAdmin(s.adminFAQCreate))
	s.mux.HandleFunc("PUT /admin/api/faqs/{id}", s.requireAdmin(s.adminFAQUpdate))
	s.mux.HandleFunc("DELETE /admin/api/faqs/{id}", s.requireAdmin(s.adminFAQDelete))

	s.mux.HandleFunc("PUT /admin/api/settings", s.requireAdmin(s.adminSettingsUpdate))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

// writeError maps domain errors onto status codes. Anything unrecognised is
// logged and reported as a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "validation", Fields: verrs})
	case errors.Is(err, domain.ErrEmptyCart), errors.Is(err, domain.ErrInvalidQuantity):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "unauthorized"})
	case errors.Is(err, domain.ErrNotAdmin):
		writeJSON(w, http.StatusForbidden, errorBody{Error: domain.ErrNotAdmin.Error()})
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrOutOfStock):
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Str("rid", RequestIDFrom(r.Context())).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

// decodeJSON rejects unknown fields and trailing data.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		badRequest(w, fmt.Sprintf("invalid json: %v", err))
		return false
	}
	if dec.Decode(&struct{}{}) != io.EOF {
		badRequest(w, "invalid json: trailing data")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		badRequest(w, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
