package httpserver

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/phenrril/codstore/internal/domain"
)

func (s *Server) apiProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f domain.ProductFilter
	if raw := q.Get("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(w, "invalid category_id")
			return
		}
		f.CategoryID = &id
	}
	f.Featured = q.Get("featured") == "1" || q.Get("featured") == "true"
	f.IsNew = q.Get("new") == "1" || q.Get("new") == "true"
	list, err := s.products.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) apiProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := s.products.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) apiCategories(w http.ResponseWriter, r *http.Request) {
	list, err := s.products.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) apiFAQs(w http.ResponseWriter, r *http.Request) {
	list, err := s.content.ListFAQs(r.Context(), true)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) apiSettings(w http.ResponseWriter, r *http.Request) {
	st, err := s.content.GetSettings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) apiProvinces(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.Provinces)
}
