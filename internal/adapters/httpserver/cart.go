package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/phenrril/codstore/internal/cart"
)

type cartLine struct {
	cart.LineItem
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Total     decimal.Decimal `json:"total"`
}

type cartView struct {
	Items      []cartLine      `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

func viewCart(c *cart.Store) cartView {
	v := cartView{Items: []cartLine{}, TotalItems: c.TotalItems(), TotalPrice: c.TotalPrice()}
	for _, li := range c.Items() {
		v.Items = append(v.Items, cartLine{LineItem: li, UnitPrice: li.UnitPrice(), Total: li.Total()})
	}
	return v
}

func (s *Server) apiCart(w http.ResponseWriter, r *http.Request) {
	c, err := s.cartFor(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewCart(c))
}

func (s *Server) apiCartAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID uuid.UUID `json:"product_id"`
		Quantity  *int      `json:"quantity"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	c, err := s.cartFor(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.carts.AddProduct(r.Context(), c, req.ProductID, qty); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewCart(c))
}

func (s *Server) apiCartUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "productID")
	if !ok {
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := s.cartFor(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.carts.SetQuantity(r.Context(), c, id, req.Quantity); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewCart(c))
}

func (s *Server) apiCartRemove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "productID")
	if !ok {
		return
	}
	c, err := s.cartFor(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.carts.Remove(r.Context(), c, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewCart(c))
}

func (s *Server) apiCartClear(w http.ResponseWriter, r *http.Request) {
	c, err := s.cartFor(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.carts.Clear(r.Context(), c); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewCart(c))
}
