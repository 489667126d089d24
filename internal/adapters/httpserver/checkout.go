package httpserver

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/phenrril/codstore/internal/domain"
)

func (s *Server) apiCheckout(w http.ResponseWriter, r *http.Request) {
	var form domain.CheckoutForm
	if !decodeJSON(w, r, &form) {
		return
	}
	c, err := s.cartFor(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	o, err := s.orders.Checkout(r.Context(), c, form)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"order_id":     o.ID,
		"order_number": o.OrderNumber,
		"total":        o.Total,
	})
}

// confirmation is what the customer sees after checkout; the admin note stays
// internal.
type confirmation struct {
	OrderNumber  string             `json:"order_number"`
	Status       domain.OrderStatus `json:"status"`
	CustomerName string             `json:"customer_name"`
	Province     string             `json:"province"`
	Address      string             `json:"address"`
	Items        []domain.OrderItem `json:"items"`
	Total        decimal.Decimal    `json:"total"`
	CreatedAt    time.Time          `json:"created_at"`
}

func (s *Server) apiOrderConfirmation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	o, err := s.orders.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, confirmation{
		OrderNumber:  o.OrderNumber,
		Status:       o.Status,
		CustomerName: o.CustomerName,
		Province:     o.Province,
		Address:      o.Address,
		Items:        o.Items,
		Total:        o.Total,
		CreatedAt:    o.CreatedAt,
	})
}
