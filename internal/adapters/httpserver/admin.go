package httpserver

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/phenrril/codstore/internal/adapters/export"
	"github.com/phenrril/codstore/internal/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) adminDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.orders.Dashboard(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// --- Pedidos ---

func (s *Server) adminOrders(w http.ResponseWriter, r *http.Request) {
	list, err := s.orders.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) adminOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	o, err := s.orders.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) adminOrderUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Status    *domain.OrderStatus `json:"status"`
		AdminNote *string             `json:"admin_note"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	o, err := s.orders.Update(r.Context(), id, domain.OrderUpdate{Status: req.Status, AdminNote: req.AdminNote})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) adminInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	inv, err := s.orders.Invoice(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func writeXLSX(w http.ResponseWriter, name string, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) adminInvoiceXLSX(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	inv, err := s.orders.Invoice(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteInvoice(&buf, inv); err != nil {
		writeError(w, r, err)
		return
	}
	writeXLSX(w, inv.Order.OrderNumber+".xlsx", &buf)
}

func (s *Server) adminOrdersExport(w http.ResponseWriter, r *http.Request) {
	list, err := s.orders.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteOrders(&buf, list); err != nil {
		writeError(w, r, err)
		return
	}
	writeXLSX(w, "orders-"+time.Now().Format("20060102")+".xlsx", &buf)
}

// --- Productos ---

type productInput struct {
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	Specifications map[string]string   `json:"specifications"`
	ShippingInfo   string              `json:"shipping_info"`
	Price          int64               `json:"price"`
	DiscountType   domain.DiscountType `json:"discount_type"`
	DiscountValue  decimal.Decimal     `json:"discount_value"`
	Images         []string            `json:"images"`
	CategoryID     *uuid.UUID          `json:"category_id"`
	Stock          int                 `json:"stock"`
	Available      *bool               `json:"available"`
	IsFeatured     bool                `json:"is_featured"`
	IsNew          bool                `json:"is_new"`
}

func (in productInput) product() *domain.Product {
	available := true
	if in.Available != nil {
		available = *in.Available
	}
	return &domain.Product{
		Name:           in.Name,
		Description:    in.Description,
		Specifications: in.Specifications,
		ShippingInfo:   in.ShippingInfo,
		Price:          in.Price,
		DiscountType:   in.DiscountType,
		DiscountValue:  in.DiscountValue,
		Images:         in.Images,
		CategoryID:     in.CategoryID,
		Stock:          in.Stock,
		Available:      available,
		IsFeatured:     in.IsFeatured,
		IsNew:          in.IsNew,
	}
}

func (s *Server) adminProductCreate(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if !decodeJSON(w, r, &in) {
		return
	}
	p := in.product()
	if err := s.products.Create(r.Context(), p); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) adminProductUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in productInput
	if !decodeJSON(w, r, &in) {
		return
	}
	p, err := s.products.Update(r.Context(), id, in.product())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) adminProductDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.products.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) adminProductStock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Stock int `json:"stock"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.products.SetStock(r.Context(), id, req.Stock); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"stock": req.Stock})
}

// --- Categorías ---

type categoryInput struct {
	Name string `json:"name"`
}

func (s *Server) adminCategoryCreate(w http.ResponseWriter, r *http.Request) {
	var in categoryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := s.products.CreateCategory(r.Context(), in.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) adminCategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in categoryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := s.products.RenameCategory(r.Context(), id, in.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) adminCategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.products.DeleteCategory(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- FAQ ---

type faqInput struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Order    int    `json:"order"`
	Visible  *bool  `json:"visible"`
}

func (in faqInput) faq() *domain.FAQ {
	visible := true
	if in.Visible != nil {
		visible = *in.Visible
	}
	return &domain.FAQ{Question: in.Question, Answer: in.Answer, SortOrder: in.Order, Visible: visible}
}

func (s *Server) adminFAQs(w http.ResponseWriter, r *http.Request) {
	list, err := s.content.ListFAQs(r.Context(), false)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) adminFAQCreate(w http.ResponseWriter, r *http.Request) {
	var in faqInput
	if !decodeJSON(w, r, &in) {
		return
	}
	f := in.faq()
	if err := s.content.CreateFAQ(r.Context(), f); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (s *Server) adminFAQUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in faqInput
	if !decodeJSON(w, r, &in) {
		return
	}
	f, err := s.content.UpdateFAQ(r.Context(), id, in.faq())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) adminFAQDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.content.DeleteFAQ(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Ajustes ---

func (s *Server) adminSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var in struct {
		StoreName    string              `json:"store_name"`
		LogoURL      string              `json:"logo_url"`
		LogoShape    domain.LogoShape    `json:"logo_shape"`
		LogoPosition domain.LogoPosition `json:"logo_position"`
		Address      string              `json:"address"`
		Phone        string              `json:"phone"`
		Email        string              `json:"email"`
		SocialLinks  map[string]string   `json:"social_links"`
		MapLocation  string              `json:"map_location"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	st, err := s.content.UpdateSettings(r.Context(), &domain.Settings{
		StoreName:    in.StoreName,
		LogoURL:      in.LogoURL,
		LogoShape:    in.LogoShape,
		LogoPosition: in.LogoPosition,
		Address:      in.Address,
		Phone:        in.Phone,
		Email:        in.Email,
		SocialLinks:  in.SocialLinks,
		MapLocation:  in.MapLocation,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
