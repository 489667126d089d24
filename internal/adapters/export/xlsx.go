// Package export renders orders and invoices as Excel workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/phenrril/codstore/internal/domain"
	"github.com/phenrril/codstore/internal/usecase"
)

const (
	ordersSheet  = "Orders"
	invoiceSheet = "Invoice"
	dateLayout   = "2006-01-02 15:04"
)

var orderHeader = []any{"Order", "Date", "Customer", "Phone", "Province", "Address", "Items", "Total", "Status", "Note", "Admin note"}

// WriteOrders writes one row per order after a header row.
func WriteOrders(w io.Writer, orders []domain.Order) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(ordersSheet, "A1", &orderHeader); err != nil {
		return err
	}
	for i, o := range orders {
		qty := 0
		for _, it := range o.Items {
			qty += it.Quantity
		}
		row := []any{
			o.OrderNumber,
			o.CreatedAt.Format(dateLayout),
			o.CustomerName,
			o.CustomerPhone,
			o.Province,
			o.Address,
			qty,
			o.Total.InexactFloat64(),
			string(o.Status),
			o.Note,
			o.AdminNote,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(ordersSheet, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	if err := f.SetPanes(ordersSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}
	_ = f.SetColWidth(ordersSheet, "A", "A", 22)
	_ = f.SetColWidth(ordersSheet, "C", "F", 24)
	return f.Write(w)
}

// WriteInvoice lays out the printable invoice: store block, customer block,
// item lines and the total.
func WriteInvoice(w io.Writer, inv *usecase.Invoice) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", invoiceSheet); err != nil {
		return err
	}
	o := inv.Order
	rows := [][]any{
		{inv.Store.StoreName},
		{inv.Store.Address, inv.Store.Phone},
		{},
		{"Invoice", o.OrderNumber},
		{"Date", o.CreatedAt.Format(dateLayout)},
		{"Customer", o.CustomerName},
		{"Phone", o.CustomerPhone},
		{"Address", o.Province + ", " + o.Address},
		{},
		{"Product", "Quantity", "Price", "Total"},
	}
	for _, l := range inv.Lines {
		rows = append(rows, []any{l.Name, l.Quantity, l.UnitPrice.InexactFloat64(), l.Total.InexactFloat64()})
	}
	rows = append(rows, []any{}, []any{"Total", "", "", inv.Total.InexactFloat64()})
	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(invoiceSheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	_ = f.SetCellStyle(invoiceSheet, "A1", "A1", bold)
	_ = f.SetCellStyle(invoiceSheet, "A10", "D10", bold)
	last, _ := excelize.CoordinatesToCellName(4, len(rows))
	_ = f.SetCellStyle(invoiceSheet, "A"+last[1:], last, bold)
	_ = f.SetColWidth(invoiceSheet, "A", "A", 32)
	return f.Write(w)
}
