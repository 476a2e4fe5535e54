package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/c360studio/vstore/order"
)

// Row is one exported order, flattened for tabular output.
type Row struct {
	OrderID  string `json:"order_id"`
	Date     string `json:"date"`
	Status   string `json:"status"`
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`
	Items    string `json:"items"`
}

// header is the CSV column order; keep it in sync with Row.
var header = []string{"order id", "date", "status", "subtotal", "discount", "shipping", "total", "items"}

// NewRow flattens an order into a Row.
func NewRow(o order.Order) Row {
	return Row{
		OrderID:  o.ID,
		Date:     o.CreatedAt.UTC().Format(time.RFC3339),
		Status:   string(o.Status),
		Subtotal: o.Totals.Subtotal.StringFixed(2),
		Discount: o.Totals.Discount.StringFixed(2),
		Shipping: o.Totals.Shipping.StringFixed(2),
		Total:    o.Totals.Total.StringFixed(2),
		Items:    itemSummary(o),
	}
}

// itemSummary renders "2x Red Apples; 1x Whole Milk".
func itemSummary(o order.Order) string {
	parts := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		parts = append(parts, fmt.Sprintf("%dx %s", it.Qty, it.Name))
	}
	return strings.Join(parts, "; ")
}

// Write renders orders to w in the given format.
func Write(w io.Writer, orders []order.Order, format Format) error {
	rows := make([]Row, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, NewRow(o))
	}

	switch format {
	case FormatCSV:
		return writeCSV(w, rows)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
}

func writeCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		record := []string{r.OrderID, r.Date, r.Status, r.Subtotal, r.Discount, r.Shipping, r.Total, r.Items}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %s: %w", r.OrderID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
