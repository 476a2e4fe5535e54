package export

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/vstore/cart"
	"github.com/c360studio/vstore/order"
	"github.com/c360studio/vstore/pricing"
)

func sampleOrder() order.Order {
	dec := decimal.RequireFromString
	return order.Order{
		ID:        "ORD-1767225600000-ab12cd34",
		CreatedAt: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		Status:    order.StatusProcessing,
		Items: []cart.LineItem{
			{ID: "fr-apple", Name: "Red Apples", Price: dec("2.99"), Qty: 2},
			{ID: "da-milk", Name: "Whole Milk", Price: dec("1.19"), Qty: 1},
		},
		Totals: pricing.Quote{
			Subtotal: dec("7.17"),
			Discount: dec("0"),
			Shipping: dec("4.99"),
			Total:    dec("12.16"),
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Write(&sb, []order.Order{sampleOrder()}, FormatCSV))

	records, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, header, records[0])
	row := records[1]
	assert.Equal(t, "ORD-1767225600000-ab12cd34", row[0])
	assert.Equal(t, "processing", row[2])
	assert.Equal(t, "7.17", row[3])
	assert.Equal(t, "12.16", row[6])
	assert.Equal(t, "2x Red Apples; 1x Whole Milk", row[7])
}

func TestWriteJSON(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Write(&sb, []order.Order{sampleOrder()}, FormatJSON))

	var rows []Row
	require.NoError(t, json.Unmarshal([]byte(sb.String()), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "4.99", rows[0].Shipping)
	assert.Equal(t, "2026-01-01T00:00:00Z", rows[0].Date)
}

func TestWriteEmptyLedger(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Write(&sb, nil, FormatCSV))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	assert.Len(t, lines, 1, "header only")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	info, ok := GetFormatInfo(f)
	require.True(t, ok)
	assert.Equal(t, "text/csv", info.MIMEType)

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}
