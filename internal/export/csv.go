package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"gstbill/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var bom = []byte{0xEF, 0xBB, 0xBF}

// columns defines the export header row, shared by the CSV and XLSX writers.
var columns = []string{
	"Invoice Number",
	"Invoice Date",
	"Business Name",
	"Business GSTIN",
	"Client Name",
	"Client GSTIN",
	"Line Item Count",
	"GST Rate",
	"Subtotal",
	"CGST",
	"SGST",
	"Grand Total",
	"Notes",
	"Created At",
}

// CSV renders a batch of invoices as a BOM-prefixed CSV document.
func CSV(invoices []domain.Invoice) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(bom)

	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("export.CSV header: %w", err)
	}
	for i := range invoices {
		if err := w.Write(invoiceToRow(&invoices[i])); err != nil {
			return nil, fmt.Errorf("export.CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export.CSV flush: %w", err)
	}
	return buf.Bytes(), nil
}

func invoiceToRow(inv *domain.Invoice) []string {
	return []string{
		inv.InvoiceNumber,
		inv.InvoiceDate.Format("2006-01-02"),
		inv.BusinessName,
		inv.BusinessGSTIN,
		inv.ClientName,
		inv.ClientGSTIN,
		strconv.Itoa(len(inv.Items)),
		formatMoney(inv.GSTRate),
		formatMoney(inv.SubTotal),
		formatMoney(inv.CGSTAmount),
		formatMoney(inv.SGSTAmount),
		formatMoney(inv.GrandTotal),
		inv.Notes,
		inv.CreatedAt.Format(time.RFC3339),
	}
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
