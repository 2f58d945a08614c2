package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"gstbill/internal/domain"
)

// A4 page geometry in millimetres.
const (
	pageMargin  = 15.0
	tableBottom = 270.0
)

// Column widths for the items table, summing to the usable page width.
var colWidths = [5]float64{12, 88, 20, 30, 30}

// Filename builds the download name for a rendered invoice. An empty number
// means the invoice was never saved, so the name carries DRAFT instead.
func Filename(invoiceNumber string, date time.Time) string {
	if invoiceNumber == "" {
		invoiceNumber = "DRAFT"
	}
	return fmt.Sprintf("Invoice-%s-%s.pdf", invoiceNumber, date.Format("2006-01-02"))
}

// FormatINR renders an amount with Indian digit grouping, e.g. 1234567.89
// becomes Rs. 12,34,567.89. Core PDF fonts cannot encode the rupee sign, so
// the Rs. prefix stands in for it.
func FormatINR(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := fmt.Sprintf("%.2f", amount)
	whole, frac, _ := strings.Cut(s, ".")

	// Indian grouping: the last three digits form one group, everything
	// before that is grouped in pairs.
	var grouped string
	if len(whole) <= 3 {
		grouped = whole
	} else {
		grouped = whole[len(whole)-3:]
		rest := whole[:len(whole)-3]
		for len(rest) > 2 {
			grouped = rest[len(rest)-2:] + "," + grouped
			rest = rest[:len(rest)-2]
		}
		grouped = rest + "," + grouped
	}

	if neg {
		return "-Rs. " + grouped + "." + frac
	}
	return "Rs. " + grouped + "." + frac
}

// Render produces the PDF bytes for an invoice. The invoice may be a draft
// with no number assigned yet.
func Render(inv *domain.Invoice) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.AddPage()

	writeHeader(doc, inv)
	writeParties(doc, inv)
	writeItems(doc, inv)
	writeTotals(doc, inv)
	writeNotes(doc, inv)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf.Render: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(doc *gofpdf.Fpdf, inv *domain.Invoice) {
	doc.SetFont("Arial", "B", 22)
	doc.CellFormat(0, 12, "TAX INVOICE", "", 1, "C", false, 0, "")

	number := inv.InvoiceNumber
	if number == "" {
		number = "DRAFT"
	}
	doc.SetFont("Arial", "", 10)
	doc.CellFormat(0, 6, fmt.Sprintf("Invoice No: %s", number), "", 1, "C", false, 0, "")
	doc.CellFormat(0, 6, fmt.Sprintf("Date: %s", inv.InvoiceDate.Format("02 Jan 2006")), "", 1, "C", false, 0, "")
	doc.Ln(4)
}

// writeParties draws the seller and buyer blocks side by side.
func writeParties(doc *gofpdf.Fpdf, inv *domain.Invoice) {
	half := (210.0 - 2*pageMargin) / 2

	doc.SetFont("Arial", "B", 10)
	doc.CellFormat(half, 6, "From", "", 0, "L", false, 0, "")
	doc.CellFormat(half, 6, "Bill To", "", 1, "L", false, 0, "")

	top := doc.GetY()
	writeParty(doc, pageMargin, top, half-4,
		inv.BusinessName, inv.BusinessAddress, inv.BusinessGSTIN, inv.BusinessPhone, inv.BusinessEmail)
	left := doc.GetY()
	writeParty(doc, pageMargin+half, top, half-4,
		inv.ClientName, inv.ClientAddress, inv.ClientGSTIN, inv.ClientPhone, "")
	if left > doc.GetY() {
		doc.SetY(left)
	}
	doc.Ln(6)
}

func writeParty(doc *gofpdf.Fpdf, x, y, width float64, name, address, gstin, phone, email string) {
	doc.SetXY(x, y)
	doc.SetFont("Arial", "B", 11)
	doc.MultiCell(width, 5, name, "", "L", false)

	doc.SetFont("Arial", "", 9)
	if address != "" {
		doc.SetX(x)
		doc.MultiCell(width, 4.5, address, "", "L", false)
	}
	if gstin != "" {
		doc.SetX(x)
		doc.MultiCell(width, 4.5, "GSTIN: "+gstin, "", "L", false)
	}
	if phone != "" {
		doc.SetX(x)
		doc.MultiCell(width, 4.5, "Phone: "+phone, "", "L", false)
	}
	if email != "" {
		doc.SetX(x)
		doc.MultiCell(width, 4.5, "Email: "+email, "", "L", false)
	}
}

func writeItems(doc *gofpdf.Fpdf, inv *domain.Invoice) {
	writeItemsHeader(doc)

	doc.SetFont("Arial", "", 9)
	for i, item := range inv.Items {
		if doc.GetY() > tableBottom {
			doc.AddPage()
			writeItemsHeader(doc)
			doc.SetFont("Arial", "", 9)
		}
		doc.CellFormat(colWidths[0], 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		doc.CellFormat(colWidths[1], 7, item.ProductName, "1", 0, "L", false, 0, "")
		doc.CellFormat(colWidths[2], 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		doc.CellFormat(colWidths[3], 7, FormatINR(item.UnitPrice), "1", 0, "R", false, 0, "")
		doc.CellFormat(colWidths[4], 7, FormatINR(item.Amount), "1", 1, "R", false, 0, "")
	}
	doc.Ln(3)
}

func writeItemsHeader(doc *gofpdf.Fpdf) {
	doc.SetFont("Arial", "B", 9)
	doc.SetFillColor(235, 235, 235)
	headers := [5]string{"#", "Item", "Qty", "Rate", "Amount"}
	aligns := [5]string{"C", "L", "C", "R", "R"}
	for i, h := range headers {
		last := 0
		if i == len(headers)-1 {
			last = 1
		}
		doc.CellFormat(colWidths[i], 8, h, "1", last, aligns[i], true, 0, "")
	}
}

func writeTotals(doc *gofpdf.Fpdf, inv *domain.Invoice) {
	labelW := 210.0 - 2*pageMargin - colWidths[4]
	half := inv.GSTRate / 2

	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		doc.SetFont("Arial", style, 10)
		doc.CellFormat(labelW, 7, label, "", 0, "R", false, 0, "")
		doc.CellFormat(colWidths[4], 7, value, "T", 1, "R", false, 0, "")
	}

	row("Subtotal", FormatINR(inv.SubTotal), false)
	row(fmt.Sprintf("CGST (%g%%)", half), FormatINR(inv.CGSTAmount), false)
	row(fmt.Sprintf("SGST (%g%%)", half), FormatINR(inv.SGSTAmount), false)
	row("Grand Total", FormatINR(inv.GrandTotal), true)
	doc.Ln(4)
}

func writeNotes(doc *gofpdf.Fpdf, inv *domain.Invoice) {
	if inv.Notes == "" {
		return
	}
	doc.SetFont("Arial", "B", 9)
	doc.CellFormat(0, 5, "Notes", "", 1, "L", false, 0, "")
	doc.SetFont("Arial", "", 9)
	doc.MultiCell(0, 4.5, inv.Notes, "", "L", false)
}
