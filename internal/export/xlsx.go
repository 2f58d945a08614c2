package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"gstbill/internal/domain"
)

const sheetName = "Invoices"

// XLSX renders a batch of invoices as an Excel workbook with one row per
// invoice, using the same columns as the CSV export.
func XLSX(invoices []domain.Invoice) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("export.XLSX sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("export.XLSX header: %w", err)
	}

	for i := range invoices {
		cells := invoiceToRow(&invoices[i])
		row := make([]interface{}, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("export.XLSX row: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("export.XLSX write: %w", err)
	}
	return buf.Bytes(), nil
}
