// Package numbering formats human-readable invoice numbers.
//
// The sequence component comes from the system-wide count of stored invoices
// plus one, computed at assignment time. The year-month prefix reflects when
// the invoice was created, but the sequence does not reset each month; a new
// month simply continues the global sequence. Uniqueness is enforced by the
// store, not here.
package numbering

import (
	"fmt"
	"time"
)

// Format renders an invoice number as INV-{year}{month}-{sequence}, with the
// month zero-padded to two digits and the sequence to four.
func Format(at time.Time, sequence int) string {
	return fmt.Sprintf("INV-%04d%02d-%04d", at.Year(), int(at.Month()), sequence)
}
