package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account, created either through email/password signup
// or through a federated (social) sign-in.
type User struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	Name         string       `db:"name" json:"name"`
	Email        *string      `db:"email" json:"email"`
	Phone        *string      `db:"phone" json:"phone"`
	PasswordHash string       `db:"password_hash" json:"-"`
	FederatedID  *string      `db:"federated_id" json:"-"`
	AuthProvider AuthProvider `db:"auth_provider" json:"auth_provider"`
	PhotoURL     *string      `db:"photo_url" json:"photo_url"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// LineItem is a single product line on an invoice. Amount is always recomputed
// from quantity and unit price on the server, never trusted from input.
type LineItem struct {
	ID          uuid.UUID `db:"id" json:"id"`
	InvoiceID   uuid.UUID `db:"invoice_id" json:"-"`
	Position    int       `db:"position" json:"-"`
	ProductName string    `db:"product_name" json:"product_name"`
	Quantity    int       `db:"quantity" json:"quantity"`
	UnitPrice   float64   `db:"unit_price" json:"unit_price"`
	Amount      float64   `db:"amount" json:"amount"`
}

// Invoice is a persisted GST invoice. Derived totals and the invoice number
// are assigned at creation time and are immutable thereafter; the only
// mutation an invoice supports is deletion.
type Invoice struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	BusinessName    string     `db:"business_name" json:"business_name"`
	BusinessAddress string     `db:"business_address" json:"business_address"`
	BusinessGSTIN   string     `db:"business_gstin" json:"business_gstin"`
	BusinessPhone   string     `db:"business_phone" json:"business_phone"`
	BusinessEmail   string     `db:"business_email" json:"business_email"`
	ClientName      string     `db:"client_name" json:"client_name"`
	ClientAddress   string     `db:"client_address" json:"client_address"`
	ClientGSTIN     string     `db:"client_gstin" json:"client_gstin"`
	ClientPhone     string     `db:"client_phone" json:"client_phone"`
	Items           []LineItem `db:"-" json:"items"`
	GSTRate         float64    `db:"gst_rate" json:"gst_rate"`
	SubTotal        float64    `db:"sub_total" json:"sub_total"`
	CGSTAmount      float64    `db:"cgst_amount" json:"cgst_amount"`
	SGSTAmount      float64    `db:"sgst_amount" json:"sgst_amount"`
	GrandTotal      float64    `db:"grand_total" json:"grand_total"`
	InvoiceNumber   string     `db:"invoice_number" json:"invoice_number"`
	InvoiceDate     time.Time  `db:"invoice_date" json:"invoice_date"`
	Notes           string     `db:"notes" json:"notes"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}
