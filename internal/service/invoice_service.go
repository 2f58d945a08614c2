package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"gstbill/internal/domain"
	"gstbill/internal/gst"
	"gstbill/internal/numbering"
	"gstbill/internal/port"
)

// numberingAttempts bounds the optimistic retry loop for invoice-number
// assignment. Two creations racing on the same count collide on the unique
// index; the loser recomputes the count and tries again.
const numberingAttempts = 3

// ItemInput is a single line item as submitted by the client. Amount is
// never accepted from input; it is always recomputed.
type ItemInput struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// CreateInvoiceInput is the DTO for invoice creation and previews.
type CreateInvoiceInput struct {
	BusinessName    string      `json:"business_name"`
	BusinessAddress string      `json:"business_address"`
	BusinessGSTIN   string      `json:"business_gstin"`
	BusinessPhone   string      `json:"business_phone"`
	BusinessEmail   string      `json:"business_email"`
	ClientName      string      `json:"client_name"`
	ClientAddress   string      `json:"client_address"`
	ClientGSTIN     string      `json:"client_gstin"`
	ClientPhone     string      `json:"client_phone"`
	Items           []ItemInput `json:"items"`
	GSTRate         float64     `json:"gst_rate"`
	InvoiceDate     *time.Time  `json:"invoice_date"`
	Notes           string      `json:"notes"`
}

// InvoicePreview holds server-computed amounts for an unsaved invoice, so a
// client can show totals that are bit-identical to what persistence would
// produce.
type InvoicePreview struct {
	Items  []domain.LineItem `json:"items"`
	Totals gst.Totals        `json:"totals"`
}

// InvoiceService defines the invoice store contract.
type InvoiceService interface {
	Create(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error)
	List(ctx context.Context) ([]domain.Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	Preview(input CreateInvoiceInput) (*InvoicePreview, error)
	// Draft validates input and builds an unsaved invoice with computed
	// amounts, for rendering before anything is persisted.
	Draft(input CreateInvoiceInput) (*domain.Invoice, error)
}

type invoiceService struct {
	repo port.InvoiceRepository
	now  func() time.Time
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(repo port.InvoiceRepository) InvoiceService {
	return &invoiceService{repo: repo, now: time.Now}
}

func validateInvoiceInput(input CreateInvoiceInput) error {
	var violations []string
	if strings.TrimSpace(input.BusinessName) == "" {
		violations = append(violations, "business name is required")
	}
	if strings.TrimSpace(input.ClientName) == "" {
		violations = append(violations, "client name is required")
	}
	if len(input.Items) == 0 {
		violations = append(violations, "at least one item is required")
	}
	for i, item := range input.Items {
		if strings.TrimSpace(item.ProductName) == "" {
			violations = append(violations, fmt.Sprintf("item %d: product name is required", i+1))
		}
		if item.Quantity < 1 {
			violations = append(violations, fmt.Sprintf("item %d: quantity must be at least 1", i+1))
		}
		if item.UnitPrice < 0 {
			violations = append(violations, fmt.Sprintf("item %d: price cannot be negative", i+1))
		}
	}
	if !gst.ValidRate(input.GSTRate) {
		violations = append(violations, "gst rate must be one of 5, 12, 18, 28")
	}
	return domain.NewValidationError(violations)
}

// buildItems recomputes every line amount from quantity and unit price.
func buildItems(inputs []ItemInput) []domain.LineItem {
	items := make([]domain.LineItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, domain.LineItem{
			ProductName: strings.TrimSpace(in.ProductName),
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			Amount:      gst.ItemAmount(float64(in.Quantity), in.UnitPrice),
		})
	}
	return items
}

func (s *invoiceService) Create(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error) {
	invoice, err := s.Draft(input)
	if err != nil {
		return nil, err
	}

	// Number assignment is an explicit step before persistence: read the
	// count, format the number, insert. A duplicate-number violation means
	// another creation won the race, so recompute and retry a bounded
	// number of times before surfacing the conflict.
	for attempt := 0; attempt < numberingAttempts; attempt++ {
		count, err := s.repo.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("invoice.Create count: %w", err)
		}
		invoice.InvoiceNumber = numbering.Format(s.now(), count+1)

		err = s.repo.Create(ctx, invoice)
		if err == nil {
			return invoice, nil
		}
		if !errors.Is(err, domain.ErrDuplicateInvoiceNumber) {
			return nil, err
		}
	}
	return nil, domain.ErrDuplicateInvoiceNumber
}

func (s *invoiceService) List(ctx context.Context) ([]domain.Invoice, error) {
	return s.repo.List(ctx)
}

func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *invoiceService) Delete(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	return s.repo.Delete(ctx, id)
}

func (s *invoiceService) Preview(input CreateInvoiceInput) (*InvoicePreview, error) {
	if err := validateInvoiceInput(input); err != nil {
		return nil, err
	}
	items := buildItems(input.Items)
	return &InvoicePreview{
		Items:  items,
		Totals: gst.Calculate(items, input.GSTRate),
	}, nil
}

func (s *invoiceService) Draft(input CreateInvoiceInput) (*domain.Invoice, error) {
	if err := validateInvoiceInput(input); err != nil {
		return nil, err
	}
	items := buildItems(input.Items)
	totals := gst.Calculate(items, input.GSTRate)

	invoice := &domain.Invoice{
		BusinessName:    strings.TrimSpace(input.BusinessName),
		BusinessAddress: strings.TrimSpace(input.BusinessAddress),
		BusinessGSTIN:   strings.TrimSpace(input.BusinessGSTIN),
		BusinessPhone:   strings.TrimSpace(input.BusinessPhone),
		BusinessEmail:   strings.TrimSpace(input.BusinessEmail),
		ClientName:      strings.TrimSpace(input.ClientName),
		ClientAddress:   strings.TrimSpace(input.ClientAddress),
		ClientGSTIN:     strings.TrimSpace(input.ClientGSTIN),
		ClientPhone:     strings.TrimSpace(input.ClientPhone),
		Items:           items,
		GSTRate:         input.GSTRate,
		SubTotal:        totals.SubTotal,
		CGSTAmount:      totals.CGSTAmount,
		SGSTAmount:      totals.SGSTAmount,
		GrandTotal:      totals.GrandTotal,
		InvoiceDate:     s.now(),
		Notes:           strings.TrimSpace(input.Notes),
	}
	if input.InvoiceDate != nil {
		invoice.InvoiceDate = *input.InvoiceDate
	}
	return invoice, nil
}
