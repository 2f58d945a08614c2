package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	invoice.ID = uuid.New()
	now := time.Now().UTC()
	invoice.CreatedAt = now
	invoice.UpdatedAt = now
	if invoice.InvoiceDate.IsZero() {
		invoice.InvoiceDate = now
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO invoices (id, business_name, business_address, business_gstin,
		business_phone, business_email, client_name, client_address, client_gstin,
		client_phone, gst_rate, sub_total, cgst_amount, sgst_amount, grand_total,
		invoice_number, invoice_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

	_, err = tx.ExecContext(ctx, query,
		invoice.ID, invoice.BusinessName, invoice.BusinessAddress, invoice.BusinessGSTIN,
		invoice.BusinessPhone, invoice.BusinessEmail, invoice.ClientName, invoice.ClientAddress,
		invoice.ClientGSTIN, invoice.ClientPhone, invoice.GSTRate, invoice.SubTotal,
		invoice.CGSTAmount, invoice.SGSTAmount, invoice.GrandTotal, invoice.InvoiceNumber,
		invoice.InvoiceDate, invoice.Notes, invoice.CreatedAt, invoice.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "invoice_number") {
			return domain.ErrDuplicateInvoiceNumber
		}
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}

	itemQuery := `INSERT INTO invoice_items (id, invoice_id, position, product_name, quantity, unit_price, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i := range invoice.Items {
		item := &invoice.Items[i]
		item.ID = uuid.New()
		item.InvoiceID = invoice.ID
		item.Position = i
		if _, err := tx.ExecContext(ctx, itemQuery,
			item.ID, item.InvoiceID, item.Position, item.ProductName,
			item.Quantity, item.UnitPrice, item.Amount); err != nil {
			return fmt.Errorf("invoiceRepo.Create item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("invoiceRepo.Create commit: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.GetContext(ctx, &invoice, "SELECT * FROM invoices WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}

	err = r.db.SelectContext(ctx, &invoice.Items,
		"SELECT * FROM invoice_items WHERE invoice_id = $1 ORDER BY position", id)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.GetByID items: %w", err)
	}
	return &invoice, nil
}

func (r *invoiceRepo) List(ctx context.Context) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.SelectContext(ctx, &invoices,
		"SELECT * FROM invoices ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	if len(invoices) == 0 {
		return invoices, nil
	}

	ids := make([]uuid.UUID, len(invoices))
	for i := range invoices {
		ids[i] = invoices[i].ID
	}

	query, args, err := sqlx.In(
		"SELECT * FROM invoice_items WHERE invoice_id IN (?) ORDER BY position", ids)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.List items query: %w", err)
	}
	var items []domain.LineItem
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("invoiceRepo.List items: %w", err)
	}

	byInvoice := make(map[uuid.UUID][]domain.LineItem, len(invoices))
	for _, item := range items {
		byInvoice[item.InvoiceID] = append(byInvoice[item.InvoiceID], item)
	}
	for i := range invoices {
		invoices[i].Items = byInvoice[invoices[i].ID]
	}
	return invoices, nil
}

func (r *invoiceRepo) Delete(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	invoice, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// invoice_items rows go with the invoice via ON DELETE CASCADE.
	result, err := r.db.ExecContext(ctx, "DELETE FROM invoices WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, domain.ErrNotFound
	}
	return invoice, nil
}

func (r *invoiceRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM invoices"); err != nil {
		return 0, fmt.Errorf("invoiceRepo.Count: %w", err)
	}
	return count, nil
}
