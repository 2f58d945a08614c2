package port

import (
	"context"

	"github.com/google/uuid"

	"gstbill/internal/domain"
)

// UserRepository defines the contract for account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByFederatedID(ctx context.Context, federatedID string) (*domain.User, error)
	// LinkFederatedIdentity attaches a federated identity to an existing
	// account, switching its auth provider and filling in the photo URL if
	// the account has none.
	LinkFederatedIdentity(ctx context.Context, userID uuid.UUID, provider domain.AuthProvider, federatedID string, photoURL *string) error
}

// InvoiceRepository defines the contract for invoice persistence. Invoices
// are immutable once stored; there is deliberately no Update.
type InvoiceRepository interface {
	// Create persists the invoice and its line items transactionally.
	// Returns domain.ErrDuplicateInvoiceNumber when the assigned invoice
	// number collides with an existing one.
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context) ([]domain.Invoice, error)
	// Delete removes the invoice and returns the deleted record.
	Delete(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	Count(ctx context.Context) (int, error)
}
