package icustomerrepo

import (
	"context"

	"github.com/feastly/order-svc/internal/service/models/customer"
)

// ICustomerRepository defines the customer directory operations.
type ICustomerRepository interface {
	// FindOrCreate resolves a submission to one identity: exact email
	// match first, then exact phone match, else a new row.
	FindOrCreate(ctx context.Context, c customer.Customer) (*customer.Customer, error)

	// FindByEmail returns the customer with the given email, or nil.
	FindByEmail(ctx context.Context, email string) (*customer.Customer, error)

	// FindByPhone returns the customer with the given phone, or nil.
	FindByPhone(ctx context.Context, phone string) (*customer.Customer, error)
}
