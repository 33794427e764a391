package customer

import (
	"context"

	"customer-directory/internal/pkg/apperrors"
)

var (
	ErrNotFound = apperrors.New(apperrors.ErrNotFound, "CUSTOMER_NOT_FOUND", "Customer not found")

	ErrMissingFields = apperrors.New(apperrors.ErrValidation, "MISSING_FIELDS", "All fields are required")

	ErrDuplicateID = apperrors.New(apperrors.ErrAlreadyExists, "DUPLICATE_ID", "Customer with this ID already exists")

	ErrUnknownCity = apperrors.New(apperrors.ErrValidation, "UNKNOWN_CITY", "City does not exist for an existing customer")

	ErrUnknownCompany = apperrors.New(apperrors.ErrValidation, "UNKNOWN_COMPANY", "Company does not exist for an existing customer")
)

// Tx is the view of the store passed to Update. It is only valid for the
// duration of the callback.
type Tx interface {
	All() []Customer

	Append(c Customer)
}

type CustomerRepository interface {
	All(ctx context.Context) ([]Customer, error)

	FindByID(ctx context.Context, id int64) (*Customer, error)

	Len(ctx context.Context) (int, error)

	// Update runs fn while holding the store's write lock. Nothing fn
	// appends is visible to readers before fn returns.
	Update(ctx context.Context, fn func(tx Tx) error) error
}

// Source supplies the records a store is seeded with at startup.
type Source interface {
	Name() string

	Customers(ctx context.Context) ([]Customer, error)
}
