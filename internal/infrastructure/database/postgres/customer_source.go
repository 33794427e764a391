package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"customer-directory/internal/domain/customer"

	"github.com/jackc/pgx/v5"
)

const selectCustomers = `
	SELECT id, first_name, last_name, city, company
	FROM customers
	ORDER BY id`

type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// CustomerSource reads the seed records from a customers table. It never
// writes.
type CustomerSource struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.Source = (*CustomerSource)(nil)

func NewCustomerSource(db DBPool, logger *slog.Logger) *CustomerSource {
	if db == nil {
		panic("DBPool cannot be nil for CustomerSource")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerSource, using default stderr handler")
	}
	return &CustomerSource{
		db:     db,
		logger: logger.With("component", "CustomerSource"),
	}
}

func (s *CustomerSource) Name() string {
	return "postgres"
}

func (s *CustomerSource) Customers(ctx context.Context) ([]customer.Customer, error) {
	s.logger.InfoContext(ctx, "Reading customers from database")

	rows, err := s.db.Query(ctx, selectCustomers)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []customer.Customer
	for rows.Next() {
		var c customer.Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.City, &c.Company); err != nil {
			s.logger.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", err))
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		s.logger.ErrorContext(ctx, "Error iterating customer rows", slog.Any("error", err))
		return nil, fmt.Errorf("failed to read customers: %w", err)
	}

	s.logger.InfoContext(ctx, "Read customers from database", slog.Int("count", len(customers)))
	return customers, nil
}
