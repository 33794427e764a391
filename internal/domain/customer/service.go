package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"customer-directory/internal/event"
)

type CustomerService interface {
	ListCustomers(ctx context.Context, filter Filter, page Page) (ListResult, error)
	GetCustomer(ctx context.Context, id int64) (*Customer, error)
	CountByCity(ctx context.Context) (map[string]int, error)
	CreateCustomer(ctx context.Context, c Customer) error
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   CustomerRepository
	pub    event.EventPublisher
	logger *slog.Logger
}

func NewCustomerService(repo CustomerRepository, pub event.EventPublisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	if pub == nil {
		pub = event.NewNoopPublisher(logger)
	}

	return &customerService{
		repo:   repo,
		pub:    pub,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func (s *customerService) ListCustomers(ctx context.Context, filter Filter, page Page) (ListResult, error) {
	logger := s.logger.With(slog.Int("page", page.Number), slog.Int("limit", page.Limit))
	logger.DebugContext(ctx, "Listing customers", slog.Bool("filtered", !filter.IsEmpty()))

	all, err := s.repo.All(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return ListResult{}, fmt.Errorf("failed to list customers: %w", err)
	}

	matched := all
	if !filter.IsEmpty() {
		matched = make([]Customer, 0, len(all))
		for _, c := range all {
			if filter.Matches(c) {
				matched = append(matched, c)
			}
		}
	}

	start, end := page.Window(len(matched))
	data := make([]Customer, end-start)
	copy(data, matched[start:end])

	logger.DebugContext(ctx, "Listed customers", slog.Int("total", len(matched)), slog.Int("returned", len(data)))
	return ListResult{
		Total:     len(matched),
		Page:      page.Number,
		Limit:     page.Limit,
		Customers: data,
	}, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id int64) (*Customer, error) {
	logger := s.logger.With(slog.Int64("customerID", id))

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.DebugContext(ctx, "Customer not found by repository")
			return nil, ErrNotFound
		}
		logger.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", id, err)
	}
	return c, nil
}

func (s *customerService) CountByCity(ctx context.Context) (map[string]int, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error counting cities", slog.Any("error", err))
		return nil, fmt.Errorf("failed to count customers by city: %w", err)
	}

	counts := make(map[string]int)
	for _, c := range all {
		counts[c.City]++
	}
	return counts, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, c Customer) error {
	logger := s.logger.With(slog.Int64("customerID", c.ID))

	if err := c.Validate(); err != nil {
		logger.WarnContext(ctx, "Validation failed", slog.Any("error", err))
		return err
	}

	err := s.repo.Update(ctx, func(tx Tx) error {
		if err := checkReferences(tx.All(), c); err != nil {
			return err
		}
		tx.Append(c)
		return nil
	})
	if err != nil {
		level := slog.LevelWarn
		if !isRejection(err) {
			level = slog.LevelError
		}
		logger.Log(ctx, level, "Customer was not added", slog.Any("error", err))
		return err
	}
	logger.InfoContext(ctx, "Customer added")

	created := event.NewCustomerCreatedEvent(event.CustomerEventPayload{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		City:      c.City,
		Company:   c.Company,
	})
	if pubErr := s.pub.PublishCustomerCreated(ctx, created); pubErr != nil {
		logger.ErrorContext(ctx, "Customer added, but FAILED to publish creation event", slog.Any("error", pubErr))
	}
	return nil
}

// checkReferences applies the insertion rules in order: unique id, known
// city, known company.
func checkReferences(existing []Customer, c Customer) error {
	var duplicate, cityFound, companyFound bool
	for _, e := range existing {
		if e.ID == c.ID {
			duplicate = true
			break
		}
		cityFound = cityFound || e.City == c.City
		companyFound = companyFound || e.Company == c.Company
	}

	switch {
	case duplicate:
		return ErrDuplicateID
	case !cityFound:
		return ErrUnknownCity
	case !companyFound:
		return ErrUnknownCompany
	}
	return nil
}

func isRejection(err error) bool {
	return errors.Is(err, ErrDuplicateID) ||
		errors.Is(err, ErrUnknownCity) ||
		errors.Is(err, ErrUnknownCompany)
}
