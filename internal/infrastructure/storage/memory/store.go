// Package memory holds the process-local customer store.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"customer-directory/internal/domain/customer"
)

// Store keeps customers in insertion order. Reads return copies.
type Store struct {
	mu        sync.RWMutex
	customers []customer.Customer
	logger    *slog.Logger
}

var _ customer.CustomerRepository = (*Store)(nil)

func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{logger: logger.With("component", "MemoryStore")}
}

// Seed replaces the contents with the records of src. On error the store is
// left empty.
func (s *Store) Seed(ctx context.Context, src customer.Source) error {
	customers, err := src.Customers(ctx)
	if err != nil {
		s.replace(nil)
		return fmt.Errorf("seed from %s: %w", src.Name(), err)
	}
	s.replace(customers)
	s.logger.InfoContext(ctx, "Customers data loaded", slog.String("source", src.Name()), slog.Int("count", len(customers)))
	return nil
}

func (s *Store) replace(customers []customer.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = customers
}

func (s *Store) All(ctx context.Context) ([]customer.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]customer.Customer, len(s.customers))
	copy(out, s.customers)
	return out, nil
}

func (s *Store) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, customer.ErrNotFound
}

func (s *Store) Len(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.customers), nil
}

// Update runs fn under the write lock. Appends made through the Tx are
// committed only if fn returns nil.
func (s *Store) Update(ctx context.Context, fn func(tx customer.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &storeTx{current: s.customers}
	if err := fn(tx); err != nil {
		return err
	}
	s.customers = append(s.customers, tx.pending...)
	return nil
}

type storeTx struct {
	current []customer.Customer
	pending []customer.Customer
}

func (tx *storeTx) All() []customer.Customer {
	if len(tx.pending) == 0 {
		return tx.current
	}
	out := make([]customer.Customer, 0, len(tx.current)+len(tx.pending))
	out = append(out, tx.current...)
	return append(out, tx.pending...)
}

func (tx *storeTx) Append(c customer.Customer) {
	tx.pending = append(tx.pending, c)
}

// decodeCustomers expects exactly one JSON array; anything after it other
// than whitespace is an error.
func decodeCustomers(r io.Reader) ([]customer.Customer, error) {
	dec := json.NewDecoder(r)
	var customers []customer.Customer
	if err := dec.Decode(&customers); err != nil {
		return nil, fmt.Errorf("failed to parse customers JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse customers JSON: unexpected data after the customer array")
	}
	return customers, nil
}

// FileSource reads a JSON array of customers from a file.
type FileSource struct {
	Path string
}

var _ customer.Source = FileSource{}

func NewFileSource(path string) FileSource {
	return FileSource{Path: path}
}

func (f FileSource) Name() string {
	return "file:" + f.Path
}

func (f FileSource) Customers(ctx context.Context) ([]customer.Customer, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read customers file: %w", err)
	}
	defer file.Close()
	return decodeCustomers(file)
}
