package memory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"customer-directory/internal/domain/customer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedJSON = `[
	{"id": 1, "first_name": "Ann", "last_name": "Lee", "city": "Oslo", "company": "Acme"},
	{"id": 2, "first_name": "Bo", "last_name": "Kim", "city": "Bergen", "company": "Globex", "email": "ignored@example.com"}
]`

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type stubSource struct {
	customers []customer.Customer
	err       error
}

func (s stubSource) Name() string { return "stub" }

func (s stubSource) Customers(ctx context.Context) ([]customer.Customer, error) {
	return s.customers, s.err
}

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "customers.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSource(t *testing.T) {
	ctx := context.Background()

	t.Run("parses a JSON array in order", func(t *testing.T) {
		got, err := NewFileSource(writeSeedFile(t, seedJSON)).Customers(ctx)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, customer.Customer{ID: 1, FirstName: "Ann", LastName: "Lee", City: "Oslo", Company: "Acme"}, got[0])
		assert.Equal(t, int64(2), got[1].ID)
	})

	t.Run("trailing whitespace is accepted", func(t *testing.T) {
		got, err := NewFileSource(writeSeedFile(t, seedJSON+"\n\n")).Customers(ctx)

		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	rejected := map[string]string{
		"truncated":        `[{"id": 1,`,
		"non-array":        `{"id": 1}`,
		"trailing garbage": `[{"id":1,"city":"Oslo"}] not json`,
		"second document":  `[{"id":1}] [{"id":2}]`,
		"stray bracket":    `[{"id":1}]]`,
	}
	for name, content := range rejected {
		t.Run(name+" is rejected", func(t *testing.T) {
			_, err := NewFileSource(writeSeedFile(t, content)).Customers(ctx)
			assert.ErrorContains(t, err, "failed to parse customers JSON")
		})
	}

	t.Run("name carries the path", func(t *testing.T) {
		assert.Equal(t, "file:/data/customers.json", NewFileSource("/data/customers.json").Name())
	})
}

func TestStoreSeed(t *testing.T) {
	ctx := context.Background()

	t.Run("from file", func(t *testing.T) {
		s := NewStore(discard)
		require.NoError(t, s.Seed(ctx, NewFileSource(writeSeedFile(t, seedJSON))))

		n, _ := s.Len(ctx)
		assert.Equal(t, 2, n)
	})

	t.Run("malformed file leaves the store empty", func(t *testing.T) {
		s := NewStore(discard)
		require.NoError(t, s.Seed(ctx, NewFileSource(writeSeedFile(t, seedJSON))))

		err := s.Seed(ctx, NewFileSource(writeSeedFile(t, `[{"id":1,"city":"Oslo"}] not json`)))

		assert.Error(t, err)
		n, _ := s.Len(ctx)
		assert.Equal(t, 0, n)
	})

	t.Run("missing file leaves the store empty", func(t *testing.T) {
		s := NewStore(discard)
		err := s.Seed(ctx, NewFileSource(filepath.Join(t.TempDir(), "absent.json")))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "file:")
		n, _ := s.Len(ctx)
		assert.Equal(t, 0, n)
	})

	t.Run("source error clears earlier data", func(t *testing.T) {
		s := NewStore(discard)
		require.NoError(t, s.Seed(ctx, stubSource{customers: []customer.Customer{{ID: 9}}}))

		err := s.Seed(ctx, stubSource{err: errors.New("boom")})

		assert.ErrorContains(t, err, "boom")
		n, _ := s.Len(ctx)
		assert.Equal(t, 0, n)
	})
}

func TestStoreFindByID(t *testing.T) {
	ctx := context.Background()
	s := NewStore(discard)
	require.NoError(t, s.Seed(ctx, NewFileSource(writeSeedFile(t, seedJSON))))

	got, err := s.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Bo", got.FirstName)

	got.FirstName = "changed"
	again, _ := s.FindByID(ctx, 2)
	assert.Equal(t, "Bo", again.FirstName, "returned record must not alias the store")

	_, err = s.FindByID(ctx, 42)
	assert.ErrorIs(t, err, customer.ErrNotFound)
}

func TestStoreAppendAndAllCopy(t *testing.T) {
	ctx := context.Background()
	s := NewStore(discard)

	require.NoError(t, s.Update(ctx, func(tx customer.Tx) error {
		tx.Append(customer.Customer{ID: 1, City: "Oslo"})
		tx.Append(customer.Customer{ID: 1, City: "Oslo"})
		return nil
	}))

	all, _ := s.All(ctx)
	assert.Len(t, all, 2, "Append does not enforce uniqueness")

	all[0].City = "changed"
	fresh, _ := s.All(ctx)
	assert.Equal(t, "Oslo", fresh[0].City)
}

func TestStoreUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("commits appends when fn succeeds", func(t *testing.T) {
		s := NewStore(discard)
		err := s.Update(ctx, func(tx customer.Tx) error {
			tx.Append(customer.Customer{ID: 1})
			assert.Len(t, tx.All(), 1, "pending appends are visible inside the callback")
			return nil
		})
		require.NoError(t, err)

		n, _ := s.Len(ctx)
		assert.Equal(t, 1, n)
	})

	t.Run("discards appends when fn fails", func(t *testing.T) {
		s := NewStore(discard)
		sentinel := errors.New("rejected")
		err := s.Update(ctx, func(tx customer.Tx) error {
			tx.Append(customer.Customer{ID: 1})
			return sentinel
		})

		assert.ErrorIs(t, err, sentinel)
		n, _ := s.Len(ctx)
		assert.Equal(t, 0, n)
	})

	t.Run("cancelled context", func(t *testing.T) {
		s := NewStore(discard)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		err := s.Update(cctx, func(tx customer.Tx) error {
			t.Fatal("fn must not run")
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("concurrent check-and-append admits one writer per id", func(t *testing.T) {
		s := NewStore(discard)
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = s.Update(ctx, func(tx customer.Tx) error {
					for _, c := range tx.All() {
						if c.ID == 7 {
							return errors.New("duplicate")
						}
					}
					tx.Append(customer.Customer{ID: 7})
					return nil
				})
			}()
		}
		wg.Wait()

		n, _ := s.Len(ctx)
		assert.Equal(t, 1, n)
	})
}
