package customer

import (
	"context"

	"customer-directory/internal/event"

	"github.com/stretchr/testify/mock"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (_m *MockCustomerRepository) All(ctx context.Context) ([]Customer, error) {
	ret := _m.Called(ctx)

	var r0 []Customer
	if rf, ok := ret.Get(0).(func(context.Context) []Customer); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]Customer)
		}
	}

	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) FindByID(ctx context.Context, id int64) (*Customer, error) {
	ret := _m.Called(ctx, id)

	var r0 *Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Customer)
	}

	return r0, ret.Error(1)
}

func (_m *MockCustomerRepository) Len(ctx context.Context) (int, error) {
	ret := _m.Called(ctx)
	return ret.Int(0), ret.Error(1)
}

// Update hands fn a FakeTx over the records passed to Return, or delegates
// to a func(context.Context, func(Tx) error) error when one is given.
func (_m *MockCustomerRepository) Update(ctx context.Context, fn func(tx Tx) error) error {
	ret := _m.Called(ctx, fn)

	switch v := ret.Get(0).(type) {
	case func(context.Context, func(Tx) error) error:
		return v(ctx, fn)
	case *FakeTx:
		return fn(v)
	}
	return ret.Error(0)
}

type FakeTx struct {
	Records  []Customer
	Appended []Customer
}

func (tx *FakeTx) All() []Customer {
	return tx.Records
}

func (tx *FakeTx) Append(c Customer) {
	tx.Appended = append(tx.Appended, c)
}

type MockEventPublisher struct {
	mock.Mock
}

func (_m *MockEventPublisher) PublishCustomerCreated(ctx context.Context, e event.CustomerCreatedEvent) error {
	ret := _m.Called(ctx, e)
	return ret.Error(0)
}
