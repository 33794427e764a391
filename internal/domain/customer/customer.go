package customer

import (
	"fmt"
	"strings"
)

type Customer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	City      string `json:"city"`
	Company   string `json:"company"`
}

// Validate reports the first missing field. A zero id and empty strings
// count as missing.
func (c Customer) Validate() error {
	switch {
	case c.ID == 0:
		return fmt.Errorf("%w: id", ErrMissingFields)
	case c.FirstName == "":
		return fmt.Errorf("%w: first_name", ErrMissingFields)
	case c.LastName == "":
		return fmt.Errorf("%w: last_name", ErrMissingFields)
	case c.City == "":
		return fmt.Errorf("%w: city", ErrMissingFields)
	case c.Company == "":
		return fmt.Errorf("%w: company", ErrMissingFields)
	}
	return nil
}

// Filter holds case-insensitive substring constraints. Empty fields match
// everything.
type Filter struct {
	FirstName string
	LastName  string
	City      string
}

func (f Filter) IsEmpty() bool {
	return f.FirstName == "" && f.LastName == "" && f.City == ""
}

func (f Filter) Matches(c Customer) bool {
	return containsFold(c.FirstName, f.FirstName) &&
		containsFold(c.LastName, f.LastName) &&
		containsFold(c.City, f.City)
}

func containsFold(value, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(substr))
}

type ListResult struct {
	Total     int
	Page      int
	Limit     int
	Customers []Customer
}
