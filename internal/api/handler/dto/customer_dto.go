package dto

import (
	"customer-directory/internal/domain/customer"
)

type CreateCustomerRequest struct {
	ID        int64  `json:"id" example:"2"`
	FirstName string `json:"first_name" example:"Bo"`
	LastName  string `json:"last_name" example:"Kim"`
	City      string `json:"city" example:"Oslo"`
	Company   string `json:"company" example:"Acme"`
}

func (r *CreateCustomerRequest) ToDomain() customer.Customer {
	return customer.Customer{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		City:      r.City,
		Company:   r.Company,
	}
}

type CustomerResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	City      string `json:"city"`
	Company   string `json:"company"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}
	return CustomerResponse{
		ID:        cust.ID,
		FirstName: cust.FirstName,
		LastName:  cust.LastName,
		City:      cust.City,
		Company:   cust.Company,
	}
}

// ListCustomersResponse always carries a non-nil Data so an empty page
// encodes as [].
type ListCustomersResponse struct {
	Total int                `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
	Data  []CustomerResponse `json:"data"`
}

func NewListCustomersResponse(res customer.ListResult) ListCustomersResponse {
	data := make([]CustomerResponse, len(res.Customers))
	for i := range res.Customers {
		data[i] = NewCustomerResponse(&res.Customers[i])
	}
	return ListCustomersResponse{
		Total: res.Total,
		Page:  res.Page,
		Limit: res.Limit,
		Data:  data,
	}
}

type MessageResponse struct {
	Message string `json:"message" example:"Customer added successfully"`
}

type ErrorResponse struct {
	Message string `json:"message" example:"Customer not found"`
	Field   string `json:"field,omitempty"`
}
