package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"customer-directory/internal/api/handler/dto"
	"customer-directory/internal/domain/customer"
	"customer-directory/internal/infrastructure/monitoring"
	"customer-directory/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

type CustomerHandler struct {
	service customer.CustomerService
	logger  *slog.Logger
}

func NewCustomerHandler(s customer.CustomerService, l *slog.Logger) *CustomerHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		service: s,
		logger:  l.With("component", "CustomerHandler"),
	}
}

// getCustomerIDFromURL reads the leading integer of the path segment, so
// "3abc" looks up 3. An id with no leading digits is treated as unknown.
func getCustomerIDFromURL(r *http.Request) (int64, error) {
	id, ok := customer.ParseLeadingInt(chi.URLParam(r, "customerID"))
	if !ok {
		return 0, customer.ErrNotFound
	}
	return id, nil
}

// ListCustomers handles GET /customers
// @Summary List customers
// @Description Filters customers by case-insensitive substring on first name, last name and city, then returns one page of the matches.
// @Tags Customers
// @Produce json
// @Param first_name query string false "Substring of the first name" Example(an)
// @Param last_name query string false "Substring of the last name"
// @Param city query string false "Substring of the city" Example(oslo)
// @Param page query int false "1-based page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.ListCustomersResponse "Matching customers"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {

	h.logger.DebugContext(r.Context(), "Received list customers request")

	q := r.URL.Query()
	filter := customer.Filter{
		FirstName: q.Get("first_name"),
		LastName:  q.Get("last_name"),
		City:      q.Get("city"),
	}
	page := customer.Page{
		Number: customer.ParsePage(q.Get("page")),
		Limit:  customer.ParseLimit(q.Get("limit")),
	}

	h.logger.DebugContext(r.Context(), "Calling customer service ListCustomers")
	res, err := h.service.ListCustomers(r.Context(), filter, page)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list customers", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewListCustomersResponse(res)
	h.logger.InfoContext(r.Context(), "Customers listed successfully", slog.Int("total", resp.Total), slog.Int("count", len(resp.Data)))
	respondJSON(w, http.StatusOK, resp)
}

// GetCustomer handles GET /customers/{customerID}
// @Summary Retrieve customer details
// @Description Retrieves a single customer by id.
// @Tags Customers
// @Produce json
// @Param customerID path int true "Customer ID"
// @Success 200 {object} dto.CustomerResponse "Customer details retrieved"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers/{customerID} [get]
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {

	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.DebugContext(r.Context(), "Customer ID in URL is not an integer", slog.String("customerID", chi.URLParam(r, "customerID")))
		respondError(w, err)
		return
	}

	h.logger.DebugContext(r.Context(), "Calling customer service GetCustomer", slog.Int64("customerID", customerID))
	domainCustomer, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer retrieved successfully", slog.Int64("customerID", customerID))
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(domainCustomer))
}

// ListCities handles GET /cities
// @Summary Count customers per city
// @Description Returns a mapping from each city to the number of customers in it.
// @Tags Cities
// @Produce json
// @Success 200 {object} map[string]int "Customer count per city"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cities [get]
func (h *CustomerHandler) ListCities(w http.ResponseWriter, r *http.Request) {

	h.logger.DebugContext(r.Context(), "Received list cities request")

	counts, err := h.service.CountByCity(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to count customers by city", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Cities listed successfully", slog.Int("cities", len(counts)))
	respondJSON(w, http.StatusOK, counts)
}

// CreateCustomer handles POST /customers
// @Summary Add a customer
// @Description Adds a customer. All fields are required, the id must be unused, and city and company must already belong to some existing customer.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.CreateCustomerRequest true "Customer record"
// @Success 201 {object} dto.MessageResponse "Customer added"
// @Failure 400 {object} dto.ErrorResponse "Missing fields, duplicate id, or unknown city or company"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers [post]
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {

	h.logger.DebugContext(r.Context(), "Received create customer request")

	var req dto.CreateCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		monitoring.RecordCustomerCreate(monitoring.OutcomeRejected)
		respondError(w, err)
		return
	}

	h.logger.DebugContext(r.Context(), "Calling customer service CreateCustomer", slog.Int64("customerID", req.ID))
	if err := h.service.CreateCustomer(r.Context(), req.ToDomain()); err != nil {
		outcome, level := monitoring.OutcomeRejected, slog.LevelWarn
		if statusFor(err) == http.StatusInternalServerError {
			outcome, level = monitoring.OutcomeFailed, slog.LevelError
		}
		monitoring.RecordCustomerCreate(outcome)
		h.logger.Log(r.Context(), level, "Service failed to create customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	monitoring.RecordCustomerCreate(monitoring.OutcomeCreated)
	h.logger.InfoContext(r.Context(), "Customer created successfully", slog.Int64("customerID", req.ID))
	respondJSON(w, http.StatusCreated, dto.MessageResponse{Message: "Customer added successfully"})
}
