package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/josh-kwaku/pos-ledger/internal/domain"
	"github.com/josh-kwaku/pos-ledger/internal/logging"
	"github.com/josh-kwaku/pos-ledger/internal/service"
)

type customerService interface {
	Create(ctx context.Context, in service.CustomerInput) (*domain.Customer, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, search string, limit, offset int) ([]domain.Customer, int, error)
	Update(ctx context.Context, id uuid.UUID, in service.CustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CustomerHandler struct {
	customers customerService
}

func NewCustomerHandler(customers customerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

type customerRequest struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Phone   *string `json:"phone" validate:"omitempty,max=40"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address" validate:"omitempty,max=500"`
	Notes   *string `json:"notes" validate:"omitempty,max=2000"`
}

func (r customerRequest) input() service.CustomerInput {
	return service.CustomerInput{
		Name:    r.Name,
		Phone:   r.Phone,
		Email:   r.Email,
		Address: r.Address,
		Notes:   r.Notes,
	}
}

type customerDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone"`
	Email     *string   `json:"email"`
	Address   *string   `json:"address"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCustomerDTO(c *domain.Customer) customerDTO {
	return customerDTO{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	c, err := h.customers.Create(r.Context(), req.input())
	if err != nil {
		logging.FromContext(r.Context()).Warn("customer creation failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/customers/%s", c.ID))
	RespondSuccess(w, http.StatusCreated, toCustomerDTO(c))
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := customerIDFromPath(w, r)
	if !ok {
		return
	}

	c, err := h.customers.Get(r.Context(), id)
	if err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, toCustomerDTO(c))
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, fields := pagination(r)
	if len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	customers, total, err := h.customers.List(r.Context(), r.URL.Query().Get("search"), limit, offset)
	if err != nil {
		logging.FromContext(r.Context()).Error("customer list failed", "error", err)
		RespondDomainError(w, err)
		return
	}

	items := make([]customerDTO, len(customers))
	for i := range customers {
		items[i] = toCustomerDTO(&customers[i])
	}
	RespondSuccess(w, http.StatusOK, pageDTO{Items: items, Total: total, Limit: limit, Offset: offset})
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := customerIDFromPath(w, r)
	if !ok {
		return
	}

	var req customerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	c, err := h.customers.Update(r.Context(), id, req.input())
	if err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, toCustomerDTO(c))
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := customerIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.customers.Delete(r.Context(), id); err != nil {
		logging.FromContext(r.Context()).Warn("customer deletion refused", "customer_id", id, "error", err)
		RespondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func customerIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondAppError(w, ErrCustomerNotFound, nil)
		return uuid.Nil, false
	}
	return id, true
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

func pagination(r *http.Request) (limit, offset int, errs []FieldError) {
	limit = defaultPageSize
	q := r.URL.Query()

	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxPageSize {
			errs = append(errs, FieldError{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", maxPageSize)})
		} else {
			limit = n
		}
	}
	if s := q.Get("offset"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			errs = append(errs, FieldError{Field: "offset", Message: "must be zero or more"})
		} else {
			offset = n
		}
	}
	return limit, offset, errs
}
