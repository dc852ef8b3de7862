package service

import (
	"context"
	"strings"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/repository"
	"motorent-backoffice/internal/validator"
)

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) Create(ctx context.Context, in CustomerInput) (*domain.Customer, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	c := &domain.Customer{}
	applyCustomerInput(c, in)
	if err := s.customerRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *customerService) Update(ctx context.Context, id int64, in CustomerInput) (*domain.Customer, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	c, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyCustomerInput(c, in)
	if err := s.customerRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) List(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, int, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.customerRepo.List(ctx, filter)
}

func applyCustomerInput(c *domain.Customer, in CustomerInput) {
	c.FullName = strings.TrimSpace(in.FullName)
	c.Phone = strings.TrimSpace(in.Phone)
	c.Email = strings.ToLower(strings.TrimSpace(in.Email))
	c.IDCardNumber = strings.ToUpper(strings.TrimSpace(in.IDCardNumber))
	c.Address = in.Address
}
