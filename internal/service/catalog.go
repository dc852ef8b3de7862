package service

import (
	"context"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/logger"
	"motorent-backoffice/internal/repository"
	"motorent-backoffice/internal/validator"
)

type catalogService struct {
	categoryRepo  repository.CategoryRepository
	priceListRepo repository.PriceListRepository
}

func NewCatalogService(categoryRepo repository.CategoryRepository, priceListRepo repository.PriceListRepository) CatalogService {
	return &catalogService{categoryRepo: categoryRepo, priceListRepo: priceListRepo}
}

func (s *catalogService) CreateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	c := &domain.Category{Name: in.Name, Description: in.Description, DepositAmount: in.DepositAmount}
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "category created", "category_id", c.ID)
	return c, nil
}

func (s *catalogService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *catalogService) UpdateCategory(ctx context.Context, id int64, in CategoryInput) (*domain.Category, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	c, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = in.Name
	c.Description = in.Description
	c.DepositAmount = in.DepositAmount
	if err := s.categoryRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory fails with RESOURCE_IN_USE while motorbikes or discounts
// still reference the category.
func (s *catalogService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.InfoContext(ctx, "category deleted", "category_id", id)
	return nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *catalogService) CreatePriceList(ctx context.Context, in PriceListInput) (*domain.PriceList, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	p := &domain.PriceList{Name: in.Name, HourlyRate: in.HourlyRate, DailyRate: in.DailyRate}
	if err := s.priceListRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "price list created", "price_list_id", p.ID)
	return p, nil
}

func (s *catalogService) GetPriceList(ctx context.Context, id int64) (*domain.PriceList, error) {
	return s.priceListRepo.GetByID(ctx, id)
}

func (s *catalogService) UpdatePriceList(ctx context.Context, id int64, in PriceListInput) (*domain.PriceList, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	p, err := s.priceListRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = in.Name
	p.HourlyRate = in.HourlyRate
	p.DailyRate = in.DailyRate
	if err := s.priceListRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *catalogService) ListPriceLists(ctx context.Context) ([]domain.PriceList, error) {
	return s.priceListRepo.List(ctx)
}
