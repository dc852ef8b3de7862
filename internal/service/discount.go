package service

import (
	"context"

	"github.com/jonboulle/clockwork"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/logger"
	"motorent-backoffice/internal/repository"
	"motorent-backoffice/internal/validator"
)

type discountService struct {
	discountRepo repository.DiscountRepository
	categoryRepo repository.CategoryRepository
	tx           repository.TxManager
	metrics      Metrics
	clock        clockwork.Clock
}

func NewDiscountService(
	discountRepo repository.DiscountRepository,
	categoryRepo repository.CategoryRepository,
	tx repository.TxManager,
	metrics Metrics,
	clock clockwork.Clock,
) DiscountService {
	return &discountService{
		discountRepo: discountRepo,
		categoryRepo: categoryRepo,
		tx:           tx,
		metrics:      metrics,
		clock:        clock,
	}
}

func (s *discountService) Create(ctx context.Context, in DiscountInput) (*domain.Discount, error) {
	d := &domain.Discount{}
	if err := applyDiscountInput(d, in); err != nil {
		return nil, err
	}

	ctx, err := s.tx.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.tx.Rollback(ctx)

	if err := s.checkCategories(ctx, d.CategoryIDs); err != nil {
		return nil, err
	}
	if err := s.discountRepo.Create(ctx, d); err != nil {
		return nil, err
	}
	if err := s.tx.Commit(ctx); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "discount created", "discount_id", d.ID, "value", d.Value, "categories", d.CategoryIDs)
	return d, nil
}

func (s *discountService) Get(ctx context.Context, id int64) (*domain.Discount, error) {
	return s.discountRepo.GetByID(ctx, id)
}

func (s *discountService) Update(ctx context.Context, id int64, in DiscountInput) (*domain.Discount, error) {
	ctx, err := s.tx.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.tx.Rollback(ctx)

	d, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyDiscountInput(d, in); err != nil {
		return nil, err
	}
	if err := s.checkCategories(ctx, d.CategoryIDs); err != nil {
		return nil, err
	}
	if err := s.discountRepo.Update(ctx, d); err != nil {
		return nil, err
	}
	if err := s.tx.Commit(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *discountService) Delete(ctx context.Context, id int64) error {
	if err := s.discountRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.InfoContext(ctx, "discount deleted", "discount_id", id)
	return nil
}

func (s *discountService) List(ctx context.Context, filter domain.DiscountFilter) ([]domain.Discount, int, error) {
	return s.discountRepo.List(ctx, filter)
}

// ExpireDiscounts switches off every active discount whose end date has
// passed and returns how many were changed.
func (s *discountService) ExpireDiscounts(ctx context.Context) (int, error) {
	ids, err := s.discountRepo.DeactivateExpired(ctx, s.clock.Now())
	if err != nil {
		return 0, err
	}
	if len(ids) > 0 {
		logger.InfoContext(ctx, "discounts expired", "count", len(ids), "discount_ids", ids)
		s.metrics.DiscountsExpired(len(ids))
	}
	return len(ids), nil
}

func (s *discountService) checkCategories(ctx context.Context, ids []int64) error {
	n, err := s.categoryRepo.CountExisting(ctx, ids)
	if err != nil {
		return err
	}
	if n != len(ids) {
		return domain.NotFound(domain.CodeCategoryNotFound, "one or more categories in %v do not exist", ids)
	}
	return nil
}

func applyDiscountInput(d *domain.Discount, in DiscountInput) error {
	if err := validator.Struct(in); err != nil {
		return err
	}
	d.Name = in.Name
	d.Description = in.Description
	d.Value = in.Value
	d.StartDate = in.StartDate
	d.EndDate = in.EndDate
	d.IsActive = in.IsActive
	d.CategoryIDs = in.CategoryIDs
	return validator.Discount(d)
}
