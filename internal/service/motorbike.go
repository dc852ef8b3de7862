package service

import (
	"context"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jonboulle/clockwork"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/logger"
	"motorent-backoffice/internal/repository"
	"motorent-backoffice/internal/storage"
	"motorent-backoffice/internal/validator"
)

const motorbikeImageFolder = "motorbikes"

// ImageRules bounds motorbike image uploads.
type ImageRules struct {
	MaxBytes          int64
	AllowedExtensions []string
}

type motorbikeService struct {
	motorbikeRepo repository.MotorbikeRepository
	categoryRepo  repository.CategoryRepository
	priceListRepo repository.PriceListRepository
	store         storage.Storage
	rules         ImageRules
	clock         clockwork.Clock
}

func NewMotorbikeService(
	motorbikeRepo repository.MotorbikeRepository,
	categoryRepo repository.CategoryRepository,
	priceListRepo repository.PriceListRepository,
	store storage.Storage,
	rules ImageRules,
	clock clockwork.Clock,
) MotorbikeService {
	return &motorbikeService{
		motorbikeRepo: motorbikeRepo,
		categoryRepo:  categoryRepo,
		priceListRepo: priceListRepo,
		store:         store,
		rules:         rules,
		clock:         clock,
	}
}

func (s *motorbikeService) Create(ctx context.Context, in MotorbikeInput) (*domain.Motorbike, error) {
	if err := s.checkInput(ctx, in); err != nil {
		return nil, err
	}
	m := &domain.Motorbike{Status: domain.MotorbikeStatusAvailable}
	applyMotorbikeInput(m, in)
	if err := s.motorbikeRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "motorbike created", "motorbike_id", m.ID, "license_plate", m.LicensePlate)
	return m, nil
}

func (s *motorbikeService) Get(ctx context.Context, id int64) (*domain.Motorbike, error) {
	return s.motorbikeRepo.GetByID(ctx, id)
}

func (s *motorbikeService) Update(ctx context.Context, id int64, in MotorbikeInput) (*domain.Motorbike, error) {
	if err := s.checkInput(ctx, in); err != nil {
		return nil, err
	}
	m, err := s.motorbikeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyMotorbikeInput(m, in)
	if err := s.motorbikeRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *motorbikeService) Delete(ctx context.Context, id int64) error {
	m, err := s.motorbikeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m.Status == domain.MotorbikeStatusRented || m.Status == domain.MotorbikeStatusReserved {
		return domain.BusinessRule(domain.CodeMotorbikeUnavailable, "motorbike %s is %s under a contract", m.LicensePlate, m.Status)
	}
	if err := s.motorbikeRepo.Delete(ctx, id); err != nil {
		return err
	}
	if m.ImageKey != "" {
		if err := s.store.Delete(ctx, m.ImageKey); err != nil {
			logger.WarnContext(ctx, "failed to delete motorbike image", "motorbike_id", id, "key", m.ImageKey, "error", err)
		}
	}
	logger.InfoContext(ctx, "motorbike deleted", "motorbike_id", id)
	return nil
}

func (s *motorbikeService) List(ctx context.Context, filter domain.MotorbikeFilter) ([]domain.Motorbike, int, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, domain.Validation(domain.CodeInvalidRequest, "unknown motorbike status %q", filter.Status)
	}
	filter.Search = strings.TrimSpace(filter.Search)
	return s.motorbikeRepo.List(ctx, filter)
}

func (s *motorbikeService) ChangeStatus(ctx context.Context, id int64, status domain.MotorbikeStatus) (*domain.Motorbike, error) {
	m, err := s.motorbikeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validator.MotorbikeStatusChange(m.Status, status); err != nil {
		return nil, err
	}
	if err := s.motorbikeRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "motorbike status changed", "motorbike_id", id, "from", m.Status, "to", status)
	m.Status = status
	return m, nil
}

// UploadImage stores a new image and swaps it in, removing the previous one.
func (s *motorbikeService) UploadImage(ctx context.Context, id int64, filename string, size int64, contentType string, r io.Reader) (*domain.Motorbike, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(s.rules.AllowedExtensions, ext) {
		return nil, domain.Validation(domain.CodeInvalidFile, "file type %q is not allowed", ext)
	}
	if size <= 0 || size > s.rules.MaxBytes {
		return nil, domain.Validation(domain.CodeInvalidFile, "file must be between 1 byte and %d bytes", s.rules.MaxBytes)
	}

	m, err := s.motorbikeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := storage.NewKey(motorbikeImageFolder, m.LicensePlate, ext)
	logger.ExternalServiceCall(ctx, "storage", "save", "key", key, "size", size)
	err = s.store.Save(ctx, key, io.LimitReader(r, s.rules.MaxBytes), contentType)
	logger.ExternalServiceResult(ctx, "storage", "save", err)
	if err != nil {
		return nil, err
	}

	if err := s.motorbikeRepo.UpdateImage(ctx, id, key); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			logger.WarnContext(ctx, "failed to clean up orphaned image", "key", key, "error", delErr)
		}
		return nil, err
	}

	if m.ImageKey != "" {
		if err := s.store.Delete(ctx, m.ImageKey); err != nil {
			logger.WarnContext(ctx, "failed to delete replaced image", "key", m.ImageKey, "error", err)
		}
	}
	m.ImageKey = key
	return m, nil
}

func (s *motorbikeService) DeleteImage(ctx context.Context, id int64) error {
	m, err := s.motorbikeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m.ImageKey == "" {
		return domain.NotFound(domain.CodeInvalidFile, "motorbike %d has no image", id)
	}
	if err := s.motorbikeRepo.UpdateImage(ctx, id, ""); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, m.ImageKey); err != nil {
		logger.WarnContext(ctx, "failed to delete motorbike image", "key", m.ImageKey, "error", err)
	}
	return nil
}

func (s *motorbikeService) ImageURL(ctx context.Context, key string) string {
	if key == "" {
		return ""
	}
	u, err := s.store.URL(ctx, key)
	if err != nil {
		logger.WarnContext(ctx, "failed to resolve image url", "key", key, "error", err)
		return ""
	}
	return u
}

func (s *motorbikeService) checkInput(ctx context.Context, in MotorbikeInput) error {
	if err := validator.Struct(in); err != nil {
		return err
	}
	if err := validator.MotorbikeYear(in.Year, s.clock.Now()); err != nil {
		return err
	}
	if _, err := s.categoryRepo.GetByID(ctx, in.CategoryID); err != nil {
		return err
	}
	if _, err := s.priceListRepo.GetByID(ctx, in.PriceListID); err != nil {
		return err
	}
	return nil
}

func applyMotorbikeInput(m *domain.Motorbike, in MotorbikeInput) {
	m.LicensePlate = strings.ToUpper(strings.TrimSpace(in.LicensePlate))
	m.Brand = in.Brand
	m.Model = in.Model
	m.Year = in.Year
	m.Color = in.Color
	m.CategoryID = in.CategoryID
	m.PriceListID = in.PriceListID
	m.Description = in.Description
}
