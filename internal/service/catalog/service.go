package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/sunrisemc/booking-api/internal/model"
	"github.com/sunrisemc/booking-api/internal/repository"
)

type Service struct {
	categoryRepo repository.CategoryRepository
	serviceRepo  repository.ServiceRepository
}

func NewService(categoryRepo repository.CategoryRepository, serviceRepo repository.ServiceRepository) *Service {
	return &Service{
		categoryRepo: categoryRepo,
		serviceRepo:  serviceRepo,
	}
}

func (s *Service) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *Service) GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	return s.categoryRepo.Get(ctx, id)
}

func (s *Service) ListServices(ctx context.Context, categoryID *uuid.UUID) ([]*model.Service, error) {
	return s.serviceRepo.List(ctx, categoryID)
}

func (s *Service) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	return s.serviceRepo.Get(ctx, id)
}
