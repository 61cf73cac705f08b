package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/sunrisemc/booking-api/internal/model"
	"github.com/sunrisemc/booking-api/pkg/errors"
)

func (r *categoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	query := `
		SELECT id, name, description, display_rank, active, created_at, updated_at
		FROM categories
		WHERE active = true
		ORDER BY display_rank ASC, name ASC
	`
	var categories []*model.Category
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) Get(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	query := `
		SELECT id, name, description, display_rank, active, created_at, updated_at
		FROM categories
		WHERE id = $1
	`
	var category model.Category
	err := r.db.GetContext(ctx, &category, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("category", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

func (r *serviceRepository) List(ctx context.Context, categoryID *uuid.UUID) ([]*model.Service, error) {
	query := `
		SELECT id, category_id, name, description, duration, price, active, created_at, updated_at
		FROM services
		WHERE active = true
	`
	args := []interface{}{}
	if categoryID != nil {
		query += " AND category_id = $1"
		args = append(args, *categoryID)
	}
	query += " ORDER BY name ASC"

	var services []*model.Service
	if err := r.db.SelectContext(ctx, &services, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (r *serviceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	query := `
		SELECT id, category_id, name, description, duration, price, active, created_at, updated_at
		FROM services
		WHERE id = $1
	`
	var service model.Service
	err := r.db.GetContext(ctx, &service, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("service", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &service, nil
}
