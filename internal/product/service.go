package product

import (
	"context"

	"tindahan-be/internal/category"
	"tindahan-be/internal/transport"
	"tindahan-be/internal/user"
)

type Service interface {
	Create(ctx context.Context, actor transport.Actor, input NewProductInput) (*Product, error)
	Update(ctx context.Context, actor transport.Actor, id string, input UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, actor transport.Actor, id string) error
	Get(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, limit, offset int) ([]*Product, error)
	Featured(ctx context.Context) (*Product, error)
}

type service struct {
	repo       Repository
	categories category.Repository
}

func NewService(repo Repository, categories category.Repository) Service {
	return &service{repo: repo, categories: categories}
}

func (s *service) Create(ctx context.Context, actor transport.Actor, input NewProductInput) (*Product, error) {
	if actor.Role != user.RoleSeller {
		return nil, ErrSellerOnly
	}
	if input.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	if _, err := s.categories.GetByID(ctx, input.CategoryID); err != nil {
		if err == category.ErrCategoryNotFound {
			return nil, ErrInvalidCategory
		}
		return nil, err
	}

	return s.repo.Create(ctx, input, actor.UserID)
}

func (s *service) Update(ctx context.Context, actor transport.Actor, id string, input UpdateProductInput) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.SellerID != actor.UserID {
		return nil, ErrNotProductSeller
	}
	if input.Price != nil && *input.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	if input.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *input.CategoryID); err != nil {
			if err == category.ErrCategoryNotFound {
				return nil, ErrInvalidCategory
			}
			return nil, err
		}
	}

	return s.repo.Update(ctx, id, input)
}

func (s *service) Delete(ctx context.Context, actor transport.Actor, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.SellerID != actor.UserID {
		return ErrNotProductSeller
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Get(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, limit, offset int) ([]*Product, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *service) Featured(ctx context.Context) (*Product, error) {
	return s.repo.GetFeatured(ctx)
}
