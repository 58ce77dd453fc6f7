package user

import (
	"context"
	"fmt"

	"tindahan-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, params RegisterParams) (*User, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
	GetByID(ctx context.Context, id uint) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	if !params.Role.Valid() {
		return nil, ErrInvalidRole
	}

	hash, err := HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := s.repo.Create(ctx, params, hash)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("user registered",
		zap.Uint("user_id", u.ID),
		zap.String("role", string(u.Role)),
	)

	return u, nil
}

// Login checks credentials and mints a JWT for the user.
func (s *service) Login(ctx context.Context, email, password string) (*User, string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !CheckPasswordHash(password, u.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, u.Username, u.Role)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.GetByID(ctx, id)
}
