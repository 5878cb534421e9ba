package user

import (
	"context"
	"fmt"

	"github.com/oceanpet/api/internal/domain"
)

type store interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type Service interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	// Update applies the non-nil fields of req and returns the updated
	// profile. An empty request is rejected.
	Update(ctx context.Context, userID string, req *domain.UpdateUserRequest) (*domain.User, error)
}

type service struct {
	store store
}

type ServiceDeps struct {
	Store store
}

func NewService(deps ServiceDeps) Service {
	return &service{store: deps.Store}
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.store.Get(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID string, req *domain.UpdateUserRequest) (*domain.User, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}
	if _, err := s.store.Get(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, userID)
}
