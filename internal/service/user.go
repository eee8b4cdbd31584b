package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"carpool/internal/domain"
	"carpool/internal/redis"
	"carpool/internal/repository"
)

// UserService exposes user profiles and wallet operations.
type UserService struct {
	users  repository.UserRepository
	cache  redis.CacheStoreInterface
	logger *logrus.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository, cache redis.CacheStoreInterface, logger *logrus.Logger) *UserService {
	return &UserService{users: users, cache: cache, logger: logger}
}

// GetUser retrieves a full user record. The wallet balance always comes
// from the database, so full reads bypass the cache and only warm it.
func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cacheProfile(ctx, user)
	return user, nil
}

// GetProfile retrieves the public profile fields, serving from cache when
// possible. A cached profile carries no wallet balance.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	if s.cache != nil {
		cached, err := s.cache.GetUser(ctx, userID)
		if err != nil {
			s.logger.WithError(err).Warn("user cache read failed")
		} else if cached != nil {
			return &domain.User{
				ID:          cached.ID,
				Username:    cached.Username,
				FullName:    cached.FullName,
				MemberSince: cached.MemberSince,
			}, nil
		}
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cacheProfile(ctx, user)
	return user, nil
}

func (s *UserService) cacheProfile(ctx context.Context, user *domain.User) {
	if s.cache == nil {
		return
	}
	err := s.cache.SetUser(ctx, &redis.CachedUser{
		ID:          user.ID,
		Username:    user.Username,
		FullName:    user.FullName,
		MemberSince: user.MemberSince,
	})
	if err != nil {
		s.logger.WithError(err).Warn("user cache write failed")
	}
}

// ListUsers retrieves all users. Restricted to admins.
func (s *UserService) ListUsers(ctx context.Context, actor domain.Actor) ([]*domain.User, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}
	return s.users.GetAll(ctx)
}

// TopUpWallet adds funds to the actor's own wallet.
func (s *UserService) TopUpWallet(ctx context.Context, actor domain.Actor, amount float64) (*domain.User, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if err := s.users.CreditWallet(ctx, actor.UserID, amount); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, actor.UserID)
}
