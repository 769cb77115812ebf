package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/km-silat/km-silat-api/internal/domain"
	"github.com/km-silat/km-silat-api/internal/repository"
)

var (
	ErrUserNotFound   = repository.ErrUserNotFound
	ErrUsernameExists = repository.ErrUsernameExists
	ErrSelfDelete     = errors.New("you cannot delete your own account")
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id string) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error)
	Delete(ctx context.Context, id string) error
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id string) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return users, nil
}

// CreateUser stores a new account with a bcrypt hash of the given password. An empty role
// defaults to USER.
func (s *UserService) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	if err := s.checkUsernameFree(ctx, user.Username, ""); err != nil {
		return domain.User{}, err
	}

	hashed, err := hashPassword(user.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hashPassword -> %w", err)
	}
	user.Password = hashed
	if user.Role == "" {
		user.Role = domain.RoleUser
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if patch.Username != nil {
		if err := s.checkUsernameFree(ctx, *patch.Username, id); err != nil {
			return domain.User{}, err
		}
	}

	if patch.Password != nil {
		hashed, err := hashPassword(*patch.Password)
		if err != nil {
			return domain.User{}, fmt.Errorf("hashPassword -> %w", err)
		}
		patch.Password = &hashed
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// DeleteUser removes the account identified by id. callerID is the id of the authenticated
// principal; an account cannot delete itself.
func (s *UserService) DeleteUser(ctx context.Context, id, callerID string) error {
	if id == callerID {
		return ErrSelfDelete
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *UserService) checkUsernameFree(ctx context.Context, username, ownerID string) error {
	existing, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		if existing.ID == ownerID {
			return nil
		}
		return ErrUsernameExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}
	return nil
}
