package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/remit_backend/internal/apperrors"
	"github.com/SscSPs/remit_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/remit_backend/internal/core/ports/repositories"
)

type UserRepository struct {
	lock       sync.RWMutex
	byID       map[string]domain.User
	byUsername map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:       map[string]domain.User{},
		byUsername: map[string]string{},
	}
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func (r *UserRepository) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	r.lock.RLock()
	user, ok := r.byID[userID]
	r.lock.RUnlock()
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &user, nil
}

func (r *UserRepository) FindUserByUsername(_ context.Context, username string) (*domain.User, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	id, ok := r.byUsername[username]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	user := r.byID[id]
	return &user, nil
}

func (r *UserRepository) SaveUser(_ context.Context, user domain.User) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	key := user.Username
	if _, taken := r.byUsername[key]; taken {
		return fmt.Errorf("%w: username %s already exists", apperrors.ErrDuplicate, user.Username)
	}
	r.byID[user.UserID] = user
	r.byUsername[key] = user.UserID
	return nil
}
