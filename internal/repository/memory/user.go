package memory

import (
	"gamehub/internal/domain"
	"gamehub/internal/repository"
)

type userRepository struct {
	ids   *IDAllocator
	users map[int64]domain.User
	order []int64
}

func NewUserRepository(ids *IDAllocator) repository.UserRepository {
	return &userRepository{
		ids:   ids,
		users: make(map[int64]domain.User),
	}
}

func (r *userRepository) Create(user *domain.User) error {
	user.ID = r.ids.Next(KindUser)
	r.users[user.ID] = *user
	r.order = append(r.order, user.ID)
	return nil
}

func (r *userRepository) GetByID(id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *userRepository) List() []domain.User {
	out := make([]domain.User, 0, len(r.users))
	for _, id := range r.order {
		if user, ok := r.users[id]; ok {
			out = append(out, user)
		}
	}
	return out
}

func (r *userRepository) Delete(id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}
