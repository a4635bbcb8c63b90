package userRepo

import (
	"sync"
	"time"

	"gighaat/models"
)

// MemoryUserRepo is an in-memory UserRepository used as a test double.
type MemoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

// NewMemoryUserRepo creates an in-memory user repository seeded with the given users.
func NewMemoryUserRepo(users ...*models.User) *MemoryUserRepo {
	r := &MemoryUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *MemoryUserRepo) GetByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *MemoryUserRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepo) GetByPhone(phoneNumber string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var users []models.User
	for _, u := range r.users {
		if u.PhoneNumber == phoneNumber {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (r *MemoryUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *MemoryUserRepo) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return ErrNotFound
	}
	user.UpdatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *MemoryUserRepo) SetTokenHash(id, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.TokenHash = tokenHash
	u.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryUserRepo) GetByTokenHash(tokenHash string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.TokenHash != "" && u.TokenHash == tokenHash {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepo) SetVerified(id string, verified bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Verified = verified
	u.UpdatedAt = time.Now()
	return nil
}
