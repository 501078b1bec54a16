package memory

import (
	"context"
	"time"

	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/repository"
)

type UserStore struct{ s *Store }

func (s *Store) withMairie(u model.User) model.User {
	if u.MairieID == nil {
		return u
	}
	if m, ok := s.mairies[*u.MairieID]; ok {
		u.Mairie = &m
	}
	return u
}

func (r *UserStore) List(_ context.Context, f repository.UserFilter) ([]model.User, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []model.User{}
	for _, u := range r.s.users {
		if !matches(f.Search, u.FullName, u.Email) {
			continue
		}
		if f.Role != nil && u.Role != *f.Role {
			continue
		}
		if f.IsActive != nil && u.IsActive != *f.IsActive {
			continue
		}
		if f.MairieID != nil && (u.MairieID == nil || *u.MairieID != *f.MairieID) {
			continue
		}
		out = append(out, r.s.withMairie(u))
	}
	sortBy(out, func(a, b model.User) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	page, total := paginate(out, f.ListQuery)
	return page, total, nil
}

func (r *UserStore) GetByID(_ context.Context, id uint64) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u = r.s.withMairie(u)
	return &u, nil
}

func (r *UserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	email = repository.NormalizeEmail(email)
	for _, u := range r.s.users {
		if u.Email == email {
			u = r.s.withMairie(u)
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) checkUser(u *model.User) error {
	for _, o := range s.users {
		if o.ID != u.ID && o.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	if u.MairieID != nil {
		if _, ok := s.mairies[*u.MairieID]; !ok {
			return repository.ErrNotFound
		}
	}
	return nil
}

func (r *UserStore) Create(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u.Email = repository.NormalizeEmail(u.Email)
	u.ID = 0
	if err := r.s.checkUser(u); err != nil {
		return err
	}
	u.ID = r.s.next("users")
	u.CreatedAt = r.s.now()
	row := *u
	row.Mairie = nil
	r.s.users[u.ID] = row
	return nil
}

func (r *UserStore) Update(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	u.Email = repository.NormalizeEmail(u.Email)
	if err := r.s.checkUser(u); err != nil {
		return err
	}
	now := r.s.now()
	u.UpdatedAt = &now
	cur.FullName, cur.Email, cur.Telephone, cur.Role = u.FullName, u.Email, u.Telephone, u.Role
	cur.MairieID, cur.IsActive, cur.Avatar, cur.UpdatedAt = u.MairieID, u.IsActive, u.Avatar, u.UpdatedAt
	r.s.users[u.ID] = cur
	return nil
}

func (r *UserStore) mutate(id uint64, fn func(u *model.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(&u)
	r.s.users[id] = u
	return nil
}

func (r *UserStore) SetPassword(_ context.Context, id uint64, hash string) error {
	return r.mutate(id, func(u *model.User) { u.PasswordHash = hash })
}

func (r *UserStore) SetActive(_ context.Context, id uint64, active bool) error {
	return r.mutate(id, func(u *model.User) { u.IsActive = active })
}

func (r *UserStore) TouchLogin(_ context.Context, id uint64, at time.Time) error {
	return r.mutate(id, func(u *model.User) { u.LastLoginAt = &at })
}

func (r *UserStore) Delete(_ context.Context, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

// TokenStore keeps refresh token hashes and revoked access token ids.
type TokenStore struct{ s *Store }

func (r *TokenStore) StoreRefresh(_ context.Context, userID uint64, tokenHash string, exp time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.refresh[tokenHash] = model.RefreshToken{
		ID: r.s.next("refresh_tokens"), UserID: userID, TokenHash: tokenHash, ExpiresAt: exp, CreatedAt: r.s.now(),
	}
	return nil
}

func (r *TokenStore) ValidateRefresh(_ context.Context, tokenHash string) (uint64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.refresh[tokenHash]
	if !ok || t.RevokedAt != nil || r.s.now().After(t.ExpiresAt) {
		return 0, repository.ErrNotFound
	}
	return t.UserID, nil
}

func (r *TokenStore) RevokeByHash(_ context.Context, tokenHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.refresh[tokenHash]; ok && t.RevokedAt == nil {
		now := r.s.now()
		t.RevokedAt = &now
		r.s.refresh[tokenHash] = t
	}
	return nil
}

func (r *TokenStore) RevokeAllForUser(_ context.Context, userID uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	for h, t := range r.s.refresh {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
			r.s.refresh[h] = t
		}
	}
	return nil
}

func (r *TokenStore) RevokeAccess(_ context.Context, jti string, _ uint64, exp time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.revoked[jti]; !ok {
		r.s.revoked[jti] = exp
	}
	return nil
}

func (r *TokenStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.revoked[jti]
	return ok, nil
}

// PurgeExpired drops revocations and refresh tokens past their expiry.
func (r *TokenStore) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for jti, exp := range r.s.revoked {
		if exp.Before(now) {
			delete(r.s.revoked, jti)
			n++
		}
	}
	for h, t := range r.s.refresh {
		if t.ExpiresAt.Before(now) {
			delete(r.s.refresh, h)
			n++
		}
	}
	return n, nil
}
