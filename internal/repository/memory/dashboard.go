package memory

import (
	"context"
	"time"

	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/repository"
)

type AuditStore struct{ s *Store }

func (r *AuditStore) Insert(_ context.Context, e *model.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ID = r.s.next("audit_logs")
	if e.CreatedAt.IsZero() {
		e.CreatedAt = r.s.now()
	}
	row := *e
	row.User, row.Mairie = nil, nil
	r.s.audit = append(r.s.audit, row)
	return nil
}

// Latest walks the append-only log backwards.
func (r *AuditStore) Latest(_ context.Context, mairieID *uint64, limit int) ([]model.AuditLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []model.AuditLog{}
	for i := len(r.s.audit) - 1; i >= 0 && len(out) < limit; i-- {
		e := r.s.audit[i]
		if mairieID != nil && (e.MairieID == nil || *e.MairieID != *mairieID) {
			continue
		}
		if e.UserID != nil {
			if u, ok := r.s.users[*e.UserID]; ok {
				e.User = &model.UserRef{ID: u.ID, FullName: u.FullName}
			}
		}
		if e.MairieID != nil {
			if m, ok := r.s.mairies[*e.MairieID]; ok {
				e.Mairie = &model.MairieRef{ID: m.ID, Nom: m.Nom}
			}
		}
		out = append(out, e)
	}
	return out, nil
}

type DashboardStore struct{ s *Store }

func sameTenant(id *uint64, mairieID *uint64) bool {
	return id == nil || (mairieID != nil && *mairieID == *id)
}

func (r *DashboardStore) CountMairies(_ context.Context, c repository.Count) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, m := range r.s.mairies {
		if !c.ActiveOnly || m.IsActive {
			n++
		}
	}
	return n, nil
}

func (r *DashboardStore) CountUsers(_ context.Context, c repository.Count) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, u := range r.s.users {
		if sameTenant(c.MairieID, u.MairieID) && (!c.ActiveOnly || u.IsActive) {
			n++
		}
	}
	return n, nil
}

func (r *DashboardStore) CountMariages(_ context.Context, c repository.Count) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, m := range r.s.mariages {
		mid := m.MairieID
		if !sameTenant(c.MairieID, &mid) {
			continue
		}
		if c.Statut != nil && m.Statut != *c.Statut {
			continue
		}
		if c.CreatedBy != nil && (m.CreatedBy == nil || *m.CreatedBy != *c.CreatedBy) {
			continue
		}
		if c.Since != nil && m.CreatedAt.Before(*c.Since) {
			continue
		}
		n++
	}
	return n, nil
}

func (r *DashboardStore) CountActes(_ context.Context, c repository.Count) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, a := range r.s.actes {
		mid := a.MairieID
		if sameTenant(c.MairieID, &mid) {
			n++
		}
	}
	return n, nil
}

func (r *DashboardStore) TopMairies(_ context.Context, limit int) ([]repository.MairieVolume, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byID := map[uint64]*repository.MairieVolume{}
	out := make([]repository.MairieVolume, 0, len(r.s.mairies))
	for _, m := range r.s.mairies {
		out = append(out, repository.MairieVolume{ID: m.ID, Nom: m.Nom})
	}
	for i := range out {
		byID[out[i].ID] = &out[i]
	}
	for _, mg := range r.s.mariages {
		if v, ok := byID[mg.MairieID]; ok {
			v.TotalMariages++
		}
	}
	for _, u := range r.s.users {
		if u.MairieID == nil {
			continue
		}
		if v, ok := byID[*u.MairieID]; ok {
			v.TotalUsers++
		}
	}
	sortBy(out, func(a, b repository.MairieVolume) bool {
		if a.TotalMariages != b.TotalMariages {
			return a.TotalMariages > b.TotalMariages
		}
		return a.Nom < b.Nom
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *DashboardStore) RecentUsers(_ context.Context, mairieID uint64, limit int) ([]model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []model.User{}
	for _, u := range r.s.users {
		if u.IsActive && u.MairieID != nil && *u.MairieID == mairieID {
			out = append(out, u)
		}
	}
	sortBy(out, func(a, b model.User) bool {
		switch {
		case a.LastLoginAt == nil:
			return false
		case b.LastLoginAt == nil:
			return true
		}
		return a.LastLoginAt.After(*b.LastLoginAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *DashboardStore) MariageCreationTimes(_ context.Context, mairieID *uint64, year int) ([]time.Time, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []time.Time{}
	for _, m := range r.s.mariages {
		mid := m.MairieID
		if sameTenant(mairieID, &mid) && m.CreatedAt.UTC().Year() == year {
			out = append(out, m.CreatedAt)
		}
	}
	sortBy(out, func(a, b time.Time) bool { return a.Before(b) })
	return out, nil
}
