package memory

import (
	"context"

	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/repository"
)

type MariageStore struct{ s *Store }

// acteOf returns the certificate of a mariage, if any.
func (s *Store) acteOf(mariageID uint64) *model.ActeMariage {
	for _, a := range s.actes {
		if a.MariageID == mariageID {
			return &a
		}
	}
	return nil
}

func (s *Store) joinMariage(m model.Mariage) model.Mariage {
	if mr, ok := s.mairies[m.MairieID]; ok {
		m.Mairie = &model.MairieRef{ID: mr.ID, Nom: mr.Nom}
	}
	if a := s.acteOf(m.ID); a != nil {
		m.Acte = &model.ActeRef{ID: a.ID, NumeroActe: a.NumeroActe, Statut: a.Statut}
	}
	if m.CreatedBy != nil {
		if u, ok := s.users[*m.CreatedBy]; ok {
			m.Createur = &model.UserRef{ID: u.ID, FullName: u.FullName}
		}
	}
	return m
}

func bare(m model.Mariage) model.Mariage {
	m.Mairie, m.Acte, m.Createur = nil, nil, nil
	return m
}

func (r *MariageStore) List(_ context.Context, f repository.MariageFilter) ([]model.Mariage, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []model.Mariage{}
	for _, m := range r.s.mariages {
		if !matches(f.Search, m.Epoux.Nom, m.Epoux.Prenom, m.Epouse.Nom, m.Epouse.Prenom) {
			continue
		}
		if f.MairieID != nil && m.MairieID != *f.MairieID {
			continue
		}
		if f.Statut != nil && m.Statut != *f.Statut {
			continue
		}
		if f.DateDebut != nil && m.DateMariage.Before(f.DateDebut.Time) {
			continue
		}
		if f.DateFin != nil && m.DateMariage.After(f.DateFin.Time) {
			continue
		}
		if f.CreatedBy != nil && (m.CreatedBy == nil || *m.CreatedBy != *f.CreatedBy) {
			continue
		}
		out = append(out, r.s.joinMariage(m))
	}
	sortBy(out, func(a, b model.Mariage) bool {
		x, y := a.DateMariage.Time, b.DateMariage.Time
		if f.OrderByCreated {
			x, y = a.CreatedAt, b.CreatedAt
		}
		if !x.Equal(y) {
			return x.After(y)
		}
		return a.ID > b.ID
	})
	page, total := paginate(out, f.ListQuery)
	return page, total, nil
}

func (r *MariageStore) GetByID(_ context.Context, id uint64) (*model.Mariage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.mariages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	m = r.s.joinMariage(m)
	return &m, nil
}

func (r *MariageStore) Create(_ context.Context, m *model.Mariage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.mairies[m.MairieID]; !ok {
		return repository.ErrNotFound
	}
	m.ID = r.s.next("mariages")
	if m.CreatedAt.IsZero() {
		m.CreatedAt = r.s.now()
	}
	r.s.mariages[m.ID] = bare(*m)
	return nil
}

func (r *MariageStore) Update(_ context.Context, id uint64, fn func(m *model.Mariage) error) (*model.Mariage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.mariages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	from := cur.MairieID
	if err := fn(&cur); err != nil {
		return nil, err
	}
	if cur.MairieID != from {
		if _, ok := r.s.mairies[cur.MairieID]; !ok {
			return nil, model.ErrMairieInconnue
		}
		if r.s.acteOf(id) != nil {
			return nil, model.ErrMariageDeplacementActe
		}
	}
	if cur.UpdatedAt == nil {
		now := r.s.now()
		cur.UpdatedAt = &now
	}
	cur.ID = id
	r.s.mariages[id] = bare(cur)
	out := r.s.joinMariage(cur)
	return &out, nil
}

func (r *MariageStore) Delete(_ context.Context, id uint64, check func(m *model.Mariage, hasActe bool) error) (*model.Mariage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.mariages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if err := check(&cur, r.s.acteOf(id) != nil); err != nil {
		return nil, err
	}
	delete(r.s.mariages, id)
	return &cur, nil
}

type ActeStore struct{ s *Store }

func (s *Store) joinActe(a model.ActeMariage) model.ActeMariage {
	if m, ok := s.mariages[a.MariageID]; ok {
		a.Mariage = &model.MariageRef{ID: m.ID, Epoux: m.Epoux.NomComplet(), Epouse: m.Epouse.NomComplet(), DateMariage: m.DateMariage}
	}
	if mr, ok := s.mairies[a.MairieID]; ok {
		a.Mairie = &model.MairieRef{ID: mr.ID, Nom: mr.Nom}
	}
	return a
}

func (r *ActeStore) List(_ context.Context, f repository.ActeFilter) ([]model.ActeMariage, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []model.ActeMariage{}
	for _, a := range r.s.actes {
		if !matches(f.Search, a.NumeroActe) {
			continue
		}
		if f.MairieID != nil && a.MairieID != *f.MairieID {
			continue
		}
		if f.Statut != nil && a.Statut != *f.Statut {
			continue
		}
		if f.Annee != nil && a.Annee != *f.Annee {
			continue
		}
		out = append(out, r.s.joinActe(a))
	}
	sortBy(out, func(a, b model.ActeMariage) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	page, total := paginate(out, f.ListQuery)
	return page, total, nil
}

func (r *ActeStore) GetByID(_ context.Context, id uint64) (*model.ActeMariage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.actes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	a = r.s.joinActe(a)
	return &a, nil
}

// Issue follows the steps of the MySQL store with the store lock standing
// in for the row locks.
func (r *ActeStore) Issue(_ context.Context, req repository.IssueRequest) (*model.ActeMariage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.mariages[req.MariageID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	existing := r.s.acteOf(m.ID)
	if err := req.Check(&m, existing); err != nil {
		return existing, err
	}
	mairie, ok := r.s.mairies[m.MairieID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	ordinal := model.NextOrdinal(mairie.DernierNumeroActe, mairie.AnneeSequence, req.Year, req.ResetYearly)
	year := req.Year
	mairie.DernierNumeroActe, mairie.AnneeSequence = ordinal, &year

	a := req.Build(&m, &mairie, ordinal)
	for _, o := range r.s.actes {
		if o.MairieID == a.MairieID && o.Annee == a.Annee && o.NumeroOrdre == a.NumeroOrdre {
			return nil, repository.ErrConflict
		}
	}
	r.s.mairies[mairie.ID] = mairie
	a.ID = r.s.next("actes_mariage")
	a.CreatedAt = r.s.now()
	a.UpdatedBy = a.CreatedBy
	stored := *a
	stored.Mariage, stored.Mairie = nil, nil
	r.s.actes[a.ID] = stored
	out := r.s.joinActe(stored)
	return &out, nil
}

func (r *ActeStore) Transition(_ context.Context, id uint64, fn func(a *model.ActeMariage) error) (*model.ActeMariage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.actes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if err := fn(&a); err != nil {
		return nil, err
	}
	a.ID = id
	r.s.actes[id] = a
	out := r.s.joinActe(a)
	return &out, nil
}
