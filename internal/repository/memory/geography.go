package memory

import (
	"context"

	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/repository"
)

type VilleStore struct{ s *Store }

func (r *VilleStore) List(_ context.Context, f repository.VilleFilter) ([]model.Ville, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []model.Ville{}
	for _, v := range r.s.villes {
		if !matches(f.Search, v.Nom) || (f.All && !v.IsActive) {
			continue
		}
		out = append(out, v)
	}
	sortBy(out, func(a, b model.Ville) bool { return a.Nom < b.Nom })
	page, total := paginate(out, f.ListQuery)
	for i := range page {
		page[i].Arrondissements = r.s.arrondissementsOf(page[i].ID)
	}
	return page, total, nil
}

func (s *Store) arrondissementsOf(villeID uint64) []model.Arrondissement {
	out := []model.Arrondissement{}
	for _, a := range s.arrs {
		if a.VilleID == villeID {
			out = append(out, a)
		}
	}
	sortBy(out, func(a, b model.Arrondissement) bool { return a.Nom < b.Nom })
	return out
}

func (r *VilleStore) GetByID(_ context.Context, id uint64) (*model.Ville, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.villes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	v.Arrondissements = r.s.arrondissementsOf(id)
	return &v, nil
}

func (s *Store) villeCodeTaken(code *string, except uint64) bool {
	if code == nil {
		return false
	}
	for _, v := range s.villes {
		if v.ID != except && v.Code != nil && *v.Code == *code {
			return true
		}
	}
	return false
}

func (r *VilleStore) Create(_ context.Context, v *model.Ville) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.villeCodeTaken(v.Code, 0) {
		return repository.ErrDuplicate
	}
	v.ID = r.s.next("villes")
	v.CreatedAt = r.s.now()
	row := *v
	row.Arrondissements = nil
	r.s.villes[v.ID] = row
	return nil
}

func (r *VilleStore) Update(_ context.Context, v *model.Ville) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.villes[v.ID]; !ok {
		return repository.ErrNotFound
	}
	if r.s.villeCodeTaken(v.Code, v.ID) {
		return repository.ErrDuplicate
	}
	now := r.s.now()
	v.UpdatedAt = &now
	row := *v
	row.Arrondissements = nil
	r.s.villes[v.ID] = row
	return nil
}

func (r *VilleStore) Delete(_ context.Context, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.villes[id]; !ok {
		return repository.ErrNotFound
	}
	if n := len(r.s.arrondissementsOf(id)); n > 0 {
		return &repository.DependentsError{Table: "arrondissements", Count: int64(n)}
	}
	delete(r.s.villes, id)
	return nil
}

type ArrondissementStore struct{ s *Store }

func (s *Store) mairiesOf(arrID uint64) []model.Mairie {
	out := []model.Mairie{}
	for _, m := range s.mairies {
		if m.ArrondissementID != nil && *m.ArrondissementID == arrID {
			out = append(out, m)
		}
	}
	sortBy(out, func(a, b model.Mairie) bool { return a.Nom < b.Nom })
	return out
}

func (s *Store) withVille(a model.Arrondissement) model.Arrondissement {
	if v, ok := s.villes[a.VilleID]; ok {
		v.Arrondissements = nil
		a.Ville = &v
	}
	return a
}

func (r *ArrondissementStore) List(_ context.Context, f repository.ArrondissementFilter) ([]model.Arrondissement, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []model.Arrondissement{}
	for _, a := range r.s.arrs {
		if !matches(f.Search, a.Nom) || (f.All && !a.IsActive) {
			continue
		}
		if f.VilleID != nil && a.VilleID != *f.VilleID {
			continue
		}
		out = append(out, r.s.withVille(a))
	}
	sortBy(out, func(a, b model.Arrondissement) bool { return a.Nom < b.Nom })
	page, total := paginate(out, f.ListQuery)
	for i := range page {
		n := int64(len(r.s.mairiesOf(page[i].ID)))
		page[i].MairiesCount = &n
	}
	return page, total, nil
}

func (r *ArrondissementStore) GetByID(_ context.Context, id uint64) (*model.Arrondissement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.arrs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	a = r.s.withVille(a)
	a.Mairies = r.s.mairiesOf(id)
	return &a, nil
}

func (r *ArrondissementStore) Create(_ context.Context, a *model.Arrondissement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.villes[a.VilleID]; !ok {
		return repository.ErrNotFound
	}
	a.ID = r.s.next("arrondissements")
	a.CreatedAt = r.s.now()
	r.s.arrs[a.ID] = model.Arrondissement{
		ID: a.ID, Nom: a.Nom, Code: a.Code, VilleID: a.VilleID, IsActive: a.IsActive, CreatedAt: a.CreatedAt,
	}
	return nil
}

func (r *ArrondissementStore) Update(_ context.Context, a *model.Arrondissement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.arrs[a.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.s.villes[a.VilleID]; !ok {
		return repository.ErrNotFound
	}
	now := r.s.now()
	a.UpdatedAt = &now
	cur.Nom, cur.Code, cur.VilleID, cur.IsActive, cur.UpdatedAt = a.Nom, a.Code, a.VilleID, a.IsActive, a.UpdatedAt
	r.s.arrs[a.ID] = cur
	return nil
}

func (r *ArrondissementStore) Delete(_ context.Context, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.arrs[id]; !ok {
		return repository.ErrNotFound
	}
	if n := len(r.s.mairiesOf(id)); n > 0 {
		return &repository.DependentsError{Table: "mairies", Count: int64(n)}
	}
	delete(r.s.arrs, id)
	return nil
}

type MairieStore struct{ s *Store }

func (r *MairieStore) List(_ context.Context, f repository.MairieFilter) ([]model.Mairie, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []model.Mairie{}
	for _, m := range r.s.mairies {
		if !matches(f.Search, m.Nom, deref(m.Code)) || (f.All && !m.IsActive) {
			continue
		}
		if f.ArrondissementID != nil && (m.ArrondissementID == nil || *m.ArrondissementID != *f.ArrondissementID) {
			continue
		}
		if f.MairieID != nil && m.ID != *f.MairieID {
			continue
		}
		out = append(out, r.s.withArrondissement(m))
	}
	sortBy(out, func(a, b model.Mairie) bool { return a.Nom < b.Nom })
	page, total := paginate(out, f.ListQuery)
	return page, total, nil
}

func (s *Store) withArrondissement(m model.Mairie) model.Mairie {
	if m.ArrondissementID == nil {
		return m
	}
	if a, ok := s.arrs[*m.ArrondissementID]; ok {
		a = s.withVille(a)
		m.Arrondissement = &a
	}
	return m
}

func (r *MairieStore) GetByID(_ context.Context, id uint64) (*model.Mairie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.mairies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	m = r.s.withArrondissement(m)
	m.Users = []model.User{}
	for _, u := range r.s.users {
		if u.MairieID != nil && *u.MairieID == id {
			m.Users = append(m.Users, u)
		}
	}
	sortBy(m.Users, func(a, b model.User) bool { return a.FullName < b.FullName })
	return &m, nil
}

func (r *MairieStore) Exists(_ context.Context, id uint64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.mairies[id]
	return ok, nil
}

func (s *Store) checkMairie(m *model.Mairie) error {
	if m.Code != nil {
		for _, o := range s.mairies {
			if o.ID != m.ID && o.Code != nil && *o.Code == *m.Code {
				return repository.ErrDuplicate
			}
		}
	}
	if m.ArrondissementID != nil {
		if _, ok := s.arrs[*m.ArrondissementID]; !ok {
			return repository.ErrNotFound
		}
	}
	return nil
}

func (r *MairieStore) Create(_ context.Context, m *model.Mairie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkMairie(m); err != nil {
		return err
	}
	m.ID = r.s.next("mairies")
	m.CreatedAt = r.s.now()
	m.DernierNumeroActe = 0
	m.AnneeSequence = nil
	row := *m
	row.Arrondissement, row.Users = nil, nil
	r.s.mairies[m.ID] = row
	return nil
}

// Update writes the editable columns. The certificate sequence is only
// moved by ActeStore.Issue.
func (r *MairieStore) Update(_ context.Context, m *model.Mairie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.mairies[m.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if err := r.s.checkMairie(m); err != nil {
		return err
	}
	now := r.s.now()
	m.UpdatedAt = &now
	row := *m
	row.Arrondissement, row.Users = nil, nil
	row.DernierNumeroActe, row.AnneeSequence, row.CreatedAt = cur.DernierNumeroActe, cur.AnneeSequence, cur.CreatedAt
	r.s.mairies[m.ID] = row
	return nil
}

func (r *MairieStore) Delete(_ context.Context, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.mairies[id]; !ok {
		return repository.ErrNotFound
	}
	var users, mariages int64
	for _, u := range r.s.users {
		if u.MairieID != nil && *u.MairieID == id {
			users++
		}
	}
	if users > 0 {
		return &repository.DependentsError{Table: "users", Count: users}
	}
	for _, m := range r.s.mariages {
		if m.MairieID == id {
			mariages++
		}
	}
	if mariages > 0 {
		return &repository.DependentsError{Table: "mariages", Count: mariages}
	}
	delete(r.s.mairies, id)
	return nil
}

func (r *MairieStore) Stats(_ context.Context, id uint64) (model.MairieStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.mairies[id]
	if !ok {
		return model.MairieStats{}, repository.ErrNotFound
	}
	st := model.MairieStats{Mairie: m.Nom}
	for _, u := range r.s.users {
		if u.MairieID != nil && *u.MairieID == id {
			st.TotalUsers++
		}
	}
	for _, mg := range r.s.mariages {
		if mg.MairieID == id {
			st.TotalMariages++
		}
	}
	for _, a := range r.s.actes {
		if a.MairieID == id {
			st.TotalActes++
		}
	}
	return st, nil
}
