// Package memory holds map-backed implementations of the service stores.
// They keep the same error contract as the MySQL repositories and back
// STORAGE=memory runs and service tests.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/repository"
)

// Store is one in-process database. A single lock guards every table so
// multi-table operations such as certificate issue are atomic.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time
	ids map[string]uint64

	villes   map[uint64]model.Ville
	arrs     map[uint64]model.Arrondissement
	mairies  map[uint64]model.Mairie
	users    map[uint64]model.User
	refresh  map[string]model.RefreshToken
	revoked  map[string]time.Time
	mariages map[uint64]model.Mariage
	actes    map[uint64]model.ActeMariage
	audit    []model.AuditLog
}

func New() *Store {
	return &Store{
		now:      func() time.Time { return time.Now().UTC() },
		ids:      map[string]uint64{},
		villes:   map[uint64]model.Ville{},
		arrs:     map[uint64]model.Arrondissement{},
		mairies:  map[uint64]model.Mairie{},
		users:    map[uint64]model.User{},
		refresh:  map[string]model.RefreshToken{},
		revoked:  map[string]time.Time{},
		mariages: map[uint64]model.Mariage{},
		actes:    map[uint64]model.ActeMariage{},
	}
}

// next returns the next id of table. Callers hold the write lock.
func (s *Store) next(table string) uint64 {
	s.ids[table]++
	return s.ids[table]
}

func (s *Store) Villes() *VilleStore                   { return &VilleStore{s} }
func (s *Store) Arrondissements() *ArrondissementStore { return &ArrondissementStore{s} }
func (s *Store) Mairies() *MairieStore                 { return &MairieStore{s} }
func (s *Store) Users() *UserStore                     { return &UserStore{s} }
func (s *Store) Tokens() *TokenStore                   { return &TokenStore{s} }
func (s *Store) Mariages() *MariageStore               { return &MariageStore{s} }
func (s *Store) Actes() *ActeStore                     { return &ActeStore{s} }
func (s *Store) Audit() *AuditStore                    { return &AuditStore{s} }
func (s *Store) Dashboard() *DashboardStore            { return &DashboardStore{s} }

// matches is the LIKE %term% of the SQL stores.
func matches(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// paginate cuts one page out of rows unless q asks for every row.
func paginate[T any](rows []T, q repository.ListQuery) ([]T, int64) {
	total := int64(len(rows))
	if q.All || q.Limit <= 0 {
		return rows, total
	}
	start := q.Offset()
	if start >= len(rows) {
		return []T{}, total
	}
	end := start + q.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], total
}

func sortBy[T any](rows []T, less func(a, b T) bool) {
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
}
