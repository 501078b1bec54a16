// Package service holds the use cases behind the HTTP API: authentication,
// accounts, geography, marriage records, certificates and the dashboard.
// Services depend on the store interfaces below; the MySQL repositories
// and the in-memory stores both satisfy them.
package service

import (
	"context"
	"time"

	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/queue"
	"github.com/iliyamo/civil-registry/internal/repository"
)

//go:generate mockgen -source=stores.go -destination=mocks/mocks.go -package=mocks

type VilleStore interface {
	List(ctx context.Context, f repository.VilleFilter) ([]model.Ville, int64, error)
	GetByID(ctx context.Context, id uint64) (*model.Ville, error)
	Create(ctx context.Context, v *model.Ville) error
	Update(ctx context.Context, v *model.Ville) error
	Delete(ctx context.Context, id uint64) error
}

type ArrondissementStore interface {
	List(ctx context.Context, f repository.ArrondissementFilter) ([]model.Arrondissement, int64, error)
	GetByID(ctx context.Context, id uint64) (*model.Arrondissement, error)
	Create(ctx context.Context, a *model.Arrondissement) error
	Update(ctx context.Context, a *model.Arrondissement) error
	Delete(ctx context.Context, id uint64) error
}

type MairieStore interface {
	List(ctx context.Context, f repository.MairieFilter) ([]model.Mairie, int64, error)
	GetByID(ctx context.Context, id uint64) (*model.Mairie, error)
	Exists(ctx context.Context, id uint64) (bool, error)
	Create(ctx context.Context, m *model.Mairie) error
	Update(ctx context.Context, m *model.Mairie) error
	Delete(ctx context.Context, id uint64) error
	Stats(ctx context.Context, id uint64) (model.MairieStats, error)
}

type UserStore interface {
	List(ctx context.Context, f repository.UserFilter) ([]model.User, int64, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	SetPassword(ctx context.Context, id uint64, hash string) error
	SetActive(ctx context.Context, id uint64, active bool) error
	TouchLogin(ctx context.Context, id uint64, at time.Time) error
	Delete(ctx context.Context, id uint64) error
}

type TokenStore interface {
	StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID uint64) error
	RevokeAccess(ctx context.Context, jti string, userID uint64, exp time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type MariageStore interface {
	List(ctx context.Context, f repository.MariageFilter) ([]model.Mariage, int64, error)
	GetByID(ctx context.Context, id uint64) (*model.Mariage, error)
	Create(ctx context.Context, m *model.Mariage) error
	Update(ctx context.Context, id uint64, fn func(m *model.Mariage) error) (*model.Mariage, error)
	Delete(ctx context.Context, id uint64, check func(m *model.Mariage, hasActe bool) error) (*model.Mariage, error)
}

type ActeStore interface {
	List(ctx context.Context, f repository.ActeFilter) ([]model.ActeMariage, int64, error)
	GetByID(ctx context.Context, id uint64) (*model.ActeMariage, error)
	Issue(ctx context.Context, req repository.IssueRequest) (*model.ActeMariage, error)
	Transition(ctx context.Context, id uint64, fn func(a *model.ActeMariage) error) (*model.ActeMariage, error)
}

type AuditStore interface {
	Insert(ctx context.Context, e *model.AuditLog) error
	Latest(ctx context.Context, mairieID *uint64, limit int) ([]model.AuditLog, error)
}

type DashboardStore interface {
	CountMairies(ctx context.Context, c repository.Count) (int64, error)
	CountUsers(ctx context.Context, c repository.Count) (int64, error)
	CountMariages(ctx context.Context, c repository.Count) (int64, error)
	CountActes(ctx context.Context, c repository.Count) (int64, error)
	TopMairies(ctx context.Context, limit int) ([]repository.MairieVolume, error)
	RecentUsers(ctx context.Context, mairieID uint64, limit int) ([]model.User, error)
	MariageCreationTimes(ctx context.Context, mairieID *uint64, year int) ([]time.Time, error)
}

// EventPublisher forwards stored audit entries to the message broker.
type EventPublisher interface {
	PublishAudit(ctx context.Context, ev queue.AuditEvent) error
}
