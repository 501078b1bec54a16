package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/civil-registry/internal/model"
)

// DashboardRepo runs the read-only aggregate queries behind GET /dashboard.
type DashboardRepo struct{ db *sql.DB }

func NewDashboardRepo(db *sql.DB) *DashboardRepo { return &DashboardRepo{db: db} }

// Count selects which rows a counting query considers. Nil fields do not
// filter.
type Count struct {
	MairieID   *uint64
	ActiveOnly bool
	Statut     *model.StatutMariage
	CreatedBy  *uint64
	Since      *time.Time
}

// MairieVolume is one row of the mairie ranking.
type MairieVolume struct {
	ID            uint64 `json:"id"`
	Nom           string `json:"nom"`
	TotalMariages int64  `json:"totalMariages"`
	TotalUsers    int64  `json:"totalUsers"`
}

func (r *DashboardRepo) count(ctx context.Context, table string, w where) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table+w.sql(), w.args...).Scan(&n)
	return n, err
}

// CountMairies counts tenants.
func (r *DashboardRepo) CountMairies(ctx context.Context, c Count) (int64, error) {
	var w where
	if c.ActiveOnly {
		w.add("is_active = 1")
	}
	return r.count(ctx, "mairies", w)
}

// CountUsers counts accounts.
func (r *DashboardRepo) CountUsers(ctx context.Context, c Count) (int64, error) {
	var w where
	if c.MairieID != nil {
		w.add("mairie_id = ?", *c.MairieID)
	}
	if c.ActiveOnly {
		w.add("is_active = 1")
	}
	return r.count(ctx, "users", w)
}

// CountMariages counts marriage records.
func (r *DashboardRepo) CountMariages(ctx context.Context, c Count) (int64, error) {
	var w where
	if c.MairieID != nil {
		w.add("mairie_id = ?", *c.MairieID)
	}
	if c.Statut != nil {
		w.add("statut = ?", string(*c.Statut))
	}
	if c.CreatedBy != nil {
		w.add("created_by = ?", *c.CreatedBy)
	}
	if c.Since != nil {
		w.add("created_at >= ?", *c.Since)
	}
	return r.count(ctx, "mariages", w)
}

// CountActes counts certificates.
func (r *DashboardRepo) CountActes(ctx context.Context, c Count) (int64, error) {
	var w where
	if c.MairieID != nil {
		w.add("mairie_id = ?", *c.MairieID)
	}
	return r.count(ctx, "actes_mariage", w)
}

// TopMairies ranks tenants by number of mariages.
func (r *DashboardRepo) TopMairies(ctx context.Context, limit int) ([]MairieVolume, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT mr.id, mr.nom,
			(SELECT COUNT(*) FROM mariages m WHERE m.mairie_id = mr.id) AS mariages_count,
			(SELECT COUNT(*) FROM users u WHERE u.mairie_id = mr.id) AS users_count
		FROM mairies mr
		ORDER BY mariages_count DESC, mr.nom ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []MairieVolume{}
	for rows.Next() {
		var v MairieVolume
		if err := rows.Scan(&v.ID, &v.Nom, &v.TotalMariages, &v.TotalUsers); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// RecentUsers lists active users of a mairie by most recent login.
func (r *DashboardRepo) RecentUsers(ctx context.Context, mairieID uint64, limit int) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userCols+" FROM users u WHERE u.mairie_id = ? AND u.is_active = 1 ORDER BY u.last_login_at DESC LIMIT ?",
		mairieID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// MariageCreationTimes returns the creation time of every mariage created
// during year, oldest first. MairieID restricts to one tenant.
func (r *DashboardRepo) MariageCreationTimes(ctx context.Context, mairieID *uint64, year int) ([]time.Time, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	var w where
	w.add("created_at >= ?", start)
	w.add("created_at < ?", start.AddDate(1, 0, 0))
	if mairieID != nil {
		w.add("mairie_id = ?", *mairieID)
	}
	rows, err := r.db.QueryContext(ctx, "SELECT created_at FROM mariages"+w.sql()+" ORDER BY created_at ASC", w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []time.Time{}
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
