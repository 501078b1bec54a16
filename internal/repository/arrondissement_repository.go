package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/civil-registry/internal/model"
)

// ArrondissementRepo provides access to the arrondissements table.
type ArrondissementRepo struct{ db *sql.DB }

func NewArrondissementRepo(db *sql.DB) *ArrondissementRepo { return &ArrondissementRepo{db: db} }

const arrondissementCols = "a.id, a.nom, a.code, a.ville_id, a.is_active, a.created_at, a.updated_at"

func scanArrondissement(sc scanner, a *model.Arrondissement) error {
	return sc.Scan(&a.ID, &a.Nom, &a.Code, &a.VilleID, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
}

// List returns arrondissements ordered by name, each with its ville and
// the number of mairies it holds.
func (r *ArrondissementRepo) List(ctx context.Context, f ArrondissementFilter) ([]model.Arrondissement, int64, error) {
	var w where
	w.like(f.Search, "a.nom")
	if f.VilleID != nil {
		w.add("a.ville_id = ?", *f.VilleID)
	}
	if f.All {
		w.add("a.is_active = 1")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM arrondissements a"+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT ` + arrondissementCols + `, v.id, v.nom,
			(SELECT COUNT(*) FROM mairies m WHERE m.arrondissement_id = a.id) AS mairies_count
		FROM arrondissements a
		JOIN villes v ON v.id = a.ville_id` + w.sql() + `
		ORDER BY a.nom ASC`
	args := w.args
	if !f.All {
		q += " LIMIT ? OFFSET ?"
		args = append(append([]any{}, args...), f.Limit, f.Offset())
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []model.Arrondissement{}
	for rows.Next() {
		var (
			a     model.Arrondissement
			v     model.Ville
			count int64
		)
		if err := rows.Scan(&a.ID, &a.Nom, &a.Code, &a.VilleID, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
			&v.ID, &v.Nom, &count); err != nil {
			return nil, 0, err
		}
		a.Ville = &v
		a.MairiesCount = &count
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByID returns one arrondissement with its ville and mairies.
func (r *ArrondissementRepo) GetByID(ctx context.Context, id uint64) (*model.Arrondissement, error) {
	var (
		a model.Arrondissement
		v model.Ville
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT "+arrondissementCols+", "+villeCols+" FROM arrondissements a JOIN villes v ON v.id = a.ville_id WHERE a.id = ?", id).
		Scan(&a.ID, &a.Nom, &a.Code, &a.VilleID, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
			&v.ID, &v.Nom, &v.Code, &v.Region, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	a.Ville = &v
	list := []model.Arrondissement{a}
	if err := attachMairies(ctx, r.db, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// Exists reports whether an arrondissement with id exists.
func (r *ArrondissementRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM arrondissements WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// Create inserts a and sets its ID. An unknown ville yields ErrNotFound.
func (r *ArrondissementRepo) Create(ctx context.Context, a *model.Arrondissement) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO arrondissements (nom, code, ville_id, is_active, created_at) VALUES (?,?,?,?,?)",
		a.Nom, a.Code, a.VilleID, a.IsActive, now)
	if err != nil {
		if isForeignKey(err) {
			return ErrNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	a.CreatedAt = now
	return nil
}

// Update writes every mutable column of a.
func (r *ArrondissementRepo) Update(ctx context.Context, a *model.Arrondissement) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		"UPDATE arrondissements SET nom = ?, code = ?, ville_id = ?, is_active = ?, updated_at = ? WHERE id = ?",
		a.Nom, a.Code, a.VilleID, a.IsActive, now, a.ID)
	if err != nil {
		if isForeignKey(err) {
			return ErrNotFound
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if ok, err := r.Exists(ctx, a.ID); err != nil {
			return err
		} else if !ok {
			return ErrNotFound
		}
	}
	a.UpdatedAt = &now
	return nil
}

// Delete removes an arrondissement unless mairies still belong to it.
func (r *ArrondissementRepo) Delete(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var one int
	if err = tx.QueryRowContext(ctx, "SELECT 1 FROM arrondissements WHERE id = ? FOR UPDATE", id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	var n int64
	if err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM mairies WHERE arrondissement_id = ?", id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return &DependentsError{Table: "mairies", Count: n}
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM arrondissements WHERE id = ?", id)
	return err
}
