package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/civil-registry/internal/model"
)

// VilleRepo provides access to the villes table.
type VilleRepo struct{ db *sql.DB }

func NewVilleRepo(db *sql.DB) *VilleRepo { return &VilleRepo{db: db} }

const villeCols = "v.id, v.nom, v.code, v.region, v.is_active, v.created_at, v.updated_at"

func scanVille(sc scanner, v *model.Ville) error {
	return sc.Scan(&v.ID, &v.Nom, &v.Code, &v.Region, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
}

// List returns villes ordered by name with their arrondissements attached.
// With All set only active villes are returned and paging is ignored.
func (r *VilleRepo) List(ctx context.Context, f VilleFilter) ([]model.Ville, int64, error) {
	var w where
	w.like(f.Search, "v.nom")
	if f.All {
		w.add("v.is_active = 1")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM villes v"+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := "SELECT " + villeCols + " FROM villes v" + w.sql() + " ORDER BY v.nom ASC"
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

	out := []model.Ville{}
	for rows.Next() {
		var v model.Ville
		if err := scanVille(rows, &v); err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if err := r.attachArrondissements(ctx, out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *VilleRepo) attachArrondissements(ctx context.Context, villes []model.Ville) error {
	if len(villes) == 0 {
		return nil
	}
	ids := make([]any, len(villes))
	idx := make(map[uint64]int, len(villes))
	for i, v := range villes {
		ids[i] = v.ID
		idx[v.ID] = i
		villes[i].Arrondissements = []model.Arrondissement{}
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+arrondissementCols+" FROM arrondissements a WHERE a.ville_id IN ("+placeholders(len(ids))+") ORDER BY a.nom ASC",
		ids...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var a model.Arrondissement
		if err := scanArrondissement(rows, &a); err != nil {
			return err
		}
		i := idx[a.VilleID]
		villes[i].Arrondissements = append(villes[i].Arrondissements, a)
	}
	return rows.Err()
}

// GetByID returns one ville with its arrondissements and their mairies.
func (r *VilleRepo) GetByID(ctx context.Context, id uint64) (*model.Ville, error) {
	var v model.Ville
	err := scanVille(r.db.QueryRowContext(ctx, "SELECT "+villeCols+" FROM villes v WHERE v.id = ?", id), &v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	list := []model.Ville{v}
	if err := r.attachArrondissements(ctx, list); err != nil {
		return nil, err
	}
	v = list[0]
	if err := attachMairies(ctx, r.db, v.Arrondissements); err != nil {
		return nil, err
	}
	return &v, nil
}

// Exists reports whether a ville with id exists.
func (r *VilleRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM villes WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// Create inserts v and sets its ID. A duplicate code yields ErrDuplicate.
func (r *VilleRepo) Create(ctx context.Context, v *model.Ville) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO villes (nom, code, region, is_active, created_at) VALUES (?,?,?,?,?)",
		v.Nom, v.Code, v.Region, v.IsActive, now)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	v.CreatedAt = now
	return nil
}

// Update writes every mutable column of v.
func (r *VilleRepo) Update(ctx context.Context, v *model.Ville) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		"UPDATE villes SET nom = ?, code = ?, region = ?, is_active = ?, updated_at = ? WHERE id = ?",
		v.Nom, v.Code, v.Region, v.IsActive, now, v.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if ok, err := r.Exists(ctx, v.ID); err != nil {
			return err
		} else if !ok {
			return ErrNotFound
		}
	}
	v.UpdatedAt = &now
	return nil
}

// Delete removes a ville. It refuses with a DependentsError while any
// arrondissement still points at it.
func (r *VilleRepo) Delete(ctx context.Context, id uint64) (err error) {
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
	if err = tx.QueryRowContext(ctx, "SELECT 1 FROM villes WHERE id = ? FOR UPDATE", id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	var n int64
	if err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM arrondissements WHERE ville_id = ?", id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return &DependentsError{Table: "arrondissements", Count: n}
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM villes WHERE id = ?", id)
	return err
}
