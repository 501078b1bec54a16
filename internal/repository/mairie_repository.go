package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/civil-registry/internal/model"
)

// MairieRepo provides access to the mairies table (the tenants).
type MairieRepo struct{ db *sql.DB }

func NewMairieRepo(db *sql.DB) *MairieRepo { return &MairieRepo{db: db} }

const mairieCols = `mr.id, mr.nom, mr.code, mr.arrondissement_id, mr.adresse, mr.telephone, mr.email,
	mr.logo, mr.cachet, mr.langue, mr.prefixe_acte, mr.dernier_numero_acte, mr.annee_sequence,
	mr.is_active, mr.created_at, mr.updated_at`

func mairieDest(m *model.Mairie) []any {
	return []any{&m.ID, &m.Nom, &m.Code, &m.ArrondissementID, &m.Adresse, &m.Telephone, &m.Email,
		&m.Logo, &m.Cachet, &m.Langue, &m.PrefixeActe, &m.DernierNumeroActe, &m.AnneeSequence,
		&m.IsActive, &m.CreatedAt, &m.UpdatedAt}
}

func scanMairie(sc scanner, m *model.Mairie) error {
	return sc.Scan(mairieDest(m)...)
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// attachMairies loads the mairies of every arrondissement in arrs.
func attachMairies(ctx context.Context, db queryer, arrs []model.Arrondissement) error {
	if len(arrs) == 0 {
		return nil
	}
	ids := make([]any, len(arrs))
	idx := make(map[uint64]int, len(arrs))
	for i, a := range arrs {
		ids[i] = a.ID
		idx[a.ID] = i
		arrs[i].Mairies = []model.Mairie{}
	}
	rows, err := db.QueryContext(ctx,
		"SELECT "+mairieCols+" FROM mairies mr WHERE mr.arrondissement_id IN ("+placeholders(len(ids))+") ORDER BY mr.nom ASC",
		ids...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var m model.Mairie
		if err := scanMairie(rows, &m); err != nil {
			return err
		}
		if m.ArrondissementID == nil {
			continue
		}
		i := idx[*m.ArrondissementID]
		arrs[i].Mairies = append(arrs[i].Mairies, m)
	}
	return rows.Err()
}

// List returns mairies ordered by name with their arrondissement and ville.
// MairieID, when set, restricts the result to that tenant.
func (r *MairieRepo) List(ctx context.Context, f MairieFilter) ([]model.Mairie, int64, error) {
	var w where
	w.like(f.Search, "mr.nom", "mr.code")
	if f.ArrondissementID != nil {
		w.add("mr.arrondissement_id = ?", *f.ArrondissementID)
	}
	if f.MairieID != nil {
		w.add("mr.id = ?", *f.MairieID)
	}
	if f.All {
		w.add("mr.is_active = 1")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM mairies mr"+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT ` + mairieCols + `, a.id, a.nom, v.id, v.nom
		FROM mairies mr
		LEFT JOIN arrondissements a ON a.id = mr.arrondissement_id
		LEFT JOIN villes v ON v.id = a.ville_id` + w.sql() + `
		ORDER BY mr.nom ASC`
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

	out := []model.Mairie{}
	for rows.Next() {
		var (
			m              model.Mairie
			arrID, villeID sql.NullInt64
			arrNom, vNom   sql.NullString
		)
		dest := append(mairieDest(&m), &arrID, &arrNom, &villeID, &vNom)
		if err := rows.Scan(dest...); err != nil {
			return nil, 0, err
		}
		if arrID.Valid {
			m.Arrondissement = &model.Arrondissement{ID: uint64(arrID.Int64), Nom: arrNom.String}
			if villeID.Valid {
				m.Arrondissement.VilleID = uint64(villeID.Int64)
				m.Arrondissement.Ville = &model.Ville{ID: uint64(villeID.Int64), Nom: vNom.String}
			}
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByID returns one mairie with arrondissement, ville and users.
func (r *MairieRepo) GetByID(ctx context.Context, id uint64) (*model.Mairie, error) {
	var m model.Mairie
	if err := scanMairie(r.db.QueryRowContext(ctx, "SELECT "+mairieCols+" FROM mairies mr WHERE mr.id = ?", id), &m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if m.ArrondissementID != nil {
		var (
			a model.Arrondissement
			v model.Ville
		)
		err := r.db.QueryRowContext(ctx,
			"SELECT "+arrondissementCols+", "+villeCols+" FROM arrondissements a JOIN villes v ON v.id = a.ville_id WHERE a.id = ?",
			*m.ArrondissementID).
			Scan(&a.ID, &a.Nom, &a.Code, &a.VilleID, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
				&v.ID, &v.Nom, &v.Code, &v.Region, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
		switch {
		case err == nil:
			a.Ville = &v
			m.Arrondissement = &a
		case !errors.Is(err, sql.ErrNoRows):
			return nil, err
		}
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userCols+" FROM users u WHERE u.mairie_id = ? ORDER BY u.full_name ASC", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	m.Users = []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		m.Users = append(m.Users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Exists reports whether a mairie with id exists.
func (r *MairieRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM mairies WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// Create inserts m with a zero certificate sequence and sets its ID.
func (r *MairieRepo) Create(ctx context.Context, m *model.Mairie) error {
	now := time.Now().UTC()
	if m.Langue == "" {
		m.Langue = "fr"
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO mairies (nom, code, arrondissement_id, adresse, telephone, email, logo, cachet,
			langue, prefixe_acte, dernier_numero_acte, is_active, created_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,0,?,?)`,
		m.Nom, m.Code, m.ArrondissementID, m.Adresse, m.Telephone, m.Email, m.Logo, m.Cachet,
		m.Langue, m.PrefixeActe, m.IsActive, now)
	if err != nil {
		switch {
		case isDuplicate(err):
			return ErrDuplicate
		case isForeignKey(err):
			return ErrNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	m.DernierNumeroActe = 0
	m.CreatedAt = now
	return nil
}

// Update writes the descriptive columns of m. The certificate sequence is
// only ever moved by ActeRepo.Issue.
func (r *MairieRepo) Update(ctx context.Context, m *model.Mairie) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE mairies SET nom = ?, code = ?, arrondissement_id = ?, adresse = ?, telephone = ?, email = ?,
			logo = ?, cachet = ?, langue = ?, prefixe_acte = ?, is_active = ?, updated_at = ?
		 WHERE id = ?`,
		m.Nom, m.Code, m.ArrondissementID, m.Adresse, m.Telephone, m.Email,
		m.Logo, m.Cachet, m.Langue, m.PrefixeActe, m.IsActive, now, m.ID)
	if err != nil {
		switch {
		case isDuplicate(err):
			return ErrDuplicate
		case isForeignKey(err):
			return ErrNotFound
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if ok, err := r.Exists(ctx, m.ID); err != nil {
			return err
		} else if !ok {
			return ErrNotFound
		}
	}
	m.UpdatedAt = &now
	return nil
}

// Delete removes a mairie. Users are checked before mariages so the
// refusal names the first blocking table.
func (r *MairieRepo) Delete(ctx context.Context, id uint64) (err error) {
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
	if err = tx.QueryRowContext(ctx, "SELECT 1 FROM mairies WHERE id = ? FOR UPDATE", id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	for _, table := range []string{"users", "mariages"} {
		var n int64
		if err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table+" WHERE mairie_id = ?", id).Scan(&n); err != nil {
			return err
		}
		if n > 0 {
			return &DependentsError{Table: table, Count: n}
		}
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM mairies WHERE id = ?", id)
	return err
}

// Stats returns user, mariage and certificate totals for one mairie.
func (r *MairieRepo) Stats(ctx context.Context, id uint64) (model.MairieStats, error) {
	var s model.MairieStats
	err := r.db.QueryRowContext(ctx, `SELECT mr.nom,
			(SELECT COUNT(*) FROM users u WHERE u.mairie_id = mr.id),
			(SELECT COUNT(*) FROM mariages m WHERE m.mairie_id = mr.id),
			(SELECT COUNT(*) FROM actes_mariage a WHERE a.mairie_id = mr.id)
		FROM mairies mr WHERE mr.id = ?`, id).
		Scan(&s.Mairie, &s.TotalUsers, &s.TotalMariages, &s.TotalActes)
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrNotFound
	}
	return s, err
}
