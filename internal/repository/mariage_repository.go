package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/civil-registry/internal/model"
)

// MariageRepo provides access to the mariages table.
type MariageRepo struct{ db *sql.DB }

func NewMariageRepo(db *sql.DB) *MariageRepo { return &MariageRepo{db: db} }

const mariageCols = `m.id, m.mairie_id,
	m.epoux_nom, m.epoux_prenom, m.epoux_date_naissance, m.epoux_lieu_naissance, m.epoux_nationalite,
	m.epoux_profession, m.epoux_adresse, m.epoux_nom_pere, m.epoux_nom_mere,
	m.epouse_nom, m.epouse_prenom, m.epouse_date_naissance, m.epouse_lieu_naissance, m.epouse_nationalite,
	m.epouse_profession, m.epouse_adresse, m.epouse_nom_pere, m.epouse_nom_mere,
	m.date_mariage, m.heure_mariage, m.lieu_mariage, m.regime_matrimonial,
	m.temoin1_nom, m.temoin1_prenom, m.temoin2_nom, m.temoin2_prenom,
	m.officier_nom, m.officier_fonction, m.statut, m.observations,
	m.created_by, m.updated_by, m.created_at, m.updated_at`

// mariageJoins adds the mairie name, the certificate summary and the
// creator name to a mariage row.
const mariageJoins = `
	FROM mariages m
	JOIN mairies mr ON mr.id = m.mairie_id
	LEFT JOIN actes_mariage am ON am.mariage_id = m.id
	LEFT JOIN users cu ON cu.id = m.created_by`

const mariageJoinCols = "mr.nom, am.id, am.numero_acte, am.statut, cu.full_name"

func conjointDest(c *model.Conjoint) []any {
	return []any{&c.Nom, &c.Prenom, &c.DateNaissance, &c.LieuNaissance, &c.Nationalite,
		&c.Profession, &c.Adresse, &c.NomPere, &c.NomMere}
}

func mariageDest(m *model.Mariage) []any {
	dest := []any{&m.ID, &m.MairieID}
	dest = append(dest, conjointDest(&m.Epoux)...)
	dest = append(dest, conjointDest(&m.Epouse)...)
	return append(dest,
		&m.DateMariage, &m.HeureMariage, &m.LieuMariage, &m.RegimeMatrimonial,
		&m.Temoin1Nom, &m.Temoin1Prenom, &m.Temoin2Nom, &m.Temoin2Prenom,
		&m.OfficierNom, &m.OfficierFonction, &m.Statut, &m.Observations,
		&m.CreatedBy, &m.UpdatedBy, &m.CreatedAt, &m.UpdatedAt)
}

type mariageExtras struct {
	mairieNom  string
	acteID     sql.NullInt64
	acteNumero sql.NullString
	acteStatut sql.NullString
	createur   sql.NullString
}

func scanMariageJoined(sc scanner, m *model.Mariage) error {
	var x mariageExtras
	dest := append(mariageDest(m), &x.mairieNom, &x.acteID, &x.acteNumero, &x.acteStatut, &x.createur)
	if err := sc.Scan(dest...); err != nil {
		return err
	}
	m.Mairie = &model.MairieRef{ID: m.MairieID, Nom: x.mairieNom}
	if x.acteID.Valid {
		m.Acte = &model.ActeRef{ID: uint64(x.acteID.Int64), NumeroActe: x.acteNumero.String, Statut: model.StatutActe(x.acteStatut.String)}
	}
	if m.CreatedBy != nil && x.createur.Valid {
		m.Createur = &model.UserRef{ID: *m.CreatedBy, FullName: x.createur.String}
	}
	return nil
}

func mariageWhere(f MariageFilter) where {
	var w where
	w.like(f.Search, "m.epoux_nom", "m.epoux_prenom", "m.epouse_nom", "m.epouse_prenom")
	if f.MairieID != nil {
		w.add("m.mairie_id = ?", *f.MairieID)
	}
	if f.Statut != nil {
		w.add("m.statut = ?", string(*f.Statut))
	}
	if f.DateDebut != nil {
		w.add("m.date_mariage >= ?", f.DateDebut.String())
	}
	if f.DateFin != nil {
		w.add("m.date_mariage <= ?", f.DateFin.String())
	}
	if f.CreatedBy != nil {
		w.add("m.created_by = ?", *f.CreatedBy)
	}
	return w
}

// List returns mariages matching f, by marriage date (newest first) unless
// OrderByCreated is set.
func (r *MariageRepo) List(ctx context.Context, f MariageFilter) ([]model.Mariage, int64, error) {
	w := mariageWhere(f)

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM mariages m"+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := " ORDER BY m.date_mariage DESC, m.id DESC"
	if f.OrderByCreated {
		order = " ORDER BY m.created_at DESC, m.id DESC"
	}
	args := append(append([]any{}, w.args...), f.Limit, f.Offset())
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+mariageCols+", "+mariageJoinCols+mariageJoins+w.sql()+order+" LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []model.Mariage{}
	for rows.Next() {
		var m model.Mariage
		if err := scanMariageJoined(rows, &m); err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByID returns one mariage with mairie, certificate and creator.
func (r *MariageRepo) GetByID(ctx context.Context, id uint64) (*model.Mariage, error) {
	var m model.Mariage
	err := scanMariageJoined(r.db.QueryRowContext(ctx,
		"SELECT "+mariageCols+", "+mariageJoinCols+mariageJoins+" WHERE m.id = ?", id), &m)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func mariageValues(m *model.Mariage) []any {
	c := func(x *model.Conjoint) []any {
		return []any{x.Nom, x.Prenom, x.DateNaissance, x.LieuNaissance, x.Nationalite,
			x.Profession, x.Adresse, x.NomPere, x.NomMere}
	}
	vals := []any{m.MairieID}
	vals = append(vals, c(&m.Epoux)...)
	vals = append(vals, c(&m.Epouse)...)
	return append(vals,
		m.DateMariage, m.HeureMariage, m.LieuMariage, m.RegimeMatrimonial,
		m.Temoin1Nom, m.Temoin1Prenom, m.Temoin2Nom, m.Temoin2Prenom,
		m.OfficierNom, m.OfficierFonction, string(m.Statut), m.Observations)
}

const mariageWriteCols = `mairie_id,
	epoux_nom, epoux_prenom, epoux_date_naissance, epoux_lieu_naissance, epoux_nationalite,
	epoux_profession, epoux_adresse, epoux_nom_pere, epoux_nom_mere,
	epouse_nom, epouse_prenom, epouse_date_naissance, epouse_lieu_naissance, epouse_nationalite,
	epouse_profession, epouse_adresse, epouse_nom_pere, epouse_nom_mere,
	date_mariage, heure_mariage, lieu_mariage, regime_matrimonial,
	temoin1_nom, temoin1_prenom, temoin2_nom, temoin2_prenom,
	officier_nom, officier_fonction, statut, observations`

const mariageWriteCount = 31

// Create inserts m and sets its ID and creation time.
func (r *MariageRepo) Create(ctx context.Context, m *model.Mariage) error {
	now := time.Now().UTC()
	args := append(mariageValues(m), m.CreatedBy, m.CreatedBy, now)
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO mariages ("+mariageWriteCols+", created_by, updated_by, created_at) VALUES ("+placeholders(mariageWriteCount+3)+")",
		args...)
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
	m.ID = uint64(id)
	m.UpdatedBy = m.CreatedBy
	m.CreatedAt = now
	return nil
}

// lockMariage reads a mariage row under FOR UPDATE inside tx.
func lockMariage(ctx context.Context, tx *sql.Tx, id uint64) (*model.Mariage, error) {
	var m model.Mariage
	err := tx.QueryRowContext(ctx, "SELECT "+mariageCols+" FROM mariages m WHERE m.id = ? FOR UPDATE", id).
		Scan(mariageDest(&m)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Update locks the row, lets fn check and mutate it, then writes it back.
// An error from fn aborts the transaction and is returned unchanged.
func (r *MariageRepo) Update(ctx context.Context, id uint64, fn func(m *model.Mariage) error) (*model.Mariage, error) {
	if err := r.inTx(ctx, func(tx *sql.Tx) error {
		m, err := lockMariage(ctx, tx, id)
		if err != nil {
			return err
		}
		from := m.MairieID
		if err := fn(m); err != nil {
			return err
		}
		if m.MairieID != from {
			var n int
			if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM actes_mariage WHERE mariage_id = ?", id).Scan(&n); err != nil {
				return err
			}
			if n > 0 {
				return model.ErrMariageDeplacementActe
			}
		}
		now := time.Now().UTC()
		set := "mairie_id = ?, " +
			"epoux_nom = ?, epoux_prenom = ?, epoux_date_naissance = ?, epoux_lieu_naissance = ?, epoux_nationalite = ?, " +
			"epoux_profession = ?, epoux_adresse = ?, epoux_nom_pere = ?, epoux_nom_mere = ?, " +
			"epouse_nom = ?, epouse_prenom = ?, epouse_date_naissance = ?, epouse_lieu_naissance = ?, epouse_nationalite = ?, " +
			"epouse_profession = ?, epouse_adresse = ?, epouse_nom_pere = ?, epouse_nom_mere = ?, " +
			"date_mariage = ?, heure_mariage = ?, lieu_mariage = ?, regime_matrimonial = ?, " +
			"temoin1_nom = ?, temoin1_prenom = ?, temoin2_nom = ?, temoin2_prenom = ?, " +
			"officier_nom = ?, officier_fonction = ?, statut = ?, observations = ?, updated_by = ?, updated_at = ?"
		args := append(mariageValues(m), m.UpdatedBy, now, id)
		if _, err = tx.ExecContext(ctx, "UPDATE mariages SET "+set+" WHERE id = ?", args...); err != nil {
			if isForeignKey(err) {
				return model.ErrMairieInconnue
			}
			return err
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete locks the row, lets check inspect it together with whether a
// certificate exists, then removes it. The deleted row is returned.
func (r *MariageRepo) Delete(ctx context.Context, id uint64, check func(m *model.Mariage, hasActe bool) error) (*model.Mariage, error) {
	var deleted *model.Mariage
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		m, err := lockMariage(ctx, tx, id)
		if err != nil {
			return err
		}
		var n int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM actes_mariage WHERE mariage_id = ?", id).Scan(&n); err != nil {
			return err
		}
		if err := check(m, n > 0); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM mariages WHERE id = ?", id); err != nil {
			return err
		}
		deleted = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (r *MariageRepo) inTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
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
	return fn(tx)
}
