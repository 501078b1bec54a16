package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/civil-registry/internal/model"
)

// ActeRepo provides access to actes_mariage and owns certificate numbering.
type ActeRepo struct{ db *sql.DB }

func NewActeRepo(db *sql.DB) *ActeRepo { return &ActeRepo{db: db} }

const acteCols = `am.id, am.mariage_id, am.mairie_id, am.numero_acte, am.annee, am.numero_ordre,
	am.contenu, am.fichier_pdf, am.statut, am.date_validation, am.valide_par,
	am.created_by, am.updated_by, am.created_at, am.updated_at`

const acteJoins = `
	FROM actes_mariage am
	JOIN mariages m ON m.id = am.mariage_id
	JOIN mairies mr ON mr.id = am.mairie_id`

const acteJoinCols = "m.epoux_nom, m.epoux_prenom, m.epouse_nom, m.epouse_prenom, m.date_mariage, mr.nom"

func acteDest(a *model.ActeMariage) []any {
	return []any{&a.ID, &a.MariageID, &a.MairieID, &a.NumeroActe, &a.Annee, &a.NumeroOrdre,
		&a.Contenu, &a.FichierPdf, &a.Statut, &a.DateValidation, &a.ValidePar,
		&a.CreatedBy, &a.UpdatedBy, &a.CreatedAt, &a.UpdatedAt}
}

func scanActeJoined(sc scanner, a *model.ActeMariage) error {
	var (
		epoux, epouse model.Conjoint
		date          model.Date
		mairieNom     string
	)
	dest := append(acteDest(a), &epoux.Nom, &epoux.Prenom, &epouse.Nom, &epouse.Prenom, &date, &mairieNom)
	if err := sc.Scan(dest...); err != nil {
		return err
	}
	a.Mariage = &model.MariageRef{ID: a.MariageID, Epoux: epoux.NomComplet(), Epouse: epouse.NomComplet(), DateMariage: date}
	a.Mairie = &model.MairieRef{ID: a.MairieID, Nom: mairieNom}
	return nil
}

// List returns certificates newest first.
func (r *ActeRepo) List(ctx context.Context, f ActeFilter) ([]model.ActeMariage, int64, error) {
	var w where
	w.like(f.Search, "am.numero_acte")
	if f.MairieID != nil {
		w.add("am.mairie_id = ?", *f.MairieID)
	}
	if f.Statut != nil {
		w.add("am.statut = ?", string(*f.Statut))
	}
	if f.Annee != nil {
		w.add("am.annee = ?", *f.Annee)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM actes_mariage am"+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args := append(append([]any{}, w.args...), f.Limit, f.Offset())
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+acteCols+", "+acteJoinCols+acteJoins+w.sql()+" ORDER BY am.created_at DESC, am.id DESC LIMIT ? OFFSET ?",
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []model.ActeMariage{}
	for rows.Next() {
		var a model.ActeMariage
		if err := scanActeJoined(rows, &a); err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByID returns one certificate with its mariage and mairie summaries.
func (r *ActeRepo) GetByID(ctx context.Context, id uint64) (*model.ActeMariage, error) {
	var a model.ActeMariage
	err := scanActeJoined(r.db.QueryRowContext(ctx, "SELECT "+acteCols+", "+acteJoinCols+acteJoins+" WHERE am.id = ?", id), &a)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// IssueRequest describes one certificate generation.
type IssueRequest struct {
	MariageID   uint64
	Year        int
	ResetYearly bool
	// Check runs with the mariage row locked. existing is the certificate
	// already attached to the mariage, or nil.
	Check func(m *model.Mariage, existing *model.ActeMariage) error
	// Build returns the row to insert once the ordinal is known. The
	// mairie passed in is the locked tenant row.
	Build func(m *model.Mariage, mairie *model.Mairie, ordinal int) *model.ActeMariage
}

// Issue generates a certificate in a single transaction:
//
//  1. lock the mariage row
//  2. load any certificate already attached to it
//  3. run Check
//  4. lock the owning mairie row
//  5. advance dernier_numero_acte and persist it
//  6. insert the certificate built by Build
//
// Concurrent issues for one mairie serialize on step 4 so every caller gets
// a distinct ordinal. When Check fails the existing certificate (if any) is
// returned alongside the error.
func (r *ActeRepo) Issue(ctx context.Context, req IssueRequest) (*model.ActeMariage, error) {
	var (
		out      *model.ActeMariage
		existing *model.ActeMariage
	)
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		m, err := lockMariage(ctx, tx, req.MariageID)
		if err != nil {
			return err
		}

		var cur model.ActeMariage
		err = tx.QueryRowContext(ctx, "SELECT "+acteCols+" FROM actes_mariage am WHERE am.mariage_id = ?", m.ID).
			Scan(acteDest(&cur)...)
		switch {
		case err == nil:
			existing = &cur
		case !errors.Is(err, sql.ErrNoRows):
			return err
		}
		if err := req.Check(m, existing); err != nil {
			return err
		}

		var mairie model.Mairie
		if err := scanMairie(tx.QueryRowContext(ctx,
			"SELECT "+mairieCols+" FROM mairies mr WHERE mr.id = ? FOR UPDATE", m.MairieID), &mairie); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		ordinal := model.NextOrdinal(mairie.DernierNumeroActe, mairie.AnneeSequence, req.Year, req.ResetYearly)
		if _, err := tx.ExecContext(ctx,
			"UPDATE mairies SET dernier_numero_acte = ?, annee_sequence = ? WHERE id = ?",
			ordinal, req.Year, mairie.ID); err != nil {
			return err
		}
		mairie.DernierNumeroActe = ordinal
		year := req.Year
		mairie.AnneeSequence = &year

		a := req.Build(m, &mairie, ordinal)
		now := time.Now().UTC()
		res, err := tx.ExecContext(ctx,
			`INSERT INTO actes_mariage (mariage_id, mairie_id, numero_acte, annee, numero_ordre, contenu, fichier_pdf,
				statut, created_by, updated_by, created_at)
			 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
			a.MariageID, a.MairieID, a.NumeroActe, a.Annee, a.NumeroOrdre, a.Contenu, a.FichierPdf,
			string(a.Statut), a.CreatedBy, a.CreatedBy, now)
		if err != nil {
			if isDuplicate(err) {
				return ErrConflict
			}
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		a.ID = uint64(id)
		a.UpdatedBy = a.CreatedBy
		a.CreatedAt = now
		a.Mairie = &model.MairieRef{ID: mairie.ID, Nom: mairie.Nom}
		a.Mariage = &model.MariageRef{ID: m.ID, Epoux: m.Epoux.NomComplet(), Epouse: m.Epouse.NomComplet(), DateMariage: m.DateMariage}
		out = a
		return nil
	})
	if err != nil {
		return existing, err
	}
	return out, nil
}

// Transition locks a certificate, lets fn check and mutate its status
// fields, and writes them back.
func (r *ActeRepo) Transition(ctx context.Context, id uint64, fn func(a *model.ActeMariage) error) (*model.ActeMariage, error) {
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		var a model.ActeMariage
		if err := tx.QueryRowContext(ctx, "SELECT "+acteCols+" FROM actes_mariage am WHERE am.id = ? FOR UPDATE", id).
			Scan(acteDest(&a)...); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		if err := fn(&a); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			"UPDATE actes_mariage SET statut = ?, date_validation = ?, valide_par = ?, fichier_pdf = ?, updated_by = ?, updated_at = ? WHERE id = ?",
			string(a.Statut), a.DateValidation, a.ValidePar, a.FichierPdf, a.UpdatedBy, a.UpdatedAt, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *ActeRepo) inTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
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
