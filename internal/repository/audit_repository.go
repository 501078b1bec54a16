package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/civil-registry/internal/model"
)

// AuditRepo appends to and reads from audit_logs. Rows are never updated.
type AuditRepo struct{ db *sql.DB }

func NewAuditRepo(db *sql.DB) *AuditRepo { return &AuditRepo{db: db} }

// Insert appends one entry and sets its ID and CreatedAt.
func (r *AuditRepo) Insert(ctx context.Context, e *model.AuditLog) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_logs (user_id, mairie_id, action, entity_type, entity_id, old_values, new_values,
			description, ip_address, user_agent, created_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		e.UserID, e.MairieID, string(e.Action), e.EntityType, e.EntityID, e.OldValues, e.NewValues,
		e.Description, e.IPAddress, e.UserAgent, e.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// Latest returns the newest entries, optionally restricted to one mairie,
// with user and mairie names attached.
func (r *AuditRepo) Latest(ctx context.Context, mairieID *uint64, limit int) ([]model.AuditLog, error) {
	var w where
	if mairieID != nil {
		w.add("l.mairie_id = ?", *mairieID)
	}
	args := append(append([]any{}, w.args...), limit)
	rows, err := r.db.QueryContext(ctx,
		`SELECT l.id, l.user_id, l.mairie_id, l.action, l.entity_type, l.entity_id, l.old_values, l.new_values,
			l.description, l.ip_address, l.user_agent, l.created_at, u.full_name, mr.nom
		FROM audit_logs l
		LEFT JOIN users u ON u.id = l.user_id
		LEFT JOIN mairies mr ON mr.id = l.mairie_id`+w.sql()+`
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.AuditLog{}
	for rows.Next() {
		var (
			e         model.AuditLog
			userName  sql.NullString
			mairieNom sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.MairieID, &e.Action, &e.EntityType, &e.EntityID, &e.OldValues,
			&e.NewValues, &e.Description, &e.IPAddress, &e.UserAgent, &e.CreatedAt, &userName, &mairieNom); err != nil {
			return nil, err
		}
		if e.UserID != nil && userName.Valid {
			e.User = &model.UserRef{ID: *e.UserID, FullName: userName.String}
		}
		if e.MairieID != nil && mairieNom.Valid {
			e.Mairie = &model.MairieRef{ID: *e.MairieID, Nom: mairieNom.String}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
