package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/civil-registry/internal/model"
)

// UserRepo provides access to the users table.
type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userCols = `u.id, u.full_name, u.email, u.password_hash, u.telephone, u.role, u.mairie_id,
	u.is_active, u.last_login_at, u.avatar, u.created_at, u.updated_at`

func userDest(u *model.User) []any {
	return []any{&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Telephone, &u.Role, &u.MairieID,
		&u.IsActive, &u.LastLoginAt, &u.Avatar, &u.CreatedAt, &u.UpdatedAt}
}

func scanUser(sc scanner, u *model.User) error {
	return sc.Scan(userDest(u)...)
}

// NormalizeEmail lower-cases and trims an address before lookup or storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// List returns users newest first, each with its mairie summary.
func (r *UserRepo) List(ctx context.Context, f UserFilter) ([]model.User, int64, error) {
	var w where
	w.like(f.Search, "u.full_name", "u.email")
	if f.Role != nil {
		w.add("u.role = ?", string(*f.Role))
	}
	if f.IsActive != nil {
		w.add("u.is_active = ?", *f.IsActive)
	}
	if f.MairieID != nil {
		w.add("u.mairie_id = ?", *f.MairieID)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users u"+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args := append(append([]any{}, w.args...), f.Limit, f.Offset())
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userCols+`, mr.nom
		FROM users u
		LEFT JOIN mairies mr ON mr.id = u.mairie_id`+w.sql()+`
		ORDER BY u.created_at DESC, u.id DESC
		LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []model.User{}
	for rows.Next() {
		var (
			u   model.User
			nom sql.NullString
		)
		if err := rows.Scan(append(userDest(&u), &nom)...); err != nil {
			return nil, 0, err
		}
		if u.MairieID != nil && nom.Valid {
			u.Mairie = &model.Mairie{ID: *u.MairieID, Nom: nom.String}
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByID fetches a user with its mairie.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return r.getOne(ctx, "u.id = ?", id)
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, "u.email = ?", NormalizeEmail(email))
}

func (r *UserRepo) getOne(ctx context.Context, cond string, arg any) (*model.User, error) {
	var u model.User
	if err := scanUser(r.db.QueryRowContext(ctx, "SELECT "+userCols+" FROM users u WHERE "+cond+" LIMIT 1", arg), &u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if u.MairieID != nil {
		var m model.Mairie
		err := scanMairie(r.db.QueryRowContext(ctx, "SELECT "+mairieCols+" FROM mairies mr WHERE mr.id = ?", *u.MairieID), &m)
		switch {
		case err == nil:
			u.Mairie = &m
		case !errors.Is(err, sql.ErrNoRows):
			return nil, err
		}
	}
	return &u, nil
}

// Create inserts u and sets its ID. PasswordHash must already be set.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	now := time.Now().UTC()
	u.Email = NormalizeEmail(u.Email)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (full_name, email, password_hash, telephone, role, mairie_id, is_active, avatar, created_at)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		u.FullName, u.Email, u.PasswordHash, u.Telephone, string(u.Role), u.MairieID, u.IsActive, u.Avatar, now)
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
	u.ID = uint64(id)
	u.CreatedAt = now
	return nil
}

// Update writes the profile columns of u. The password is changed through
// SetPassword only.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	now := time.Now().UTC()
	u.Email = NormalizeEmail(u.Email)
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET full_name = ?, email = ?, telephone = ?, role = ?, mairie_id = ?, is_active = ?,
			avatar = ?, updated_at = ?
		 WHERE id = ?`,
		u.FullName, u.Email, u.Telephone, string(u.Role), u.MairieID, u.IsActive, u.Avatar, now, u.ID)
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
		return r.mustExist(ctx, u.ID)
	}
	u.UpdatedAt = &now
	return nil
}

// SetPassword replaces the bcrypt hash of a user.
func (r *UserRepo) SetPassword(ctx context.Context, id uint64, hash string) error {
	return r.exec(ctx, id, "UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?", hash, time.Now().UTC(), id)
}

// SetActive enables or disables an account.
func (r *UserRepo) SetActive(ctx context.Context, id uint64, active bool) error {
	return r.exec(ctx, id, "UPDATE users SET is_active = ?, updated_at = ? WHERE id = ?", active, time.Now().UTC(), id)
}

// TouchLogin records a successful login time.
func (r *UserRepo) TouchLogin(ctx context.Context, id uint64, at time.Time) error {
	return r.exec(ctx, id, "UPDATE users SET last_login_at = ? WHERE id = ?", at, id)
}

// Delete removes a user.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	return r.exec(ctx, id, "DELETE FROM users WHERE id = ?", id)
}

func (r *UserRepo) exec(ctx context.Context, id uint64, q string, args ...any) error {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.mustExist(ctx, id)
	}
	return nil
}

// mustExist distinguishes "no row" from "row unchanged" after an UPDATE
// that affected nothing.
func (r *UserRepo) mustExist(ctx context.Context, id uint64) error {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
