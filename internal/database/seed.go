package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/civil-registry/internal/utils"
)

// SeedPassword is the password of every seeded account.
const SeedPassword = "password123"

type seedVille struct{ nom, code, region string }

type seedArrondissement struct {
	nom, code string
	ville     int // index into seedVilles
}

type seedMairie struct {
	nom, code, adresse, telephone, email, prefixe string
	arrondissement                                int // index into seedArrondissements
}

type seedUser struct {
	fullName, email, role string
	mairie                int // index into seedMairies, -1 for none
}

var seedVilles = []seedVille{
	{"Douala", "DLA", "Littoral"},
	{"Yaoundé", "YDE", "Centre"},
	{"Bafoussam", "BFS", "Ouest"},
}

var seedArrondissements = []seedArrondissement{
	{"Douala 1er", "DLA1", 0},
	{"Douala 2ème", "DLA2", 0},
	{"Douala 3ème", "DLA3", 0},
	{"Douala 4ème", "DLA4", 0},
	{"Douala 5ème", "DLA5", 0},
	{"Yaoundé 1er", "YDE1", 1},
	{"Yaoundé 2ème", "YDE2", 1},
	{"Yaoundé 3ème", "YDE3", 1},
	{"Yaoundé 4ème", "YDE4", 1},
	{"Bafoussam 1er", "BFS1", 2},
	{"Bafoussam 2ème", "BFS2", 2},
}

var seedMairies = []seedMairie{
	{"Mairie de Douala 1er", "M-DLA1", "Avenue du Général de Gaulle, Douala", "+237 233 42 00 00", "mairie.dla1@example.com", "DLA1", 0},
	{"Mairie de Douala 2ème", "M-DLA2", "Rue de New Bell, Douala", "+237 233 42 00 01", "mairie.dla2@example.com", "DLA2", 1},
	{"Mairie de Yaoundé 1er", "M-YDE1", "Avenue Kennedy, Yaoundé", "+237 222 23 00 00", "mairie.yde1@example.com", "YDE1", 5},
	{"Mairie de Bafoussam 1er", "M-BFS1", "Centre Ville, Bafoussam", "+237 233 44 00 00", "mairie.bfs1@example.com", "BFS1", 9},
}

var seedUsers = []seedUser{
	{"Super Administrateur", "superadmin@mariage.cm", "super_admin", -1},
	{"Admin Douala 1er", "admin.dla1@mariage.cm", "admin_mairie", 0},
	{"Agent Douala 1er", "agent.dla1@mariage.cm", "agent", 0},
	{"Consultation Douala 1er", "consult.dla1@mariage.cm", "consultation", 0},
	{"Admin Yaoundé 1er", "admin.yde1@mariage.cm", "admin_mairie", 2},
	{"Agent Yaoundé 1er", "agent.yde1@mariage.cm", "agent", 2},
}

// SeedAccounts lists the emails of the seeded accounts.
func SeedAccounts() []string {
	out := make([]string, len(seedUsers))
	for i, u := range seedUsers {
		out[i] = u.email
	}
	return out
}

// Seed loads the reference geography and demo accounts. It does nothing
// and reports false when the villes table already has rows.
func Seed(ctx context.Context, db *sql.DB, bcryptCost int) (seeded bool, err error) {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM villes").Scan(&n); err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	hash, err := utils.HashPassword(SeedPassword, bcryptCost)
	if err != nil {
		return false, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	villeIDs := make([]int64, len(seedVilles))
	for i, v := range seedVilles {
		if villeIDs[i], err = insert(ctx, tx,
			"INSERT INTO villes (nom, code, region, is_active, created_at) VALUES (?,?,?,1,UTC_TIMESTAMP())",
			v.nom, v.code, v.region); err != nil {
			return false, fmt.Errorf("seed ville %s: %w", v.code, err)
		}
	}

	arrIDs := make([]int64, len(seedArrondissements))
	for i, a := range seedArrondissements {
		if arrIDs[i], err = insert(ctx, tx,
			"INSERT INTO arrondissements (nom, code, ville_id, is_active, created_at) VALUES (?,?,?,1,UTC_TIMESTAMP())",
			a.nom, a.code, villeIDs[a.ville]); err != nil {
			return false, fmt.Errorf("seed arrondissement %s: %w", a.code, err)
		}
	}

	mairieIDs := make([]int64, len(seedMairies))
	for i, m := range seedMairies {
		if mairieIDs[i], err = insert(ctx, tx,
			`INSERT INTO mairies (nom, code, arrondissement_id, adresse, telephone, email, langue, prefixe_acte, dernier_numero_acte, is_active, created_at)
			 VALUES (?,?,?,?,?,?,'fr',?,0,1,UTC_TIMESTAMP())`,
			m.nom, m.code, arrIDs[m.arrondissement], m.adresse, m.telephone, m.email, m.prefixe); err != nil {
			return false, fmt.Errorf("seed mairie %s: %w", m.code, err)
		}
	}

	for _, u := range seedUsers {
		var mairie any
		if u.mairie >= 0 {
			mairie = mairieIDs[u.mairie]
		}
		if _, err = insert(ctx, tx,
			"INSERT INTO users (full_name, email, password_hash, role, mairie_id, is_active, created_at) VALUES (?,?,?,?,?,1,UTC_TIMESTAMP())",
			u.fullName, u.email, hash, u.role, mairie); err != nil {
			return false, fmt.Errorf("seed user %s: %w", u.email, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func insert(ctx context.Context, tx *sql.Tx, q string, args ...any) (int64, error) {
	res, err := tx.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
