package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"io/fs"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/civil-registry/internal/repository"
	"github.com/iliyamo/civil-registry/internal/repository/memory"
)

func TestDSN(t *testing.T) {
	assert.Equal(t,
		"root@tcp(db:3306)/etat_civil?charset=utf8mb4&collation=utf8mb4_unicode_ci&parseTime=true&loc=UTC",
		DSN("root", "", "db", "3306", "etat_civil"))
	assert.True(t, strings.HasPrefix(DSN("u", "p", "h", "1", "n"), "u:p@tcp(h:1)/n?"))
}

func TestMigrationDSN(t *testing.T) {
	assert.Equal(t, "root@tcp(db:3306)/etat_civil?parseTime=true&multiStatements=true",
		MigrationDSN("root@tcp(db:3306)/etat_civil?parseTime=true"))
	assert.Equal(t, "root@tcp(db:3306)/etat_civil?multiStatements=true",
		MigrationDSN("root@tcp(db:3306)/etat_civil"))
	assert.Equal(t, "u@tcp(h:1)/n?multiStatements=false", MigrationDSN("u@tcp(h:1)/n?multiStatements=false"))
}

func TestMigrationsAreVersioned(t *testing.T) {
	src, err := Migrations()
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	rc, ident, err := src.ReadUp(first)
	require.NoError(t, err)
	up, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "init", ident)
	assert.Equal(t, 9, strings.Count(string(up), "CREATE TABLE IF NOT EXISTS"))
	assert.Contains(t, string(up), "annee_sequence")
	assert.Contains(t, string(up), "UNIQUE KEY uq_actes_mariage_ordre (mairie_id, annee, numero_ordre)")

	rc, _, err = src.ReadDown(first)
	require.NoError(t, err)
	down, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, 9, strings.Count(string(down), "DROP TABLE IF EXISTS"))
	assert.Less(t, strings.Index(string(down), "actes_mariage"), strings.Index(string(down), "mariages;"))

	_, err = src.Next(first)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMigrateRejectsMalformedDSN(t *testing.T) {
	err := Migrate(context.Background(), "not a dsn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration pool")
}

func TestMigrateUpStopsWhenDriverFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DATABASE()")).WillReturnError(errors.New("no database selected"))

	err = migrateUp(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration driver")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedSkipsPopulatedDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM villes")).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(3))

	seeded, err := Seed(context.Background(), db, bcrypt.MinCost)
	require.NoError(t, err)
	assert.False(t, seeded)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedInsertsReferenceData(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM villes")).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectBegin()
	id := int64(0)
	next := func() driver.Result { id++; return sqlmock.NewResult(id, 1) }
	for range seedVilles {
		mock.ExpectExec("INSERT INTO villes").WillReturnResult(next())
	}
	for range seedArrondissements {
		mock.ExpectExec("INSERT INTO arrondissements").WillReturnResult(next())
	}
	for range seedMairies {
		mock.ExpectExec("INSERT INTO mairies").WillReturnResult(next())
	}
	for range seedUsers {
		mock.ExpectExec("INSERT INTO users").WillReturnResult(next())
	}
	mock.ExpectCommit()

	seeded, err := Seed(context.Background(), db, bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, seeded)
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Len(t, SeedAccounts(), 6)
}

func TestSeedMemory(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, SeedMemory(ctx, s, bcrypt.MinCost))

	for _, email := range SeedAccounts() {
		u, err := s.Users().GetByEmail(ctx, email)
		require.NoError(t, err, email)
		assert.True(t, u.IsActive)
	}
	n, err := s.Dashboard().CountMairies(ctx, repository.Count{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)

	admin, err := s.Users().GetByEmail(ctx, "admin.yde1@mariage.cm")
	require.NoError(t, err)
	require.NotNil(t, admin.Mairie)
	assert.Equal(t, "Mairie de Yaoundé 1er", admin.Mairie.Nom)
}
