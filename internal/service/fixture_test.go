package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/civil-registry/internal/authz"
	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/repository"
	"github.com/iliyamo/civil-registry/internal/repository/memory"
	"github.com/iliyamo/civil-registry/internal/utils"
)

var (
	_ VilleStore          = (*repository.VilleRepo)(nil)
	_ ArrondissementStore = (*repository.ArrondissementRepo)(nil)
	_ MairieStore         = (*repository.MairieRepo)(nil)
	_ UserStore           = (*repository.UserRepo)(nil)
	_ TokenStore          = (*repository.TokenRepo)(nil)
	_ MariageStore        = (*repository.MariageRepo)(nil)
	_ ActeStore           = (*repository.ActeRepo)(nil)
	_ AuditStore          = (*repository.AuditRepo)(nil)
	_ DashboardStore      = (*repository.DashboardRepo)(nil)

	_ VilleStore          = (*memory.VilleStore)(nil)
	_ ArrondissementStore = (*memory.ArrondissementStore)(nil)
	_ MairieStore         = (*memory.MairieStore)(nil)
	_ UserStore           = (*memory.UserStore)(nil)
	_ TokenStore          = (*memory.TokenStore)(nil)
	_ MariageStore        = (*memory.MariageStore)(nil)
	_ ActeStore           = (*memory.ActeStore)(nil)
	_ AuditStore          = (*memory.AuditStore)(nil)
	_ DashboardStore      = (*memory.DashboardStore)(nil)

	_ EventPublisher = (*AMQPPublisher)(nil)
)

// fixture is a memory-backed world with two mairies and one account per
// role in the first one.
type fixture struct {
	store *memory.Store
	audit *Recorder

	mairie *model.Mairie
	other  *model.Mairie

	super   authz.Principal
	admin   authz.Principal
	agent   authz.Principal
	consult authz.Principal
	outside authz.Principal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.New()
	f := &fixture{store: s, audit: NewRecorder(s.Audit())}
	f.audit.spawn = func(fn func()) { fn() }

	v := &model.Ville{Nom: "Douala", IsActive: true}
	require.NoError(t, s.Villes().Create(ctx, v))
	a := &model.Arrondissement{Nom: "Douala 1er", VilleID: v.ID, IsActive: true}
	require.NoError(t, s.Arrondissements().Create(ctx, a))

	dla1, yde1 := "DLA1", "YDE1"
	f.mairie = &model.Mairie{Nom: "Mairie de Douala 1er", Code: &dla1, PrefixeActe: &dla1, ArrondissementID: &a.ID, IsActive: true, Langue: "fr"}
	require.NoError(t, s.Mairies().Create(ctx, f.mairie))
	f.other = &model.Mairie{Nom: "Mairie de Yaoundé 1er", Code: &yde1, PrefixeActe: &yde1, ArrondissementID: &a.ID, IsActive: true, Langue: "fr"}
	require.NoError(t, s.Mairies().Create(ctx, f.other))

	f.super = f.addUser(t, "Super Admin", "super@etatcivil.cm", model.RoleSuperAdmin, nil)
	f.admin = f.addUser(t, "Admin Douala", "admin@etatcivil.cm", model.RoleAdminMairie, &f.mairie.ID)
	f.agent = f.addUser(t, "Agent Douala", "agent@etatcivil.cm", model.RoleAgent, &f.mairie.ID)
	f.consult = f.addUser(t, "Lecteur Douala", "lecture@etatcivil.cm", model.RoleConsultation, &f.mairie.ID)
	f.outside = f.addUser(t, "Agent Yaoundé", "agent.yde@etatcivil.cm", model.RoleAgent, &f.other.ID)
	return f
}

func (f *fixture) addUser(t *testing.T, name, email string, role model.Role, mairieID *uint64) authz.Principal {
	t.Helper()
	u := &model.User{FullName: name, Email: email, PasswordHash: testHash(t), Role: role, MairieID: mairieID, IsActive: true}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return principalOf(u)
}

var cachedHash string

// testHash returns a cheap bcrypt hash of "password123".
func testHash(t *testing.T) string {
	t.Helper()
	if cachedHash == "" {
		h, err := utils.HashPassword("password123", bcrypt.MinCost)
		require.NoError(t, err)
		cachedHash = h
	}
	return cachedHash
}

func (f *fixture) mariageInput(mairieID *uint64) MariageInput {
	str := func(s string) *string { return &s }
	date := func(s string) *model.Date {
		d, _ := model.ParseDate(s)
		return &d
	}
	return MariageInput{
		MairieID: mairieID,
		MariagePatch: model.MariagePatch{
			Epoux: &model.ConjointPatch{
				Nom: str("Ngono"), Prenom: str("Paul"),
				DateNaissance: date("1990-03-12"), LieuNaissance: str("Douala"),
			},
			Epouse: &model.ConjointPatch{
				Nom: str("Mbarga"), Prenom: str("Claire"),
				DateNaissance: date("1993-07-01"), LieuNaissance: str("Yaoundé"),
			},
			DateMariage: date("2024-06-15"),
		},
	}
}

// validMariage creates and validates a mariage in the fixture's first
// mairie.
func (f *fixture) validMariage(t *testing.T, svc *MariageService) *model.Mariage {
	t.Helper()
	ctx := context.Background()
	m, err := svc.Create(ctx, f.agent, f.mariageInput(nil))
	require.NoError(t, err)
	m, err = svc.Validate(ctx, f.admin, m.ID)
	require.NoError(t, err)
	return m
}

func fixedClock(s string) func() time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}
