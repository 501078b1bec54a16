package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/repository"
)

func newMariageService(f *fixture) *MariageService {
	svc := NewMariageService(f.store.Mariages(), f.store.Mairies(), f.audit)
	svc.now = fixedClock("2024-06-10T09:00:00Z")
	return svc
}

func TestMariageCreate(t *testing.T) {
	f := newFixture(t)
	svc := newMariageService(f)

	m, err := svc.Create(context.Background(), f.agent, f.mariageInput(&f.other.ID))
	require.NoError(t, err)
	assert.Equal(t, f.mairie.ID, m.MairieID, "non super admins always write to their own mairie")
	assert.Equal(t, model.MariageBrouillon, m.Statut)
	assert.Equal(t, model.DefaultRegime, m.RegimeMatrimonial)
	assert.Equal(t, f.agent.UserID, *m.CreatedBy)

	logs, err := f.audit.Latest(context.Background(), &f.mairie.ID, 1)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.ActionCreate, logs[0].Action)
	assert.JSONEq(t, `{"epoux":"Paul Ngono","epouse":"Claire Mbarga","dateMariage":"2024-06-15"}`, *logs[0].NewValues)
}

func TestMariageCreateSuperAdminNeedsMairie(t *testing.T) {
	f := newFixture(t)
	svc := newMariageService(f)

	_, err := svc.Create(context.Background(), f.super, f.mariageInput(nil))
	assert.ErrorIs(t, err, model.ErrMairieRequise)

	m, err := svc.Create(context.Background(), f.super, f.mariageInput(&f.other.ID))
	require.NoError(t, err)
	assert.Equal(t, f.other.ID, m.MairieID)
}

func TestMariageCreateValidation(t *testing.T) {
	f := newFixture(t)
	svc := newMariageService(f)

	in := f.mariageInput(nil)
	short := "N"
	in.Epoux.Nom = &short
	in.Epouse.LieuNaissance = nil
	in.DateMariage = nil

	_, err := svc.Create(context.Background(), f.agent, in)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "epoux.nom")
	assert.Contains(t, ve.Fields, "epouse.lieuNaissance")
	assert.Contains(t, ve.Fields, "dateMariage")
}

func TestMariageForeignTenantIsNotFound(t *testing.T) {
	f := newFixture(t)
	svc := newMariageService(f)
	m, err := svc.Create(context.Background(), f.agent, f.mariageInput(nil))
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), f.outside, m.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Update(context.Background(), f.outside, m.ID, MariageInput{})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	page, err := svc.List(context.Background(), f.outside, repository.MariageFilter{MairieID: &f.mairie.ID})
	require.NoError(t, err)
	assert.Zero(t, page.Meta.Total)
}

func TestMariageStatusReservedToSuperAdmin(t *testing.T) {
	f := newFixture(t)
	svc := newMariageService(f)
	m, err := svc.Create(context.Background(), f.agent, f.mariageInput(nil))
	require.NoError(t, err)

	annule := model.MariageAnnule
	_, err = svc.Update(context.Background(), f.admin, m.ID, MariageInput{MariagePatch: model.MariagePatch{Statut: &annule}})
	assert.ErrorIs(t, err, model.ErrStatutReserve)

	bogus := model.StatutMariage("archive")
	_, err = svc.Update(context.Background(), f.super, m.ID, MariageInput{MariagePatch: model.MariagePatch{Statut: &bogus}})
	assert.ErrorIs(t, err, model.ErrStatutInvalide)

	got, err := svc.Update(context.Background(), f.super, m.ID, MariageInput{MariagePatch: model.MariagePatch{Statut: &annule}})
	require.NoError(t, err)
	assert.Equal(t, model.MariageAnnule, got.Statut)
}

func TestMariageValidatedIsLocked(t *testing.T) {
	f := newFixture(t)
	svc := newMariageService(f)
	m := f.validMariage(t, svc)
	assert.Equal(t, model.MariageValide, m.Statut)

	lieu := "Salle des fêtes"
	_, err := svc.Update(context.Background(), f.agent, m.ID, MariageInput{MariagePatch: model.MariagePatch{LieuMariage: &lieu}})
	assert.ErrorIs(t, err, model.ErrMariageVerrouille)

	got, err := svc.Update(context.Background(), f.super, m.ID, MariageInput{MariagePatch: model.MariagePatch{LieuMariage: &lieu}})
	require.NoError(t, err)
	assert.Equal(t, lieu, *got.LieuMariage)

	_, err = svc.Validate(context.Background(), f.admin, m.ID)
	assert.ErrorIs(t, err, model.ErrMariageDejaValide)
}

func TestMariageSuperAdminMovesMairie(t *testing.T) {
	f := newFixture(t)
	svc := newMariageService(f)
	ctx := context.Background()

	draft, err := svc.Create(ctx, f.agent, f.mariageInput(nil))
	require.NoError(t, err)

	unknown := uint64(9999)
	_, err = svc.Update(ctx, f.super, draft.ID, MariageInput{MairieID: &unknown})
	assert.ErrorIs(t, err, model.ErrMairieInconnue)

	got, err := svc.Update(ctx, f.super, draft.ID, MariageInput{MairieID: &f.other.ID})
	require.NoError(t, err)
	assert.Equal(t, f.other.ID, got.MairieID)

	// an agent cannot move a record, the field is ignored
	_, err = svc.Update(ctx, f.outside, draft.ID, MariageInput{MairieID: &f.mairie.ID})
	require.NoError(t, err)
	got, err = svc.Get(ctx, f.super, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, f.other.ID, got.MairieID)
}

func TestMariageWithActeCannotMove(t *testing.T) {
	f := newFixture(t)
	svc := newMariageService(f)
	actes := NewActeService(f.store.Actes(), f.audit)
	ctx := context.Background()

	m := f.validMariage(t, svc)
	a, err := actes.Generate(ctx, f.agent, m.ID)
	require.NoError(t, err)

	_, err = svc.Update(ctx, f.super, m.ID, MariageInput{MairieID: &f.other.ID})
	assert.ErrorIs(t, err, model.ErrMariageDeplacementActe)

	got, err := svc.Get(ctx, f.super, m.ID)
	require.NoError(t, err)
	assert.Equal(t, f.mairie.ID, got.MairieID)
	acte, err := actes.Get(ctx, f.admin, a.ID)
	require.NoError(t, err)
	assert.Equal(t, got.MairieID, acte.MairieID)

	lieu := "Salle des fêtes"
	_, err = svc.Update(ctx, f.super, m.ID, MariageInput{MairieID: &f.mairie.ID, MariagePatch: model.MariagePatch{LieuMariage: &lieu}})
	require.NoError(t, err)
}

func TestMariageDelete(t *testing.T) {
	f := newFixture(t)
	svc := newMariageService(f)
	actes := NewActeService(f.store.Actes(), f.audit)

	draft, err := svc.Create(context.Background(), f.agent, f.mariageInput(nil))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), f.admin, draft.ID))
	_, err = svc.Get(context.Background(), f.admin, draft.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	valid := f.validMariage(t, svc)
	assert.ErrorIs(t, svc.Delete(context.Background(), f.admin, valid.ID), model.ErrMariageSuppression)

	_, err = actes.Generate(context.Background(), f.agent, valid.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Delete(context.Background(), f.super, valid.ID), model.ErrMariageAvecActe)
}
