package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/repository"
)

func newGeographyService(f *fixture) *GeographyService {
	return NewGeographyService(f.store.Villes(), f.store.Arrondissements(), f.store.Mairies(), f.audit)
}

func strp(s string) *string { return &s }

func TestVilleLifecycle(t *testing.T) {
	f := newFixture(t)
	svc := newGeographyService(f)
	ctx := context.Background()

	v, err := svc.CreateVille(ctx, f.super, VilleInput{Nom: strp(" Bafoussam "), Code: strp("bfs"), Region: strp("Ouest")})
	require.NoError(t, err)
	assert.Equal(t, "Bafoussam", v.Nom)
	assert.Equal(t, "BFS", *v.Code)
	assert.True(t, v.IsActive)

	_, err = svc.CreateVille(ctx, f.super, VilleInput{Nom: strp("Autre"), Code: strp("BFS")})
	assert.ErrorIs(t, err, model.ErrVilleCodeExiste)

	a, err := svc.CreateArrondissement(ctx, f.super, ArrondissementInput{Nom: strp("Bafoussam 1er"), VilleID: &v.ID})
	require.NoError(t, err)
	require.NotNil(t, a.Ville)
	assert.Equal(t, "Bafoussam", a.Ville.Nom)

	assert.ErrorIs(t, svc.DeleteVille(ctx, f.super, v.ID), model.ErrVilleNonVide)
	require.NoError(t, svc.DeleteArrondissement(ctx, f.super, a.ID))
	require.NoError(t, svc.DeleteVille(ctx, f.super, v.ID))
}

func TestArrondissementUnknownVille(t *testing.T) {
	f := newFixture(t)
	svc := newGeographyService(f)
	missing := uint64(404)

	_, err := svc.CreateArrondissement(context.Background(), f.super, ArrondissementInput{Nom: strp("Nulle part"), VilleID: &missing})
	assert.ErrorIs(t, err, model.ErrVilleInconnue)
}

func TestAllVillesOnlyActive(t *testing.T) {
	f := newFixture(t)
	svc := newGeographyService(f)
	ctx := context.Background()
	off := false
	_, err := svc.CreateVille(ctx, f.super, VilleInput{Nom: strp("Fermée"), IsActive: &off})
	require.NoError(t, err)

	all, err := svc.AllVilles(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Douala", all[0].Nom)
}

func TestMairieAdminRestrictions(t *testing.T) {
	f := newFixture(t)
	svc := newGeographyService(f)
	ctx := context.Background()

	m, err := svc.UpdateMairie(ctx, f.admin, f.mairie.ID, MairieInput{
		Nom:       strp("Nom Pirate"),
		Telephone: strp("+237 233 42 00 00"),
		IsActive:  new(bool),
	})
	require.NoError(t, err)
	assert.Equal(t, "Mairie de Douala 1er", m.Nom)
	assert.Equal(t, "+237 233 42 00 00", *m.Telephone)
	assert.True(t, m.IsActive)

	_, err = svc.UpdateMairie(ctx, f.admin, f.other.ID, MairieInput{Telephone: strp("0")})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.GetMairie(ctx, f.agent, f.other.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	page, err := svc.ListMairies(ctx, f.agent, repository.MairieFilter{})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, f.mairie.ID, page.Data[0].ID)
}

func TestMairieCreateAndDelete(t *testing.T) {
	f := newFixture(t)
	svc := newGeographyService(f)
	ctx := context.Background()

	_, err := svc.CreateMairie(ctx, f.super, MairieInput{Nom: strp("Doublon"), Code: strp("dla1")})
	assert.ErrorIs(t, err, model.ErrMairieCodeExiste)

	m, err := svc.CreateMairie(ctx, f.super, MairieInput{Nom: strp("Mairie de Douala 2e"), Code: strp("DLA2"), PrefixeActe: strp("dla2")})
	require.NoError(t, err)
	assert.Equal(t, "DLA2", *m.PrefixeActe)
	assert.Equal(t, "fr", m.Langue)
	assert.Zero(t, m.DernierNumeroActe)

	assert.ErrorIs(t, svc.DeleteMairie(ctx, f.super, f.mairie.ID), model.ErrMairieAvecUtilisateurs)
	require.NoError(t, svc.DeleteMairie(ctx, f.super, m.ID))

	stats, err := svc.MairieStats(ctx, f.agent, f.mairie.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalUsers)
}
