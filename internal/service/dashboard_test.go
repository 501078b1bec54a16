package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/civil-registry/internal/model"
)

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestGroupByPeriode(t *testing.T) {
	times := []time.Time{at("2024-01-02"), at("2024-01-03"), at("2024-01-03"), at("2024-03-11")}

	assert.Equal(t, []StatPoint{
		{Label: "2024-01-02", Count: 1},
		{Label: "2024-01-03", Count: 2},
		{Label: "2024-03-11", Count: 1},
	}, GroupByPeriode(times, PeriodeJour))

	assert.Equal(t, []StatPoint{
		{Label: "Semaine 1", Count: 3},
		{Label: "Semaine 11", Count: 1},
	}, GroupByPeriode(times, PeriodeSemaine))

	assert.Equal(t, []StatPoint{
		{Label: "janvier", Count: 3},
		{Label: "mars", Count: 1},
	}, GroupByPeriode(times, PeriodeMois))

	assert.Equal(t, []StatPoint{{Label: "2024", Count: 4}}, GroupByPeriode(times, PeriodeAnnee))
	assert.Equal(t, GroupByPeriode(times, PeriodeMois), GroupByPeriode(times, "trimestre"))
	assert.Empty(t, GroupByPeriode(nil, PeriodeJour))
}

func newDashboardService(f *fixture) *DashboardService {
	svc := NewDashboardService(f.store.Dashboard(), f.store.Mariages(), f.store.Mairies(), f.audit)
	svc.now = fixedClock("2024-06-20T12:00:00Z")
	return svc
}

func TestDashboardPerRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mariages := newMariageService(f)
	f.validMariage(t, mariages)
	_, err := mariages.Create(ctx, f.agent, f.mariageInput(nil))
	require.NoError(t, err)
	_, err = mariages.Create(ctx, f.outside, f.mariageInput(nil))
	require.NoError(t, err)
	svc := newDashboardService(f)

	d, err := svc.Get(ctx, f.super)
	require.NoError(t, err)
	assert.Equal(t, model.RoleSuperAdmin, d.Role)
	assert.EqualValues(t, 2, d.Statistiques["totalMairies"])
	assert.EqualValues(t, 3, d.Statistiques["totalMariages"])
	assert.EqualValues(t, 3, d.Statistiques["mariagesMois"])
	assert.Len(t, d.DerniersMariages, 3)
	require.NotEmpty(t, d.StatsMairies)
	assert.Equal(t, f.mairie.ID, d.StatsMairies[0].ID)
	assert.NotEmpty(t, d.ActivitesRecentes)

	d, err = svc.Get(ctx, f.admin)
	require.NoError(t, err)
	require.NotNil(t, d.Mairie)
	assert.Equal(t, f.mairie.ID, d.Mairie.ID)
	assert.EqualValues(t, 2, d.Statistiques["totalMariages"])
	assert.EqualValues(t, 1, d.Statistiques["mariagesBrouillon"])
	assert.EqualValues(t, 1, d.Statistiques["mariagesValides"])
	for _, e := range d.ActivitesRecentes {
		assert.Equal(t, f.mairie.ID, *e.MairieID)
	}

	d, err = svc.Get(ctx, f.agent)
	require.NoError(t, err)
	assert.EqualValues(t, 2, d.Statistiques["mesMariages"])
	assert.Len(t, d.MesDerniersMariages, 2)
	assert.Len(t, d.MariagesEnAttente, 1)
	assert.Len(t, d.MariagesRecents, 2)
	assert.Empty(t, d.StatsMairies)
}

func TestDashboardStatsScoped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mariages := newMariageService(f)
	_, err := mariages.Create(ctx, f.agent, f.mariageInput(nil))
	require.NoError(t, err)
	_, err = mariages.Create(ctx, f.outside, f.mariageInput(nil))
	require.NoError(t, err)
	svc := newDashboardService(f)

	points, err := svc.Stats(ctx, f.agent, PeriodeMois, 0)
	require.NoError(t, err)
	assert.Equal(t, []StatPoint{{Label: "juin", Count: 1}}, points)

	points, err = svc.Stats(ctx, f.super, PeriodeAnnee, 2024)
	require.NoError(t, err)
	assert.Equal(t, []StatPoint{{Label: "2024", Count: 2}}, points)

	points, err = svc.Stats(ctx, f.super, PeriodeAnnee, 2023)
	require.NoError(t, err)
	assert.Empty(t, points)
}
