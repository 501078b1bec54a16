package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/civil-registry/internal/authz"
	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/repository"
)

func TestActeGenerate(t *testing.T) {
	f := newFixture(t)
	mariages := newMariageService(f)
	svc := NewActeService(f.store.Actes(), f.audit, WithActeClock(fixedClock("2024-06-20T10:00:00Z")))
	m := f.validMariage(t, mariages)

	a, err := svc.Generate(context.Background(), f.agent, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "DLA1-2024-0001", a.NumeroActe)
	assert.Equal(t, 2024, a.Annee)
	assert.Equal(t, 1, a.NumeroOrdre)
	assert.Equal(t, model.ActeBrouillon, a.Statut)
	require.NotNil(t, a.Contenu)
	assert.Contains(t, *a.Contenu, "RÉPUBLIQUE DU CAMEROUN")
	assert.Contains(t, *a.Contenu, "N° DLA1-2024-0001")
	assert.Contains(t, *a.Contenu, "15 juin 2024, à 10h00")
	assert.Contains(t, *a.Contenu, "Nationalité : Camerounaise")

	again, err := svc.Generate(context.Background(), f.agent, m.ID)
	assert.ErrorIs(t, err, model.ErrActeExiste)
	require.NotNil(t, again)
	assert.Equal(t, a.ID, again.ID)
}

func TestActeGenerateRequiresValidatedMariage(t *testing.T) {
	f := newFixture(t)
	mariages := newMariageService(f)
	svc := NewActeService(f.store.Actes(), f.audit)
	draft, err := mariages.Create(context.Background(), f.agent, f.mariageInput(nil))
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), f.agent, draft.ID)
	assert.ErrorIs(t, err, model.ErrMariageNonValide)

	mairie, err := f.store.Mairies().GetByID(context.Background(), f.mairie.ID)
	require.NoError(t, err)
	assert.Zero(t, mairie.DernierNumeroActe)
}

func TestActeGenerateForeignTenant(t *testing.T) {
	f := newFixture(t)
	svc := NewActeService(f.store.Actes(), f.audit)
	m := f.validMariage(t, newMariageService(f))

	_, err := svc.Generate(context.Background(), f.outside, m.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Generate(context.Background(), f.agent, 9999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestActeGenerateConcurrent(t *testing.T) {
	f := newFixture(t)
	mariages := newMariageService(f)
	svc := NewActeService(f.store.Actes(), f.audit, WithActeClock(fixedClock("2024-06-20T10:00:00Z")))

	const n = 20
	ids := make([]uint64, n)
	for i := range ids {
		ids[i] = f.validMariage(t, mariages).ID
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = map[int]bool{}
	)
	for _, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := svc.Generate(context.Background(), f.agent, id)
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			assert.False(t, seen[a.NumeroOrdre], "ordinal %d issued twice", a.NumeroOrdre)
			seen[a.NumeroOrdre] = true
		}()
	}
	wg.Wait()

	for i := 1; i <= n; i++ {
		assert.True(t, seen[i], "ordinal %d missing", i)
	}
}

func TestActeSequenceYearlyReset(t *testing.T) {
	f := newFixture(t)
	mariages := newMariageService(f)
	first := f.validMariage(t, mariages)
	second := f.validMariage(t, mariages)

	_, err := NewActeService(f.store.Actes(), f.audit, WithActeClock(fixedClock("2024-12-31T10:00:00Z"))).
		Generate(context.Background(), f.agent, first.ID)
	require.NoError(t, err)

	a, err := NewActeService(f.store.Actes(), f.audit, WithActeClock(fixedClock("2025-01-02T10:00:00Z")), WithYearlyReset(true)).
		Generate(context.Background(), f.agent, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "DLA1-2025-0001", a.NumeroActe)
}

func TestActeSequenceContinuousByDefault(t *testing.T) {
	f := newFixture(t)
	mariages := newMariageService(f)
	first := f.validMariage(t, mariages)
	second := f.validMariage(t, mariages)

	_, err := NewActeService(f.store.Actes(), f.audit, WithActeClock(fixedClock("2024-12-31T10:00:00Z"))).
		Generate(context.Background(), f.agent, first.ID)
	require.NoError(t, err)

	a, err := NewActeService(f.store.Actes(), f.audit, WithActeClock(fixedClock("2025-01-02T10:00:00Z"))).
		Generate(context.Background(), f.agent, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "DLA1-2025-0002", a.NumeroActe)
}

func TestActeLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewActeService(f.store.Actes(), f.audit)
	a, err := svc.Generate(ctx, f.agent, f.validMariage(t, newMariageService(f)).ID)
	require.NoError(t, err)

	_, err = svc.Print(ctx, f.agent, a.ID)
	assert.ErrorIs(t, err, model.ErrActeNonValide)

	a, err = svc.Validate(ctx, f.admin, a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ActeValide, a.Statut)
	require.NotNil(t, a.ValidePar)
	assert.Equal(t, f.admin.UserID, *a.ValidePar)

	_, err = svc.Validate(ctx, f.admin, a.ID)
	assert.ErrorIs(t, err, model.ErrActeDejaValide)

	a, err = svc.Print(ctx, f.agent, a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ActeImprime, a.Statut)

	_, err = svc.Cancel(ctx, f.admin, a.ID)
	assert.ErrorIs(t, err, ErrAnnulationReservee)
	assert.ErrorIs(t, err, authz.ErrForbidden)

	a, err = svc.Cancel(ctx, f.super, a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ActeAnnule, a.Statut)

	_, err = svc.Cancel(ctx, f.super, a.ID)
	assert.ErrorIs(t, err, model.ErrActeAnnule)

	logs, err := f.audit.Latest(ctx, &f.mairie.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, model.ActionCancel, logs[0].Action)
}
