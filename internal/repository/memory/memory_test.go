package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/repository"
)

func seedMairie(t *testing.T, s *Store, prefix string) *model.Mairie {
	t.Helper()
	ctx := context.Background()
	v := &model.Ville{Nom: "Douala", IsActive: true}
	require.NoError(t, s.Villes().Create(ctx, v))
	a := &model.Arrondissement{Nom: "Douala 1er", VilleID: v.ID, IsActive: true}
	require.NoError(t, s.Arrondissements().Create(ctx, a))
	m := &model.Mairie{Nom: "Mairie de " + prefix, ArrondissementID: &a.ID, PrefixeActe: &prefix, IsActive: true, Langue: "fr"}
	require.NoError(t, s.Mairies().Create(ctx, m))
	return m
}

func seedMariage(t *testing.T, s *Store, mairieID uint64, statut model.StatutMariage) *model.Mariage {
	t.Helper()
	m := &model.Mariage{
		MairieID: mairieID,
		Epoux:    model.Conjoint{Nom: "Ngono", Prenom: "Paul"},
		Epouse:   model.Conjoint{Nom: "Mbarga", Prenom: "Claire"},
		Statut:   statut,
	}
	require.NoError(t, s.Mariages().Create(context.Background(), m))
	return m
}

func issueReq(mariageID uint64, year int) repository.IssueRequest {
	return repository.IssueRequest{
		MariageID: mariageID,
		Year:      year,
		Check: func(m *model.Mariage, existing *model.ActeMariage) error {
			if existing != nil {
				return model.ErrActeExiste
			}
			if m.Statut != model.MariageValide {
				return model.ErrMariageNonValide
			}
			return nil
		},
		Build: func(m *model.Mariage, mairie *model.Mairie, ordinal int) *model.ActeMariage {
			return &model.ActeMariage{
				MariageID: m.ID, MairieID: m.MairieID, Annee: year, NumeroOrdre: ordinal,
				NumeroActe: model.FormatNumeroActe(mairie.ActePrefix(), year, ordinal),
				Statut:     model.ActeBrouillon,
			}
		},
	}
}

func TestIssueConcurrentDistinctOrdinals(t *testing.T) {
	s := New()
	mairie := seedMairie(t, s, "DLA1")
	const n = 25
	ids := make([]uint64, n)
	for i := range ids {
		ids[i] = seedMariage(t, s, mairie.ID, model.MariageValide).ID
	}

	var wg sync.WaitGroup
	numbers := make(chan string, n)
	for _, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := s.Actes().Issue(context.Background(), issueReq(id, 2024))
			if assert.NoError(t, err) {
				numbers <- a.NumeroActe
			}
		}()
	}
	wg.Wait()
	close(numbers)

	seen := map[string]bool{}
	for num := range numbers {
		assert.False(t, seen[num], "duplicate %s", num)
		seen[num] = true
	}
	assert.Len(t, seen, n)
	assert.True(t, seen["DLA1-2024-0001"])
	assert.True(t, seen["DLA1-2024-0025"])

	got, err := s.Mairies().GetByID(context.Background(), mairie.ID)
	require.NoError(t, err)
	assert.Equal(t, n, got.DernierNumeroActe)
}

func TestIssueReturnsExisting(t *testing.T) {
	s := New()
	mairie := seedMairie(t, s, "YDE1")
	mg := seedMariage(t, s, mairie.ID, model.MariageValide)

	first, err := s.Actes().Issue(context.Background(), issueReq(mg.ID, 2024))
	require.NoError(t, err)

	again, err := s.Actes().Issue(context.Background(), issueReq(mg.ID, 2024))
	assert.ErrorIs(t, err, model.ErrActeExiste)
	require.NotNil(t, again)
	assert.Equal(t, first.ID, again.ID)

	got, _ := s.Mairies().GetByID(context.Background(), mairie.ID)
	assert.Equal(t, 1, got.DernierNumeroActe)
}

func TestIssueDraftRefused(t *testing.T) {
	s := New()
	mairie := seedMairie(t, s, "BFS1")
	mg := seedMariage(t, s, mairie.ID, model.MariageBrouillon)

	_, err := s.Actes().Issue(context.Background(), issueReq(mg.ID, 2024))
	assert.ErrorIs(t, err, model.ErrMariageNonValide)

	_, total, err := s.Actes().List(context.Background(), repository.ActeFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestDeleteRefusedWithDependents(t *testing.T) {
	s := New()
	ctx := context.Background()
	mairie := seedMairie(t, s, "DLA2")
	seedMariage(t, s, mairie.ID, model.MariageBrouillon)

	err := s.Mairies().Delete(ctx, mairie.ID)
	var de *repository.DependentsError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "mariages", de.Table)

	err = s.Arrondissements().Delete(ctx, *mairie.ArrondissementID)
	assert.ErrorIs(t, err, repository.ErrHasDependents)
}

func TestVilleCodeUnique(t *testing.T) {
	s := New()
	ctx := context.Background()
	code := "DLA"
	require.NoError(t, s.Villes().Create(ctx, &model.Ville{Nom: "Douala", Code: &code}))
	assert.ErrorIs(t, s.Villes().Create(ctx, &model.Ville{Nom: "Autre", Code: &code}), repository.ErrDuplicate)
}

func TestMariageListPaging(t *testing.T) {
	s := New()
	mairie := seedMairie(t, s, "DLA1")
	other := seedMairie(t, s, "YDE1")
	for i := 0; i < 5; i++ {
		seedMariage(t, s, mairie.ID, model.MariageBrouillon)
	}
	seedMariage(t, s, other.ID, model.MariageBrouillon)

	f := repository.MariageFilter{ListQuery: repository.ListQuery{Page: 2, Limit: 2}, MairieID: &mairie.ID}
	items, total, err := s.Mariages().List(context.Background(), f)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, items, 2)
	for _, m := range items {
		assert.Equal(t, mairie.ID, m.MairieID)
		require.NotNil(t, m.Mairie)
	}
}

func TestTokenRevocation(t *testing.T) {
	s := New()
	ctx := context.Background()
	tokens := s.Tokens()
	exp := s.now().Add(time.Hour)
	require.NoError(t, tokens.StoreRefresh(ctx, 7, "h1", exp))
	uid, err := tokens.ValidateRefresh(ctx, "h1")
	require.NoError(t, err)
	assert.EqualValues(t, 7, uid)

	require.NoError(t, tokens.RevokeAllForUser(ctx, 7))
	_, err = tokens.ValidateRefresh(ctx, "h1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, tokens.RevokeAccess(ctx, "jti-1", 7, exp))
	revoked, err := tokens.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}
