package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumeroActe(t *testing.T) {
	assert.Equal(t, "DLA1-2024-0004", FormatNumeroActe("DLA1", 2024, 4))
	assert.Equal(t, "ACT-2025-0001", FormatNumeroActe("", 2025, 1))
	assert.Equal(t, "YDE1-2024-12345", FormatNumeroActe("YDE1", 2024, 12345))
}

func TestMairieActePrefix(t *testing.T) {
	empty := ""
	prefix := "BFS1"
	assert.Equal(t, DefaultActePrefix, (&Mairie{}).ActePrefix())
	assert.Equal(t, DefaultActePrefix, (&Mairie{PrefixeActe: &empty}).ActePrefix())
	assert.Equal(t, "BFS1", (&Mairie{PrefixeActe: &prefix}).ActePrefix())
}

func TestNextOrdinal(t *testing.T) {
	y2023, y2024 := 2023, 2024

	t.Run("continuous sequence ignores the year", func(t *testing.T) {
		assert.Equal(t, 4, NextOrdinal(3, &y2023, 2024, false))
		assert.Equal(t, 1, NextOrdinal(0, nil, 2024, false))
	})

	t.Run("yearly reset restarts on a new year", func(t *testing.T) {
		assert.Equal(t, 1, NextOrdinal(57, &y2023, 2024, true))
		assert.Equal(t, 58, NextOrdinal(57, &y2024, 2024, true))
		assert.Equal(t, 1, NextOrdinal(57, nil, 2024, true))
	})
}

func TestActeTransitions(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("brouillon validates then prints", func(t *testing.T) {
		a := &ActeMariage{Statut: ActeBrouillon}
		require.NoError(t, a.CanValidate())
		a.ApplyValidate(7, now)
		assert.Equal(t, ActeValide, a.Statut)
		require.NotNil(t, a.ValidePar)
		assert.Equal(t, uint64(7), *a.ValidePar)
		assert.Equal(t, now, *a.DateValidation)

		require.NoError(t, a.CanPrint())
		a.ApplyPrint(8, now)
		assert.Equal(t, ActeImprime, a.Statut)
		assert.Equal(t, uint64(8), *a.UpdatedBy)
	})

	t.Run("validating twice is refused", func(t *testing.T) {
		assert.ErrorIs(t, (&ActeMariage{Statut: ActeValide}).CanValidate(), ErrActeDejaValide)
		assert.ErrorIs(t, (&ActeMariage{Statut: ActeImprime}).CanValidate(), ErrActeDejaValide)
		assert.ErrorIs(t, (&ActeMariage{Statut: ActeAnnule}).CanValidate(), ErrActeAnnule)
	})

	t.Run("printing requires valide", func(t *testing.T) {
		assert.ErrorIs(t, (&ActeMariage{Statut: ActeBrouillon}).CanPrint(), ErrActeNonValide)
		assert.ErrorIs(t, (&ActeMariage{Statut: ActeImprime}).CanPrint(), ErrActeNonValide)
		assert.ErrorIs(t, (&ActeMariage{Statut: ActeAnnule}).CanPrint(), ErrActeAnnule)
	})

	t.Run("cancel from any live state", func(t *testing.T) {
		for _, s := range []StatutActe{ActeBrouillon, ActeValide, ActeImprime} {
			a := &ActeMariage{Statut: s}
			require.NoError(t, a.CanCancel(), s)
			a.ApplyCancel(1, now)
			assert.Equal(t, ActeAnnule, a.Statut)
		}
		assert.ErrorIs(t, (&ActeMariage{Statut: ActeAnnule}).CanCancel(), ErrActeAnnule)
	})
}
