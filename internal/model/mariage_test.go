package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMariageValidate(t *testing.T) {
	m := &Mariage{Statut: MariageBrouillon}
	require.NoError(t, m.CanValidate())

	now := time.Now().UTC()
	m.ApplyValidate(3, now)
	assert.Equal(t, MariageValide, m.Statut)
	assert.Equal(t, uint64(3), *m.UpdatedBy)

	assert.ErrorIs(t, m.CanValidate(), ErrMariageDejaValide)
	assert.ErrorIs(t, (&Mariage{Statut: MariageAnnule}).CanValidate(), ErrMariageAnnule)
}

func TestMariageCanEdit(t *testing.T) {
	draft := &Mariage{Statut: MariageBrouillon}
	valid := &Mariage{Statut: MariageValide}

	assert.NoError(t, draft.CanEdit(RoleAgent))
	assert.NoError(t, draft.CanEdit(RoleAdminMairie))
	assert.ErrorIs(t, valid.CanEdit(RoleAgent), ErrMariageVerrouille)
	assert.ErrorIs(t, valid.CanEdit(RoleAdminMairie), ErrMariageVerrouille)
	assert.NoError(t, valid.CanEdit(RoleSuperAdmin))
}

func TestMariageCanDelete(t *testing.T) {
	draft := &Mariage{Statut: MariageBrouillon}
	valid := &Mariage{Statut: MariageValide}

	assert.NoError(t, draft.CanDelete(RoleAdminMairie, false))
	assert.ErrorIs(t, draft.CanDelete(RoleSuperAdmin, true), ErrMariageAvecActe)
	assert.ErrorIs(t, valid.CanDelete(RoleAdminMairie, false), ErrMariageSuppression)
	assert.NoError(t, valid.CanDelete(RoleSuperAdmin, false))
}

func TestMariagePatchApply(t *testing.T) {
	lieu := "Douala"
	m := &Mariage{
		Epoux:             Conjoint{Nom: "Ngono", Prenom: "Paul"},
		Epouse:            Conjoint{Nom: "Mballa", Prenom: "Claire"},
		LieuMariage:       &lieu,
		RegimeMatrimonial: DefaultRegime,
	}
	nom := "Essomba"
	empty := ""
	regime := "séparation de biens"
	p := MariagePatch{
		Epouse:            &ConjointPatch{Nom: &nom},
		LieuMariage:       &empty,
		RegimeMatrimonial: &regime,
	}
	p.Apply(m)

	assert.Equal(t, "Claire Essomba", m.Epouse.NomComplet())
	assert.Equal(t, "Paul Ngono", m.Epoux.NomComplet())
	assert.Nil(t, m.LieuMariage)
	assert.Equal(t, regime, m.RegimeMatrimonial)
}

func TestDateJSON(t *testing.T) {
	var body struct {
		D Date `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"d":"1990-05-17"}`), &body))
	assert.Equal(t, "1990-05-17", body.D.String())

	require.NoError(t, json.Unmarshal([]byte(`{"d":"1990-05-17T12:30:00Z"}`), &body))
	assert.Equal(t, "1990-05-17", body.D.String())

	assert.Error(t, json.Unmarshal([]byte(`{"d":"17/05/1990"}`), &body))
}
