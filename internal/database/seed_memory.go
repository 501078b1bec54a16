package database

import (
	"context"
	"fmt"

	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/repository/memory"
	"github.com/iliyamo/civil-registry/internal/utils"
)

// SeedMemory loads the same reference geography and demo accounts as Seed
// into an in-process store.
func SeedMemory(ctx context.Context, s *memory.Store, bcryptCost int) error {
	hash, err := utils.HashPassword(SeedPassword, bcryptCost)
	if err != nil {
		return err
	}
	str := func(v string) *string { return &v }

	villeIDs := make([]uint64, len(seedVilles))
	for i, v := range seedVilles {
		row := &model.Ville{Nom: v.nom, Code: str(v.code), Region: str(v.region), IsActive: true}
		if err := s.Villes().Create(ctx, row); err != nil {
			return fmt.Errorf("seed ville %s: %w", v.code, err)
		}
		villeIDs[i] = row.ID
	}

	arrIDs := make([]uint64, len(seedArrondissements))
	for i, a := range seedArrondissements {
		row := &model.Arrondissement{Nom: a.nom, Code: str(a.code), VilleID: villeIDs[a.ville], IsActive: true}
		if err := s.Arrondissements().Create(ctx, row); err != nil {
			return fmt.Errorf("seed arrondissement %s: %w", a.code, err)
		}
		arrIDs[i] = row.ID
	}

	mairieIDs := make([]uint64, len(seedMairies))
	for i, m := range seedMairies {
		arr := arrIDs[m.arrondissement]
		row := &model.Mairie{
			Nom: m.nom, Code: str(m.code), ArrondissementID: &arr,
			Adresse: str(m.adresse), Telephone: str(m.telephone), Email: str(m.email),
			Langue: "fr", PrefixeActe: str(m.prefixe), IsActive: true,
		}
		if err := s.Mairies().Create(ctx, row); err != nil {
			return fmt.Errorf("seed mairie %s: %w", m.code, err)
		}
		mairieIDs[i] = row.ID
	}

	for _, u := range seedUsers {
		row := &model.User{FullName: u.fullName, Email: u.email, PasswordHash: hash, Role: model.Role(u.role), IsActive: true}
		if u.mairie >= 0 {
			id := mairieIDs[u.mairie]
			row.MairieID = &id
		}
		if err := s.Users().Create(ctx, row); err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}
	}
	return nil
}
