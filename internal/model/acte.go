package model

import (
	"fmt"
	"time"
)

// StatutActe is the lifecycle state of a certificate.
type StatutActe string

const (
	ActeBrouillon StatutActe = "brouillon"
	ActeValide    StatutActe = "valide"
	ActeImprime   StatutActe = "imprime"
	ActeAnnule    StatutActe = "annule"
)

// Valid reports whether s is a known certificate status.
func (s StatutActe) Valid() bool {
	switch s {
	case ActeBrouillon, ActeValide, ActeImprime, ActeAnnule:
		return true
	}
	return false
}

// MariageRef is the marriage summary attached to certificate rows.
type MariageRef struct {
	ID          uint64 `json:"id"`
	Epoux       string `json:"epoux"`
	Epouse      string `json:"epouse"`
	DateMariage Date   `json:"dateMariage"`
}

// ActeMariage is the certificate derived from a validated marriage.
// (MairieID, Annee, NumeroOrdre) is unique.
type ActeMariage struct {
	ID             uint64     `json:"id"`
	MariageID      uint64     `json:"mariageId"`
	MairieID       uint64     `json:"mairieId"`
	NumeroActe     string     `json:"numeroActe"`
	Annee          int        `json:"annee"`
	NumeroOrdre    int        `json:"numeroOrdre"`
	Contenu        *string    `json:"contenu"`
	FichierPdf     *string    `json:"fichierPdf"`
	Statut         StatutActe `json:"statut"`
	DateValidation *time.Time `json:"dateValidation"`
	ValidePar      *uint64    `json:"validePar"`
	CreatedBy      *uint64    `json:"createdBy"`
	UpdatedBy      *uint64    `json:"updatedBy"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      *time.Time `json:"updatedAt"`

	Mariage *MariageRef `json:"mariage,omitempty"`
	Mairie  *MairieRef  `json:"mairie,omitempty"`
}

// FormatNumeroActe renders "{prefix}-{year}-{ordinal:04d}".
func FormatNumeroActe(prefix string, annee, ordinal int) string {
	if prefix == "" {
		prefix = DefaultActePrefix
	}
	return fmt.Sprintf("%s-%d-%04d", prefix, annee, ordinal)
}

// NextOrdinal returns the ordinal following last. With resetYearly the
// sequence restarts at 1 whenever year differs from the year the last
// ordinal was issued in; otherwise it keeps growing across years.
func NextOrdinal(last int, lastYear *int, year int, resetYearly bool) int {
	if resetYearly && (lastYear == nil || *lastYear != year) {
		return 1
	}
	return last + 1
}

// CanValidate checks brouillon -> valide.
func (a *ActeMariage) CanValidate() error {
	switch a.Statut {
	case ActeValide, ActeImprime:
		return ErrActeDejaValide
	case ActeAnnule:
		return ErrActeAnnule
	}
	return nil
}

// ApplyValidate stamps the validation time and actor.
func (a *ActeMariage) ApplyValidate(by uint64, now time.Time) {
	a.Statut = ActeValide
	a.DateValidation = &now
	a.ValidePar = &by
	a.UpdatedBy = &by
	a.UpdatedAt = &now
}

// CanPrint checks valide -> imprime.
func (a *ActeMariage) CanPrint() error {
	switch a.Statut {
	case ActeValide:
		return nil
	case ActeAnnule:
		return ErrActeAnnule
	}
	return ErrActeNonValide
}

func (a *ActeMariage) ApplyPrint(by uint64, now time.Time) {
	a.Statut = ActeImprime
	a.UpdatedBy = &by
	a.UpdatedAt = &now
}

// CanCancel accepts every state except annule itself.
func (a *ActeMariage) CanCancel() error {
	if a.Statut == ActeAnnule {
		return ErrActeAnnule
	}
	return nil
}

func (a *ActeMariage) ApplyCancel(by uint64, now time.Time) {
	a.Statut = ActeAnnule
	a.UpdatedBy = &by
	a.UpdatedAt = &now
}
