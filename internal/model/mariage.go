package model

import (
	"strings"
	"time"
)

// StatutMariage is the lifecycle state of a marriage record.
type StatutMariage string

const (
	MariageBrouillon StatutMariage = "brouillon"
	MariageValide    StatutMariage = "valide"
	MariageAnnule    StatutMariage = "annule"
)

// Valid reports whether s is a known marriage status.
func (s StatutMariage) Valid() bool {
	return s == MariageBrouillon || s == MariageValide || s == MariageAnnule
}

// DefaultRegime is stored when no matrimonial regime is given.
const DefaultRegime = "communauté réduite aux acquêts"

// Conjoint is the civil status block of one spouse.
type Conjoint struct {
	Nom           string  `json:"nom"`
	Prenom        string  `json:"prenom"`
	DateNaissance Date    `json:"dateNaissance"`
	LieuNaissance string  `json:"lieuNaissance"`
	Nationalite   *string `json:"nationalite"`
	Profession    *string `json:"profession"`
	Adresse       *string `json:"adresse"`
	NomPere       *string `json:"nomPere"`
	NomMere       *string `json:"nomMere"`
}

// NomComplet returns "Prenom Nom".
func (c Conjoint) NomComplet() string {
	return strings.TrimSpace(c.Prenom + " " + c.Nom)
}

// MairieRef, UserRef and ActeRef are the joined summaries attached to list rows.
type MairieRef struct {
	ID  uint64 `json:"id"`
	Nom string `json:"nom"`
}

type UserRef struct {
	ID       uint64 `json:"id"`
	FullName string `json:"fullName"`
}

type ActeRef struct {
	ID         uint64     `json:"id"`
	NumeroActe string     `json:"numeroActe"`
	Statut     StatutActe `json:"statut"`
}

// Mariage is the factual record of a union.
type Mariage struct {
	ID                uint64        `json:"id"`
	MairieID          uint64        `json:"mairieId"`
	Epoux             Conjoint      `json:"epoux"`
	Epouse            Conjoint      `json:"epouse"`
	DateMariage       Date          `json:"dateMariage"`
	HeureMariage      *string       `json:"heureMariage"`
	LieuMariage       *string       `json:"lieuMariage"`
	RegimeMatrimonial string        `json:"regimeMatrimonial"`
	Temoin1Nom        *string       `json:"temoin1Nom"`
	Temoin1Prenom     *string       `json:"temoin1Prenom"`
	Temoin2Nom        *string       `json:"temoin2Nom"`
	Temoin2Prenom     *string       `json:"temoin2Prenom"`
	OfficierNom       *string       `json:"officierNom"`
	OfficierFonction  *string       `json:"officierFonction"`
	Statut            StatutMariage `json:"statut"`
	Observations      *string       `json:"observations"`
	CreatedBy         *uint64       `json:"createdBy"`
	UpdatedBy         *uint64       `json:"updatedBy"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         *time.Time    `json:"updatedAt"`

	Mairie   *MairieRef `json:"mairie,omitempty"`
	Acte     *ActeRef   `json:"acte,omitempty"`
	Createur *UserRef   `json:"createur,omitempty"`
}

// CanValidate checks the brouillon -> valide transition.
func (m *Mariage) CanValidate() error {
	switch m.Statut {
	case MariageValide:
		return ErrMariageDejaValide
	case MariageAnnule:
		return ErrMariageAnnule
	}
	return nil
}

// ApplyValidate moves the record to valide and stamps the updater.
func (m *Mariage) ApplyValidate(by uint64, now time.Time) {
	m.Statut = MariageValide
	m.UpdatedBy = &by
	m.UpdatedAt = &now
}

// CanEdit reports whether role may modify the record in its current state.
// Only drafts are editable, except by a super administrator.
func (m *Mariage) CanEdit(role Role) error {
	if role == RoleSuperAdmin || m.Statut == MariageBrouillon {
		return nil
	}
	return ErrMariageVerrouille
}

// CanDelete checks that no certificate exists and that the record is
// still a draft (super administrators may drop any record without acte).
func (m *Mariage) CanDelete(role Role, hasActe bool) error {
	if hasActe {
		return ErrMariageAvecActe
	}
	if role != RoleSuperAdmin && m.Statut != MariageBrouillon {
		return ErrMariageSuppression
	}
	return nil
}

// Snapshot returns the display fields kept in audit entries.
func (m *Mariage) Snapshot() map[string]any {
	return map[string]any{
		"epoux":       m.Epoux.NomComplet(),
		"epouse":      m.Epouse.NomComplet(),
		"dateMariage": m.DateMariage.String(),
		"statut":      m.Statut,
	}
}

// ConjointPatch carries the optional fields of a spouse update.
type ConjointPatch struct {
	Nom           *string `json:"nom"`
	Prenom        *string `json:"prenom"`
	DateNaissance *Date   `json:"dateNaissance"`
	LieuNaissance *string `json:"lieuNaissance"`
	Nationalite   *string `json:"nationalite"`
	Profession    *string `json:"profession"`
	Adresse       *string `json:"adresse"`
	NomPere       *string `json:"nomPere"`
	NomMere       *string `json:"nomMere"`
}

func (p *ConjointPatch) apply(c *Conjoint) {
	if p == nil {
		return
	}
	setStr(&c.Nom, p.Nom)
	setStr(&c.Prenom, p.Prenom)
	if p.DateNaissance != nil {
		c.DateNaissance = *p.DateNaissance
	}
	setStr(&c.LieuNaissance, p.LieuNaissance)
	setOpt(&c.Nationalite, p.Nationalite)
	setOpt(&c.Profession, p.Profession)
	setOpt(&c.Adresse, p.Adresse)
	setOpt(&c.NomPere, p.NomPere)
	setOpt(&c.NomMere, p.NomMere)
}

// MariagePatch is a partial update; nil fields are left untouched.
type MariagePatch struct {
	Epoux             *ConjointPatch `json:"epoux"`
	Epouse            *ConjointPatch `json:"epouse"`
	DateMariage       *Date          `json:"dateMariage"`
	HeureMariage      *string        `json:"heureMariage"`
	LieuMariage       *string        `json:"lieuMariage"`
	RegimeMatrimonial *string        `json:"regimeMatrimonial"`
	Temoin1Nom        *string        `json:"temoin1Nom"`
	Temoin1Prenom     *string        `json:"temoin1Prenom"`
	Temoin2Nom        *string        `json:"temoin2Nom"`
	Temoin2Prenom     *string        `json:"temoin2Prenom"`
	OfficierNom       *string        `json:"officierNom"`
	OfficierFonction  *string        `json:"officierFonction"`
	Observations      *string        `json:"observations"`
	Statut            *StatutMariage `json:"statut"`
}

// Apply merges the patch into m.
func (p *MariagePatch) Apply(m *Mariage) {
	p.Epoux.apply(&m.Epoux)
	p.Epouse.apply(&m.Epouse)
	if p.DateMariage != nil {
		m.DateMariage = *p.DateMariage
	}
	setOpt(&m.HeureMariage, p.HeureMariage)
	setOpt(&m.LieuMariage, p.LieuMariage)
	setStr(&m.RegimeMatrimonial, p.RegimeMatrimonial)
	setOpt(&m.Temoin1Nom, p.Temoin1Nom)
	setOpt(&m.Temoin1Prenom, p.Temoin1Prenom)
	setOpt(&m.Temoin2Nom, p.Temoin2Nom)
	setOpt(&m.Temoin2Prenom, p.Temoin2Prenom)
	setOpt(&m.OfficierNom, p.OfficierNom)
	setOpt(&m.OfficierFonction, p.OfficierFonction)
	setOpt(&m.Observations, p.Observations)
	if p.Statut != nil {
		m.Statut = *p.Statut
	}
}

func setStr(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// setOpt stores v, turning an empty string into NULL.
func setOpt(dst **string, v *string) {
	if v == nil {
		return
	}
	if strings.TrimSpace(*v) == "" {
		*dst = nil
		return
	}
	s := *v
	*dst = &s
}
