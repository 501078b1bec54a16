package model

import "time"

// Ville is the top tier of the administrative geography.
type Ville struct {
	ID              uint64           `json:"id"`
	Nom             string           `json:"nom"`
	Code            *string          `json:"code"`
	Region          *string          `json:"region"`
	IsActive        bool             `json:"isActive"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       *time.Time       `json:"updatedAt"`
	Arrondissements []Arrondissement `json:"arrondissements,omitempty"`
}

// Arrondissement belongs to a Ville and groups mairies.
type Arrondissement struct {
	ID           uint64     `json:"id"`
	Nom          string     `json:"nom"`
	Code         *string    `json:"code"`
	VilleID      uint64     `json:"villeId"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
	Ville        *Ville     `json:"ville,omitempty"`
	Mairies      []Mairie   `json:"mairies,omitempty"`
	MairiesCount *int64     `json:"mairiesCount,omitempty"`
}

// DefaultActePrefix is used for certificate numbers when a mairie has no prefix.
const DefaultActePrefix = "ACT"

// Mairie is the tenant. DernierNumeroActe is the last certificate ordinal
// handed out; it only moves forward under a row lock.
type Mairie struct {
	ID                uint64          `json:"id"`
	Nom               string          `json:"nom"`
	Code              *string         `json:"code"`
	ArrondissementID  *uint64         `json:"arrondissementId"`
	Adresse           *string         `json:"adresse"`
	Telephone         *string         `json:"telephone"`
	Email             *string         `json:"email"`
	Logo              *string         `json:"logo"`
	Cachet            *string         `json:"cachet"`
	Langue            string          `json:"langue"`
	PrefixeActe       *string         `json:"prefixeActe"`
	DernierNumeroActe int             `json:"dernierNumeroActe"`
	AnneeSequence     *int            `json:"anneeSequence,omitempty"`
	IsActive          bool            `json:"isActive"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         *time.Time      `json:"updatedAt"`
	Arrondissement    *Arrondissement `json:"arrondissement,omitempty"`
	Users             []User          `json:"users,omitempty"`
}

// ActePrefix returns the configured certificate prefix or DefaultActePrefix.
func (m *Mairie) ActePrefix() string {
	if m.PrefixeActe != nil && *m.PrefixeActe != "" {
		return *m.PrefixeActe
	}
	return DefaultActePrefix
}

// MairieStats is the per-tenant summary served by GET /mairies/:id/stats.
type MairieStats struct {
	Mairie        string `json:"mairie"`
	TotalUsers    int64  `json:"totalUsers"`
	TotalMariages int64  `json:"totalMariages"`
	TotalActes    int64  `json:"totalActes"`
}
