package service

import (
	"context"
	"strings"
	"time"

	"github.com/iliyamo/civil-registry/internal/authz"
	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/observability/metrics"
	"github.com/iliyamo/civil-registry/internal/repository"
)

// MariageService manages marriage records inside the caller's tenant.
type MariageService struct {
	mariages MariageStore
	mairies  MairieStore
	audit    *Recorder
	now      func() time.Time
}

func NewMariageService(mariages MariageStore, mairies MairieStore, audit *Recorder) *MariageService {
	return &MariageService{mariages: mariages, mairies: mairies, audit: audit, now: time.Now}
}

// MariageInput is the body of POST /mariages and PUT /mariages/:id.
// MairieID is only honoured for a super administrator.
type MariageInput struct {
	MairieID *uint64 `json:"mairieId"`
	model.MariagePatch
}

// List returns a page of mariages of the caller's tenant.
func (s *MariageService) List(ctx context.Context, p authz.Principal, f repository.MariageFilter) (repository.Page[model.Mariage], error) {
	f.ListQuery = f.ListQuery.Normalize(20)
	f.All = false
	f.MairieID = p.ScopeByTenant(f.MairieID)
	items, total, err := s.mariages.List(ctx, f)
	if err != nil {
		return repository.Page[model.Mariage]{}, err
	}
	return repository.NewPage(items, total, f.ListQuery), nil
}

// Get returns one mariage. Records of another tenant are reported as
// missing.
func (s *MariageService) Get(ctx context.Context, p authz.Principal, id uint64) (*model.Mariage, error) {
	m, err := s.mariages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.CanAccess(m.MairieID) {
		return nil, repository.ErrNotFound
	}
	return m, nil
}

func checkConjoint(c checks, prefix string, in *model.ConjointPatch) {
	if in == nil {
		in = &model.ConjointPatch{}
	}
	c.length(prefix+".nom", strOrEmpty(in.Nom), 2, 255)
	c.length(prefix+".prenom", strOrEmpty(in.Prenom), 2, 255)
	if in.DateNaissance == nil || in.DateNaissance.IsZero() {
		c.fail(prefix+".dateNaissance", "Ce champ est requis")
	}
	c.required(prefix+".lieuNaissance", strOrEmpty(in.LieuNaissance))
}

// checkConjointPatch validates only the fields a partial update sets.
func checkConjointPatch(c checks, prefix string, in *model.ConjointPatch) {
	if in == nil {
		return
	}
	if in.Nom != nil {
		c.length(prefix+".nom", *in.Nom, 2, 255)
	}
	if in.Prenom != nil {
		c.length(prefix+".prenom", *in.Prenom, 2, 255)
	}
	if in.DateNaissance != nil && in.DateNaissance.IsZero() {
		c.fail(prefix+".dateNaissance", "Ce champ est requis")
	}
	if in.LieuNaissance != nil {
		c.required(prefix+".lieuNaissance", *in.LieuNaissance)
	}
}

func trimConjoint(c *model.Conjoint) {
	c.Nom = strings.TrimSpace(c.Nom)
	c.Prenom = strings.TrimSpace(c.Prenom)
	c.LieuNaissance = strings.TrimSpace(c.LieuNaissance)
}

// Create stores a new draft.
func (s *MariageService) Create(ctx context.Context, p authz.Principal, in MariageInput) (*model.Mariage, error) {
	var mairieID uint64
	if p.IsSuperAdmin() {
		if in.MairieID == nil || *in.MairieID == 0 {
			return nil, model.ErrMairieRequise
		}
		mairieID = *in.MairieID
	} else {
		if p.MairieID == nil {
			return nil, model.ErrMairieRequise
		}
		mairieID = *p.MairieID
	}

	c := checks{}
	checkConjoint(c, "epoux", in.Epoux)
	checkConjoint(c, "epouse", in.Epouse)
	if in.DateMariage == nil || in.DateMariage.IsZero() {
		c.fail("dateMariage", "Ce champ est requis")
	}
	if err := c.err(); err != nil {
		return nil, err
	}

	exists, err := s.mairies.Exists(ctx, mairieID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrMairieInconnue
	}

	patch := in.MariagePatch
	patch.Statut = nil
	m := &model.Mariage{
		MairieID:          mairieID,
		RegimeMatrimonial: model.DefaultRegime,
		Statut:            model.MariageBrouillon,
		CreatedBy:         &p.UserID,
		UpdatedBy:         &p.UserID,
		CreatedAt:         s.now().UTC(),
	}
	patch.Apply(m)
	trimConjoint(&m.Epoux)
	trimConjoint(&m.Epouse)
	if strings.TrimSpace(m.RegimeMatrimonial) == "" {
		m.RegimeMatrimonial = model.DefaultRegime
	}
	if err := s.mariages.Create(ctx, m); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, Entry{
		Actor: &p, Action: model.ActionCreate, EntityType: model.EntityMariage, EntityID: m.ID, MairieID: &m.MairieID,
		New: map[string]any{
			"epoux":       m.Epoux.NomComplet(),
			"epouse":      m.Epouse.NomComplet(),
			"dateMariage": m.DateMariage.String(),
		},
		Description: "Création du mariage " + m.Epoux.NomComplet() + " & " + m.Epouse.NomComplet(),
	})
	return s.mariages.GetByID(ctx, m.ID)
}

// Update applies a partial change. Only drafts may be edited except by a
// super administrator, who alone may change the status.
func (s *MariageService) Update(ctx context.Context, p authz.Principal, id uint64, in MariageInput) (*model.Mariage, error) {
	c := checks{}
	checkConjointPatch(c, "epoux", in.Epoux)
	checkConjointPatch(c, "epouse", in.Epouse)
	if in.DateMariage != nil && in.DateMariage.IsZero() {
		c.fail("dateMariage", "Ce champ est requis")
	}
	if err := c.err(); err != nil {
		return nil, err
	}
	if p.IsSuperAdmin() && in.MairieID != nil && *in.MairieID != 0 {
		exists, err := s.mairies.Exists(ctx, *in.MairieID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, model.ErrMairieInconnue
		}
	}

	var old map[string]any
	m, err := s.mariages.Update(ctx, id, func(m *model.Mariage) error {
		if !p.CanAccess(m.MairieID) {
			return repository.ErrNotFound
		}
		if err := m.CanEdit(p.Role); err != nil {
			return err
		}
		if in.Statut != nil && *in.Statut != m.Statut {
			if !p.IsSuperAdmin() {
				return model.ErrStatutReserve
			}
			if !in.Statut.Valid() {
				return model.ErrStatutInvalide
			}
		}
		old = m.Snapshot()
		in.MariagePatch.Apply(m)
		trimConjoint(&m.Epoux)
		trimConjoint(&m.Epouse)
		if p.IsSuperAdmin() && in.MairieID != nil && *in.MairieID != 0 {
			m.MairieID = *in.MairieID
		}
		now := s.now().UTC()
		m.UpdatedBy = &p.UserID
		m.UpdatedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, Entry{
		Actor: &p, Action: model.ActionUpdate, EntityType: model.EntityMariage, EntityID: m.ID, MairieID: &m.MairieID,
		Old:         old,
		New:         m.Snapshot(),
		Description: "Modification du mariage " + m.Epoux.NomComplet() + " & " + m.Epouse.NomComplet(),
	})
	return m, nil
}

// Delete removes a draft that has no certificate.
func (s *MariageService) Delete(ctx context.Context, p authz.Principal, id uint64) error {
	m, err := s.mariages.Delete(ctx, id, func(m *model.Mariage, hasActe bool) error {
		if !p.CanAccess(m.MairieID) {
			return repository.ErrNotFound
		}
		return m.CanDelete(p.Role, hasActe)
	})
	if err != nil {
		return err
	}
	s.audit.Record(ctx, Entry{
		Actor: &p, Action: model.ActionDelete, EntityType: model.EntityMariage, EntityID: m.ID, MairieID: &m.MairieID,
		Old:         m.Snapshot(),
		Description: "Suppression du mariage " + m.Epoux.NomComplet() + " & " + m.Epouse.NomComplet(),
	})
	return nil
}

// Validate moves a draft to valide.
func (s *MariageService) Validate(ctx context.Context, p authz.Principal, id uint64) (*model.Mariage, error) {
	m, err := s.mariages.Update(ctx, id, func(m *model.Mariage) error {
		if !p.CanAccess(m.MairieID) {
			return repository.ErrNotFound
		}
		if err := m.CanValidate(); err != nil {
			return err
		}
		m.ApplyValidate(p.UserID, s.now().UTC())
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.ObserveTransition(model.EntityMariage, string(model.MariageValide))
	s.audit.Record(ctx, Entry{
		Actor: &p, Action: model.ActionValidate, EntityType: model.EntityMariage, EntityID: m.ID, MairieID: &m.MairieID,
		New:         map[string]any{"statut": m.Statut},
		Description: "Validation du mariage " + m.Epoux.NomComplet() + " & " + m.Epouse.NomComplet(),
	})
	return m, nil
}
