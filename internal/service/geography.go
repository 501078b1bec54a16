package service

import (
	"context"
	"errors"
	"strings"

	"github.com/iliyamo/civil-registry/internal/authz"
	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/repository"
)

// GeographyService manages villes, arrondissements and mairies.
type GeographyService struct {
	villes  VilleStore
	arrs    ArrondissementStore
	mairies MairieStore
	audit   *Recorder
}

func NewGeographyService(villes VilleStore, arrs ArrondissementStore, mairies MairieStore, audit *Recorder) *GeographyService {
	return &GeographyService{villes: villes, arrs: arrs, mairies: mairies, audit: audit}
}

// VilleInput is the body of POST and PUT /villes.
type VilleInput struct {
	Nom      *string `json:"nom"`
	Code     *string `json:"code"`
	Region   *string `json:"region"`
	IsActive *bool   `json:"isActive"`
}

// ArrondissementInput is the body of POST and PUT /arrondissements.
type ArrondissementInput struct {
	Nom      *string `json:"nom"`
	Code     *string `json:"code"`
	VilleID  *uint64 `json:"villeId"`
	IsActive *bool   `json:"isActive"`
}

// MairieInput is the body of POST and PUT /mairies.
type MairieInput struct {
	Nom              *string `json:"nom"`
	Code             *string `json:"code"`
	ArrondissementID *uint64 `json:"arrondissementId"`
	Adresse          *string `json:"adresse"`
	Telephone        *string `json:"telephone"`
	Email            *string `json:"email"`
	Logo             *string `json:"logo"`
	Cachet           *string `json:"cachet"`
	Langue           *string `json:"langue"`
	PrefixeActe      *string `json:"prefixeActe"`
	IsActive         *bool   `json:"isActive"`
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func normalizeCode(s *string) *string {
	v := trimPtr(s)
	if v == nil {
		return nil
	}
	up := strings.ToUpper(*v)
	return &up
}

// ---- villes ----

func (s *GeographyService) ListVilles(ctx context.Context, f repository.VilleFilter) (repository.Page[model.Ville], error) {
	f.ListQuery = f.ListQuery.Normalize(50)
	items, total, err := s.villes.List(ctx, f)
	if err != nil {
		return repository.Page[model.Ville]{}, err
	}
	return repository.NewPage(items, total, f.ListQuery), nil
}

// AllVilles returns active villes without paging.
func (s *GeographyService) AllVilles(ctx context.Context, search string) ([]model.Ville, error) {
	items, _, err := s.villes.List(ctx, repository.VilleFilter{ListQuery: repository.ListQuery{All: true, Search: strings.TrimSpace(search)}})
	return items, err
}

func (s *GeographyService) GetVille(ctx context.Context, id uint64) (*model.Ville, error) {
	return s.villes.GetByID(ctx, id)
}

func (s *GeographyService) CreateVille(ctx context.Context, p authz.Principal, in VilleInput) (*model.Ville, error) {
	c := checks{}
	c.length("nom", strOrEmpty(in.Nom), 2, 255)
	if err := c.err(); err != nil {
		return nil, err
	}
	v := &model.Ville{
		Nom:      strings.TrimSpace(*in.Nom),
		Code:     normalizeCode(in.Code),
		Region:   trimPtr(in.Region),
		IsActive: in.IsActive == nil || *in.IsActive,
	}
	if err := s.villes.Create(ctx, v); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, model.ErrVilleCodeExiste
		}
		return nil, err
	}
	s.audit.Record(ctx, Entry{
		Actor: &p, Action: model.ActionCreate, EntityType: model.EntityVille, EntityID: v.ID,
		New:         map[string]any{"nom": v.Nom, "code": v.Code},
		Description: "Création de la ville " + v.Nom,
	})
	return v, nil
}

func (s *GeographyService) UpdateVille(ctx context.Context, p authz.Principal, id uint64, in VilleInput) (*model.Ville, error) {
	v, err := s.villes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c := checks{}
	if in.Nom != nil {
		c.length("nom", *in.Nom, 2, 255)
	}
	if err := c.err(); err != nil {
		return nil, err
	}
	old := map[string]any{"nom": v.Nom, "code": v.Code, "isActive": v.IsActive}
	if in.Nom != nil {
		v.Nom = strings.TrimSpace(*in.Nom)
	}
	if in.Code != nil {
		v.Code = normalizeCode(in.Code)
	}
	if in.Region != nil {
		v.Region = trimPtr(in.Region)
	}
	if in.IsActive != nil {
		v.IsActive = *in.IsActive
	}
	if err := s.villes.Update(ctx, v); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, model.ErrVilleCodeExiste
		}
		return nil, err
	}
	s.audit.Record(ctx, Entry{
		Actor: &p, Action: model.ActionUpdate, EntityType: model.EntityVille, EntityID: v.ID,
		Old:         old,
		New:         map[string]any{"nom": v.Nom, "code": v.Code, "isActive": v.IsActive},
		Description: "Modification de la ville " + v.Nom,
	})
	return v, nil
}

func (s *GeographyService) DeleteVille(ctx context.Context, p authz.Principal, id uint64) error {
	v, err := s.villes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.villes.Delete(ctx, id); err != nil {
		return dependentsRule(err)
	}
	s.audit.Record(ctx, Entry{
		Actor: &p, Action: model.ActionDelete, EntityType: model.EntityVille, EntityID: id,
		Old:         map[string]any{"nom": v.Nom, "code": v.Code},
		Description: "Suppression de la ville " + v.Nom,
	})
	return nil
}

// ---- arrondissements ----

func (s *GeographyService) ListArrondissements(ctx context.Context, f repository.ArrondissementFilter) (repository.Page[model.Arrondissement], error) {
	f.ListQuery = f.ListQuery.Normalize(50)
	items, total, err := s.arrs.List(ctx, f)
	if err != nil {
		return repository.Page[model.Arrondissement]{}, err
	}
	return repository.NewPage(items, total, f.ListQuery), nil
}

// AllArrondissements returns active arrondissements without paging.
func (s *GeographyService) AllArrondissements(ctx context.Context, f repository.ArrondissementFilter) ([]model.Arrondissement, error) {
	f.All = true
	items, _, err := s.arrs.List(ctx, f)
	return items, err
}

func (s *GeographyService) GetArrondissement(ctx context.Context, id uint64) (*model.Arrondissement, error) {
	return s.arrs.GetByID(ctx, id)
}

func (s *GeographyService) CreateArrondissement(ctx context.Context, p authz.Principal, in ArrondissementInput) (*model.Arrondissement, error) {
	c := checks{}
	c.length("nom", strOrEmpty(in.Nom), 2, 255)
	if in.VilleID == nil || *in.VilleID == 0 {
		c.fail("villeId", "Ce champ est requis")
	}
	if err := c.err(); err != nil {
		return nil, err
	}
	if _, err := s.villes.GetByID(ctx, *in.VilleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, model.ErrVilleInconnue
		}
		return nil, err
	}
	a := &model.Arrondissement{
		Nom:      strings.TrimSpace(*in.Nom),
		Code:     normalizeCode(in.Code),
		VilleID:  *in.VilleID,
		IsActive: in.IsActive == nil || *in.IsActive,
	}
	if err := s.arrs.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, model.ErrVilleInconnue
		}
		return nil, err
	}
	s.audit.Record(ctx, Entry{
		Actor: &p, Action: model.ActionCreate, EntityType: model.EntityArrondissement, EntityID: a.ID,
		New:         map[string]any{"nom": a.Nom, "villeId": a.VilleID},
		Description: "Création de l'arrondissement " + a.Nom,
	})
	return s.arrs.GetByID(ctx, a.ID)
}

func (s *GeographyService) UpdateArrondissement(ctx context.Context, p authz.Principal, id uint64, in ArrondissementInput) (*model.Arrondissement, error) {
	a, err := s.arrs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c := checks{}
	if in.Nom != nil {
		c.length("nom", *in.Nom, 2, 255)
	}
	if err := c.err(); err != nil {
		return nil, err
	}
	old := map[string]any{"nom": a.Nom, "villeId": a.VilleID, "isActive": a.IsActive}
	if in.VilleID != nil && *in.VilleID != a.VilleID {
		if _, err := s.villes.GetByID(ctx, *in.VilleID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, model.ErrVilleInconnue
			}
			return nil, err
		}
		a.VilleID = *in.VilleID
	}
	if in.Nom != nil {
		a.Nom = strings.TrimSpace(*in.Nom)
	}
	if in.Code != nil {
		a.Code = normalizeCode(in.Code)
	}
	if in.IsActive != nil {
		a.IsActive = *in.IsActive
	}
	if err := s.arrs.Update(ctx, a); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, Entry{
		Actor: &p, Action: model.ActionUpdate, EntityType: model.EntityArrondissement, EntityID: a.ID,
		Old:         old,
		New:         map[string]any{"nom": a.Nom, "villeId": a.VilleID, "isActive": a.IsActive},
		Description: "Modification de l'arrondissement " + a.Nom,
	})
	return s.arrs.GetByID(ctx, a.ID)
}

func (s *GeographyService) DeleteArrondissement(ctx context.Context, p authz.Principal, id uint64) error {
	a, err := s.arrs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.arrs.Delete(ctx, id); err != nil {
		return dependentsRule(err)
	}
	s.audit.Record(ctx, Entry{
		Actor: &p, Action: model.ActionDelete, EntityType: model.EntityArrondissement, EntityID: id,
		Old:         map[string]any{"nom": a.Nom, "villeId": a.VilleID},
		Description: "Suppression de l'arrondissement " + a.Nom,
	})
	return nil
}

// ---- mairies ----

// ListMairies returns a page of mairies. Non super administrators only
// ever see their own mairie.
func (s *GeographyService) ListMairies(ctx context.Context, p authz.Principal, f repository.MairieFilter) (repository.Page[model.Mairie], error) {
	f.ListQuery = f.ListQuery.Normalize(20)
	f.MairieID = p.ScopeByTenant(nil)
	items, total, err := s.mairies.List(ctx, f)
	if err != nil {
		return repository.Page[model.Mairie]{}, err
	}
	return repository.NewPage(items, total, f.ListQuery), nil
}

// AllMairies returns active mairies visible to p without paging.
func (s *GeographyService) AllMairies(ctx context.Context, p authz.Principal, f repository.MairieFilter) ([]model.Mairie, error) {
	f.All = true
	f.MairieID = p.ScopeByTenant(nil)
	items, _, err := s.mairies.List(ctx, f)
	return items, err
}

func (s *GeographyService) GetMairie(ctx context.Context, p authz.Principal, id uint64) (*model.Mairie, error) {
	if !p.CanAccess(id) {
		return nil, repository.ErrNotFound
	}
	return s.mairies.GetByID(ctx, id)
}

func (s *GeographyService) MairieStats(ctx context.Context, p authz.Principal, id uint64) (model.MairieStats, error) {
	if !p.CanAccess(id) {
		return model.MairieStats{}, repository.ErrNotFound
	}
	return s.mairies.Stats(ctx, id)
}

func (s *GeographyService) checkArrondissement(ctx context.Context, id *uint64) error {
	if id == nil {
		return nil
	}
	if _, err := s.arrs.GetByID(ctx, *id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.ErrArrondissementInconnu
		}
		return err
	}
	return nil
}

func mairieSnapshot(m *model.Mairie) map[string]any {
	return map[string]any{"nom": m.Nom, "code": m.Code, "prefixeActe": m.PrefixeActe, "isActive": m.IsActive}
}

func (s *GeographyService) CreateMairie(ctx context.Context, p authz.Principal, in MairieInput) (*model.Mairie, error) {
	c := checks{}
	c.length("nom", strOrEmpty(in.Nom), 2, 255)
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		c.email("email", *in.Email)
	}
	if err := c.err(); err != nil {
		return nil, err
	}
	if err := s.checkArrondissement(ctx, in.ArrondissementID); err != nil {
		return nil, err
	}
	m := &model.Mairie{Nom: strings.TrimSpace(*in.Nom), IsActive: true, Langue: "fr"}
	applyMairie(m, in, nil)
	if err := s.mairies.Create(ctx, m); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, model.ErrMairieCodeExiste
		case errors.Is(err, repository.ErrNotFound):
			return nil, model.ErrArrondissementInconnu
		}
		return nil, err
	}
	s.audit.Record(ctx, Entry{
		Actor: &p, Action: model.ActionCreate, EntityType: model.EntityMairie, EntityID: m.ID, MairieID: &m.ID,
		New:         mairieSnapshot(m),
		Description: "Création de la mairie " + m.Nom,
	})
	return s.mairies.GetByID(ctx, m.ID)
}

// UpdateMairie changes a mairie. A mairie administrator may only touch the
// contact and certificate fields of their own mairie; other fields in the
// input are ignored.
func (s *GeographyService) UpdateMairie(ctx context.Context, p authz.Principal, id uint64, in MairieInput) (*model.Mairie, error) {
	if !p.CanAccess(id) {
		return nil, repository.ErrNotFound
	}
	m, err := s.mairies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	allowed := authz.MairieFields(p.Role)
	c := checks{}
	if in.Nom != nil && allowed == nil {
		c.length("nom", *in.Nom, 2, 255)
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		c.email("email", *in.Email)
	}
	if err := c.err(); err != nil {
		return nil, err
	}
	if allowed == nil {
		if err := s.checkArrondissement(ctx, in.ArrondissementID); err != nil {
			return nil, err
		}
	}
	old := mairieSnapshot(m)
	applyMairie(m, in, allowed)
	if err := s.mairies.Update(ctx, m); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, model.ErrMairieCodeExiste
		case errors.Is(err, repository.ErrNotFound) && in.ArrondissementID != nil:
			return nil, model.ErrArrondissementInconnu
		}
		return nil, err
	}
	s.audit.Record(ctx, Entry{
		Actor: &p, Action: model.ActionUpdate, EntityType: model.EntityMairie, EntityID: m.ID, MairieID: &m.ID,
		Old:         old,
		New:         mairieSnapshot(m),
		Description: "Modification de la mairie " + m.Nom,
	})
	return s.mairies.GetByID(ctx, m.ID)
}

// applyMairie copies the set fields of in onto m. allowed restricts the
// fields by their JSON name; nil allows all.
func applyMairie(m *model.Mairie, in MairieInput, allowed map[string]bool) {
	ok := func(field string) bool { return allowed == nil || allowed[field] }
	if in.Nom != nil && ok("nom") {
		m.Nom = strings.TrimSpace(*in.Nom)
	}
	if in.Code != nil && ok("code") {
		m.Code = normalizeCode(in.Code)
	}
	if in.ArrondissementID != nil && ok("arrondissementId") {
		m.ArrondissementID = in.ArrondissementID
	}
	if in.Adresse != nil && ok("adresse") {
		m.Adresse = trimPtr(in.Adresse)
	}
	if in.Telephone != nil && ok("telephone") {
		m.Telephone = trimPtr(in.Telephone)
	}
	if in.Email != nil && ok("email") {
		m.Email = trimPtr(in.Email)
	}
	if in.Logo != nil && ok("logo") {
		m.Logo = trimPtr(in.Logo)
	}
	if in.Cachet != nil && ok("cachet") {
		m.Cachet = trimPtr(in.Cachet)
	}
	if in.Langue != nil && ok("langue") && strings.TrimSpace(*in.Langue) != "" {
		m.Langue = strings.TrimSpace(*in.Langue)
	}
	if in.PrefixeActe != nil && ok("prefixeActe") {
		m.PrefixeActe = normalizeCode(in.PrefixeActe)
	}
	if in.IsActive != nil && ok("isActive") {
		m.IsActive = *in.IsActive
	}
}

func (s *GeographyService) DeleteMairie(ctx context.Context, p authz.Principal, id uint64) error {
	m, err := s.mairies.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.mairies.Delete(ctx, id); err != nil {
		return dependentsRule(err)
	}
	s.audit.Record(ctx, Entry{
		Actor: &p, Action: model.ActionDelete, EntityType: model.EntityMairie, EntityID: id,
		Old:         mairieSnapshot(m),
		Description: "Suppression de la mairie " + m.Nom,
	})
	return nil
}
