package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/iliyamo/civil-registry/internal/authz"
	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/observability/metrics"
	"github.com/iliyamo/civil-registry/internal/repository"
)

// ActeService generates marriage certificates and moves them through
// their lifecycle.
type ActeService struct {
	actes       ActeStore
	audit       *Recorder
	logger      *slog.Logger
	now         func() time.Time
	resetYearly bool
}

type ActeOption func(s *ActeService)

// WithActeClock replaces the clock used for the certificate year.
func WithActeClock(now func() time.Time) ActeOption {
	return func(s *ActeService) { s.now = now }
}

// WithYearlyReset restarts the ordinal sequence of every mairie each year.
func WithYearlyReset(on bool) ActeOption {
	return func(s *ActeService) { s.resetYearly = on }
}

func WithActeLogger(logger *slog.Logger) ActeOption {
	return func(s *ActeService) { s.logger = logger }
}

func NewActeService(actes ActeStore, audit *Recorder, opts ...ActeOption) *ActeService {
	s := &ActeService{actes: actes, audit: audit, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ActeService) List(ctx context.Context, p authz.Principal, f repository.ActeFilter) (repository.Page[model.ActeMariage], error) {
	f.ListQuery = f.ListQuery.Normalize(20)
	f.All = false
	f.MairieID = p.ScopeByTenant(f.MairieID)
	items, total, err := s.actes.List(ctx, f)
	if err != nil {
		return repository.Page[model.ActeMariage]{}, err
	}
	return repository.NewPage(items, total, f.ListQuery), nil
}

func (s *ActeService) Get(ctx context.Context, p authz.Principal, id uint64) (*model.ActeMariage, error) {
	a, err := s.actes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.CanAccess(a.MairieID) {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

// Generate issues the certificate of a validated mariage. When the mariage
// already has one, that certificate is returned together with
// model.ErrActeExiste.
func (s *ActeService) Generate(ctx context.Context, p authz.Principal, mariageID uint64) (*model.ActeMariage, error) {
	if mariageID == 0 {
		return nil, &ValidationError{Fields: map[string]string{"mariageId": "Ce champ est requis"}}
	}
	now := s.now()
	year := now.Year()
	var renderErr error
	req := repository.IssueRequest{
		MariageID:   mariageID,
		Year:        year,
		ResetYearly: s.resetYearly,
		Check: func(m *model.Mariage, existing *model.ActeMariage) error {
			if !p.CanAccess(m.MairieID) {
				return repository.ErrNotFound
			}
			if existing != nil {
				return model.ErrActeExiste
			}
			if m.Statut != model.MariageValide {
				return model.ErrMariageNonValide
			}
			return nil
		},
		Build: func(m *model.Mariage, mairie *model.Mairie, ordinal int) *model.ActeMariage {
			numero := model.FormatNumeroActe(mairie.ActePrefix(), year, ordinal)
			a := &model.ActeMariage{
				MariageID:   m.ID,
				MairieID:    m.MairieID,
				NumeroActe:  numero,
				Annee:       year,
				NumeroOrdre: ordinal,
				Statut:      model.ActeBrouillon,
				CreatedBy:   &p.UserID,
			}
			contenu, err := RenderActe(m, mairie, numero)
			if err != nil {
				renderErr = err
				return a
			}
			a.Contenu = &contenu
			return a
		},
	}

	a, err := s.actes.Issue(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrActeExiste):
			metrics.ObserveActeIssue("exists")
			return a, err
		case errors.Is(err, model.ErrMariageNonValide), errors.Is(err, repository.ErrNotFound):
			metrics.ObserveActeIssue("rejected")
		default:
			metrics.ObserveActeIssue("error")
		}
		return nil, err
	}
	if renderErr != nil {
		s.logger.Warn("acte content not rendered", slog.String("numero", a.NumeroActe), slog.Any("error", renderErr))
	}
	metrics.ObserveActeIssue("ok")
	s.audit.Record(ctx, Entry{
		Actor: &p, Action: model.ActionCreate, EntityType: model.EntityActe, EntityID: a.ID, MairieID: &a.MairieID,
		New:         map[string]any{"numeroActe": a.NumeroActe, "mariageId": a.MariageID},
		Description: "Génération de l'acte de mariage n°" + a.NumeroActe,
	})
	return a, nil
}

// transition runs one status change under the row lock and records it.
func (s *ActeService) transition(ctx context.Context, p authz.Principal, id uint64, action model.AuditAction,
	desc string, fn func(a *model.ActeMariage, now time.Time) error) (*model.ActeMariage, error) {
	var from model.StatutActe
	a, err := s.actes.Transition(ctx, id, func(a *model.ActeMariage) error {
		if !p.CanAccess(a.MairieID) {
			return repository.ErrNotFound
		}
		from = a.Statut
		return fn(a, s.now().UTC())
	})
	if err != nil {
		return nil, err
	}
	metrics.ObserveTransition(model.EntityActe, string(a.Statut))
	s.audit.Record(ctx, Entry{
		Actor: &p, Action: action, EntityType: model.EntityActe, EntityID: a.ID, MairieID: &a.MairieID,
		Old:         map[string]any{"statut": from},
		New:         map[string]any{"statut": a.Statut},
		Description: desc + a.NumeroActe,
	})
	return a, nil
}

// Validate moves a draft certificate to valide.
func (s *ActeService) Validate(ctx context.Context, p authz.Principal, id uint64) (*model.ActeMariage, error) {
	return s.transition(ctx, p, id, model.ActionValidate, "Validation de l'acte n°",
		func(a *model.ActeMariage, now time.Time) error {
			if err := a.CanValidate(); err != nil {
				return err
			}
			a.ApplyValidate(p.UserID, now)
			return nil
		})
}

// Print marks a validated certificate as printed.
func (s *ActeService) Print(ctx context.Context, p authz.Principal, id uint64) (*model.ActeMariage, error) {
	return s.transition(ctx, p, id, model.ActionPrint, "Impression de l'acte n°",
		func(a *model.ActeMariage, now time.Time) error {
			if err := a.CanPrint(); err != nil {
				return err
			}
			a.ApplyPrint(p.UserID, now)
			return nil
		})
}

// Cancel voids a certificate. Reserved to the super administrator.
func (s *ActeService) Cancel(ctx context.Context, p authz.Principal, id uint64) (*model.ActeMariage, error) {
	if err := authz.Check(authz.ActeCancel, p); err != nil {
		return nil, ErrAnnulationReservee
	}
	return s.transition(ctx, p, id, model.ActionCancel, "Annulation de l'acte n°",
		func(a *model.ActeMariage, now time.Time) error {
			if err := a.CanCancel(); err != nil {
				return err
			}
			a.ApplyCancel(p.UserID, now)
			return nil
		})
}
