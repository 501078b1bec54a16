package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/civil-registry/internal/authz"
	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/repository"
)

// DashboardService assembles the role specific home page. Every figure is
// a live query.
type DashboardService struct {
	stats    DashboardStore
	mariages MariageStore
	mairies  MairieStore
	audit    *Recorder
	now      func() time.Time
}

func NewDashboardService(stats DashboardStore, mariages MariageStore, mairies MairieStore, audit *Recorder) *DashboardService {
	return &DashboardService{stats: stats, mariages: mariages, mairies: mairies, audit: audit, now: time.Now}
}

// Dashboard is the payload of GET /dashboard. Which lists are set depends
// on Role.
type Dashboard struct {
	Role         model.Role       `json:"role"`
	Mairie       *model.Mairie    `json:"mairie,omitempty"`
	Statistiques map[string]int64 `json:"statistiques"`

	DerniersMariages   []model.Mariage           `json:"derniersMariages,omitempty"`
	StatsMairies       []repository.MairieVolume `json:"statsMairies,omitempty"`
	ActivitesRecentes  []model.AuditLog          `json:"activitesRecentes,omitempty"`
	UtilisateursActifs []model.User              `json:"utilisateursActifs,omitempty"`

	MesDerniersMariages []model.Mariage `json:"mesDerniersMariages,omitempty"`
	MariagesRecents     []model.Mariage `json:"mariagesRecents,omitempty"`
	MariagesEnAttente   []model.Mariage `json:"mariagesEnAttente,omitempty"`
}

// StatPoint is one bucket of GET /dashboard/stats.
type StatPoint struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// Periodes accepted by Stats.
const (
	PeriodeJour    = "jour"
	PeriodeSemaine = "semaine"
	PeriodeMois    = "mois"
	PeriodeAnnee   = "annee"
)

// counter runs one counting query into its own variable.
type counter struct {
	name string
	fn   func(ctx context.Context) (int64, error)
	val  int64
}

func runCounters(ctx context.Context, g *errgroup.Group, cs []*counter) {
	for _, c := range cs {
		g.Go(func() error {
			n, err := c.fn(ctx)
			c.val = n
			return err
		})
	}
}

func collect(cs []*counter) map[string]int64 {
	out := make(map[string]int64, len(cs))
	for _, c := range cs {
		out[c.name] = c.val
	}
	return out
}

func (s *DashboardService) recentMariages(ctx context.Context, f repository.MariageFilter, limit int) ([]model.Mariage, error) {
	f.Page, f.Limit = 1, limit
	f.OrderByCreated = true
	items, _, err := s.mariages.List(ctx, f)
	return items, err
}

// Get builds the dashboard for p.
func (s *DashboardService) Get(ctx context.Context, p authz.Principal) (*Dashboard, error) {
	switch p.Role {
	case model.RoleSuperAdmin:
		return s.superAdmin(ctx)
	case model.RoleAdminMairie:
		return s.adminMairie(ctx, p)
	}
	return s.agent(ctx, p)
}

func (s *DashboardService) bounds() (month, year time.Time) {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

func (s *DashboardService) superAdmin(ctx context.Context) (*Dashboard, error) {
	month, year := s.bounds()
	cs := []*counter{
		{name: "totalMairies", fn: func(ctx context.Context) (int64, error) {
			return s.stats.CountMairies(ctx, repository.Count{})
		}},
		{name: "totalMairiesActives", fn: func(ctx context.Context) (int64, error) {
			return s.stats.CountMairies(ctx, repository.Count{ActiveOnly: true})
		}},
		{name: "totalUsers", fn: func(ctx context.Context) (int64, error) {
			return s.stats.CountUsers(ctx, repository.Count{})
		}},
		{name: "totalUsersActifs", fn: func(ctx context.Context) (int64, error) {
			return s.stats.CountUsers(ctx, repository.Count{ActiveOnly: true})
		}},
		{name: "totalMariages", fn: func(ctx context.Context) (int64, error) {
			return s.stats.CountMariages(ctx, repository.Count{})
		}},
		{name: "totalActes", fn: func(ctx context.Context) (int64, error) {
			return s.stats.CountActes(ctx, repository.Count{})
		}},
		{name: "mariagesMois", fn: func(ctx context.Context) (int64, error) {
			return s.stats.CountMariages(ctx, repository.Count{Since: &month})
		}},
		{name: "mariagesAnnee", fn: func(ctx context.Context) (int64, error) {
			return s.stats.CountMariages(ctx, repository.Count{Since: &year})
		}},
	}
	d := &Dashboard{Role: model.RoleSuperAdmin}
	g, gctx := errgroup.WithContext(ctx)
	runCounters(gctx, g, cs)
	g.Go(func() (err error) {
		d.DerniersMariages, err = s.recentMariages(gctx, repository.MariageFilter{}, 5)
		return err
	})
	g.Go(func() (err error) {
		d.StatsMairies, err = s.stats.TopMairies(gctx, 10)
		return err
	})
	g.Go(func() (err error) {
		d.ActivitesRecentes, err = s.audit.Latest(gctx, nil, 10)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	d.Statistiques = collect(cs)
	return d, nil
}

func (s *DashboardService) adminMairie(ctx context.Context, p authz.Principal) (*Dashboard, error) {
	if p.MairieID == nil {
		return nil, model.ErrMairieRequise
	}
	mid := *p.MairieID
	month, year := s.bounds()
	brouillon, valide := model.MariageBrouillon, model.MariageValide
	cs := []*counter{
		{name: "totalUsers", fn: func(ctx context.Context) (int64, error) {
			return s.stats.CountUsers(ctx, repository.Count{MairieID: &mid})
		}},
		{name: "totalUsersActifs", fn: func(ctx context.Context) (int64, error) {
			return s.stats.CountUsers(ctx, repository.Count{MairieID: &mid, ActiveOnly: true})
		}},
		{name: "totalMariages", fn: func(ctx context.Context) (int64, error) {
			return s.stats.CountMariages(ctx, repository.Count{MairieID: &mid})
		}},
		{name: "totalActes", fn: func(ctx context.Context) (int64, error) {
			return s.stats.CountActes(ctx, repository.Count{MairieID: &mid})
		}},
		{name: "mariagesBrouillon", fn: func(ctx context.Context) (int64, error) {
			return s.stats.CountMariages(ctx, repository.Count{MairieID: &mid, Statut: &brouillon})
		}},
		{name: "mariagesValides", fn: func(ctx context.Context) (int64, error) {
			return s.stats.CountMariages(ctx, repository.Count{MairieID: &mid, Statut: &valide})
		}},
		{name: "mariagesMois", fn: func(ctx context.Context) (int64, error) {
			return s.stats.CountMariages(ctx, repository.Count{MairieID: &mid, Since: &month})
		}},
		{name: "mariagesAnnee", fn: func(ctx context.Context) (int64, error) {
			return s.stats.CountMariages(ctx, repository.Count{MairieID: &mid, Since: &year})
		}},
	}
	d := &Dashboard{Role: model.RoleAdminMairie}
	g, gctx := errgroup.WithContext(ctx)
	runCounters(gctx, g, cs)
	g.Go(func() (err error) {
		d.Mairie, err = s.mairies.GetByID(gctx, mid)
		return err
	})
	g.Go(func() (err error) {
		d.DerniersMariages, err = s.recentMariages(gctx, repository.MariageFilter{MairieID: &mid}, 5)
		return err
	})
	g.Go(func() (err error) {
		d.ActivitesRecentes, err = s.audit.Latest(gctx, &mid, 10)
		return err
	})
	g.Go(func() (err error) {
		d.UtilisateursActifs, err = s.stats.RecentUsers(gctx, mid, 5)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	d.Statistiques = collect(cs)
	return d, nil
}

func (s *DashboardService) agent(ctx context.Context, p authz.Principal) (*Dashboard, error) {
	if p.MairieID == nil {
		return nil, model.ErrMairieRequise
	}
	mid, uid := *p.MairieID, p.UserID
	month, _ := s.bounds()
	brouillon := model.MariageBrouillon
	cs := []*counter{
		{name: "mesMariages", fn: func(ctx context.Context) (int64, error) {
			return s.stats.CountMariages(ctx, repository.Count{MairieID: &mid, CreatedBy: &uid})
		}},
		{name: "mariagesMois", fn: func(ctx context.Context) (int64, error) {
			return s.stats.CountMariages(ctx, repository.Count{MairieID: &mid, Since: &month})
		}},
	}
	d := &Dashboard{Role: p.Role}
	g, gctx := errgroup.WithContext(ctx)
	runCounters(gctx, g, cs)
	g.Go(func() (err error) {
		d.Mairie, err = s.mairies.GetByID(gctx, mid)
		return err
	})
	g.Go(func() (err error) {
		d.MesDerniersMariages, err = s.recentMariages(gctx, repository.MariageFilter{MairieID: &mid, CreatedBy: &uid}, 5)
		return err
	})
	g.Go(func() (err error) {
		d.MariagesRecents, err = s.recentMariages(gctx, repository.MariageFilter{MairieID: &mid}, 10)
		return err
	})
	g.Go(func() (err error) {
		d.MariagesEnAttente, err = s.recentMariages(gctx, repository.MariageFilter{MairieID: &mid, Statut: &brouillon}, 5)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	d.Statistiques = collect(cs)
	return d, nil
}

// Stats groups the mariages created during annee by periode. Buckets keep
// the order in which they first appear. annee 0 means the current year and
// an unknown periode falls back to mois.
func (s *DashboardService) Stats(ctx context.Context, p authz.Principal, periode string, annee int) ([]StatPoint, error) {
	if annee == 0 {
		annee = s.now().Year()
	}
	times, err := s.stats.MariageCreationTimes(ctx, p.ScopeByTenant(nil), annee)
	if err != nil {
		return nil, err
	}
	return GroupByPeriode(times, periode), nil
}

// GroupByPeriode counts times per bucket label.
func GroupByPeriode(times []time.Time, periode string) []StatPoint {
	out := []StatPoint{}
	index := map[string]int{}
	for _, t := range times {
		label := periodeLabel(t, periode)
		i, ok := index[label]
		if !ok {
			i = len(out)
			index[label] = i
			out = append(out, StatPoint{Label: label})
		}
		out[i].Count++
	}
	return out
}

func periodeLabel(t time.Time, periode string) string {
	switch periode {
	case PeriodeJour:
		return t.Format("2006-01-02")
	case PeriodeSemaine:
		_, w := t.ISOWeek()
		return fmt.Sprintf("Semaine %d", w)
	case PeriodeAnnee:
		return t.Format("2006")
	}
	return moisFr[t.Month()-1]
}
