package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/civil-registry/internal/service"
)

// DashboardHandler serves /api/dashboard.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Get returns the role-specific dashboard of the caller.
func (h *DashboardHandler) Get(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	d, err := h.dashboard.Get(ctx, p)
	if err != nil {
		return err
	}
	return ok(c, d)
}

// Stats groups mariages by ?periode=jour|semaine|mois|annee for ?annee.
func (h *DashboardHandler) Stats(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	periode := c.QueryParam("periode")
	if periode == "" {
		periode = service.PeriodeMois
	}
	annee, _ := strconv.Atoi(c.QueryParam("annee"))
	ctx, cancel := reqCtx(c)
	defer cancel()

	points, err := h.dashboard.Stats(ctx, p, periode, annee)
	if err != nil {
		return err
	}
	return ok(c, points)
}
