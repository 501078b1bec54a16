package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/civil-registry/internal/repository"
	"github.com/iliyamo/civil-registry/internal/service"
)

const (
	msgVilleNonTrouvee         = "Ville non trouvée"
	msgArrondissementNonTrouve = "Arrondissement non trouvé"
	msgMairieNonTrouvee        = "Mairie non trouvée"
)

// GeographyHandler serves /api/villes, /api/arrondissements and
// /api/mairies.
type GeographyHandler struct {
	geo *service.GeographyService
}

func NewGeographyHandler(geo *service.GeographyService) *GeographyHandler {
	return &GeographyHandler{geo: geo}
}

// ---- villes ----

// ListVilles pages villes, or returns every active ville with all=true.
func (h *GeographyHandler) ListVilles(c echo.Context) error {
	q := listQuery(c)
	ctx, cancel := reqCtx(c)
	defer cancel()

	if q.All {
		items, err := h.geo.AllVilles(ctx, q.Search)
		if err != nil {
			return err
		}
		return ok(c, items)
	}
	page, err := h.geo.ListVilles(ctx, repository.VilleFilter{ListQuery: q})
	if err != nil {
		return err
	}
	return ok(c, page)
}

func (h *GeographyHandler) GetVille(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	v, err := h.geo.GetVille(ctx, id)
	if err != nil {
		return notFound(err, msgVilleNonTrouvee)
	}
	return ok(c, v)
}

func (h *GeographyHandler) CreateVille(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var in service.VilleInput
	if err := bind(c, &in); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	v, err := h.geo.CreateVille(ctx, p, in)
	if err != nil {
		return err
	}
	return created(c, "Ville créée avec succès", v)
}

func (h *GeographyHandler) UpdateVille(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in service.VilleInput
	if err := bind(c, &in); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	v, err := h.geo.UpdateVille(ctx, p, id, in)
	if err != nil {
		return notFound(err, msgVilleNonTrouvee)
	}
	return respond(c, http.StatusOK, "Ville modifiée avec succès", v)
}

func (h *GeographyHandler) DeleteVille(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.geo.DeleteVille(ctx, p, id); err != nil {
		return notFound(err, msgVilleNonTrouvee)
	}
	return respond(c, http.StatusOK, "Ville supprimée avec succès", nil)
}

// ---- arrondissements ----

func (h *GeographyHandler) ListArrondissements(c echo.Context) error {
	f := repository.ArrondissementFilter{ListQuery: listQuery(c), VilleID: queryUint(c, "ville_id")}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if f.All {
		items, err := h.geo.AllArrondissements(ctx, f)
		if err != nil {
			return err
		}
		return ok(c, items)
	}
	page, err := h.geo.ListArrondissements(ctx, f)
	if err != nil {
		return err
	}
	return ok(c, page)
}

func (h *GeographyHandler) GetArrondissement(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	a, err := h.geo.GetArrondissement(ctx, id)
	if err != nil {
		return notFound(err, msgArrondissementNonTrouve)
	}
	return ok(c, a)
}

func (h *GeographyHandler) CreateArrondissement(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var in service.ArrondissementInput
	if err := bind(c, &in); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	a, err := h.geo.CreateArrondissement(ctx, p, in)
	if err != nil {
		return err
	}
	return created(c, "Arrondissement créé avec succès", a)
}

func (h *GeographyHandler) UpdateArrondissement(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in service.ArrondissementInput
	if err := bind(c, &in); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	a, err := h.geo.UpdateArrondissement(ctx, p, id, in)
	if err != nil {
		return notFound(err, msgArrondissementNonTrouve)
	}
	return respond(c, http.StatusOK, "Arrondissement modifié avec succès", a)
}

func (h *GeographyHandler) DeleteArrondissement(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.geo.DeleteArrondissement(ctx, p, id); err != nil {
		return notFound(err, msgArrondissementNonTrouve)
	}
	return respond(c, http.StatusOK, "Arrondissement supprimé avec succès", nil)
}

// ---- mairies ----

// ListMairies is tenant scoped: callers other than the super administrator
// only see their own mairie.
func (h *GeographyHandler) ListMairies(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	f := repository.MairieFilter{ListQuery: listQuery(c), ArrondissementID: queryUint(c, "arrondissement_id")}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if f.All {
		items, err := h.geo.AllMairies(ctx, p, f)
		if err != nil {
			return err
		}
		return ok(c, items)
	}
	page, err := h.geo.ListMairies(ctx, p, f)
	if err != nil {
		return err
	}
	return ok(c, page)
}

func (h *GeographyHandler) GetMairie(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	m, err := h.geo.GetMairie(ctx, p, id)
	if err != nil {
		return notFound(err, msgMairieNonTrouvee)
	}
	return ok(c, m)
}

func (h *GeographyHandler) MairieStats(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	st, err := h.geo.MairieStats(ctx, p, id)
	if err != nil {
		return notFound(err, msgMairieNonTrouvee)
	}
	return ok(c, st)
}

func (h *GeographyHandler) CreateMairie(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var in service.MairieInput
	if err := bind(c, &in); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	m, err := h.geo.CreateMairie(ctx, p, in)
	if err != nil {
		return err
	}
	return created(c, "Mairie créée avec succès", m)
}

func (h *GeographyHandler) UpdateMairie(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in service.MairieInput
	if err := bind(c, &in); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	m, err := h.geo.UpdateMairie(ctx, p, id, in)
	if err != nil {
		return notFound(err, msgMairieNonTrouvee)
	}
	return respond(c, http.StatusOK, "Mairie modifiée avec succès", m)
}

func (h *GeographyHandler) DeleteMairie(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.geo.DeleteMairie(ctx, p, id); err != nil {
		return notFound(err, msgMairieNonTrouvee)
	}
	return respond(c, http.StatusOK, "Mairie supprimée avec succès", nil)
}
