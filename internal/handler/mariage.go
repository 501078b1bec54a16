package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/repository"
	"github.com/iliyamo/civil-registry/internal/service"
)

const msgMariageNonTrouve = "Mariage non trouvé"

// MariageHandler serves /api/mariages.
type MariageHandler struct {
	mariages *service.MariageService
}

func NewMariageHandler(mariages *service.MariageService) *MariageHandler {
	return &MariageHandler{mariages: mariages}
}

func (h *MariageHandler) List(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	f := repository.MariageFilter{
		ListQuery: listQuery(c),
		MairieID:  queryUint(c, "mairie_id"),
		DateDebut: queryDate(c, "date_debut"),
		DateFin:   queryDate(c, "date_fin"),
	}
	if s := model.StatutMariage(c.QueryParam("statut")); s.Valid() {
		f.Statut = &s
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	page, err := h.mariages.List(ctx, p, f)
	if err != nil {
		return err
	}
	return ok(c, page)
}

func (h *MariageHandler) Get(c echo.Context) error {
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

	m, err := h.mariages.Get(ctx, p, id)
	if err != nil {
		return notFound(err, msgMariageNonTrouve)
	}
	return ok(c, m)
}

func (h *MariageHandler) Create(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var in service.MariageInput
	if err := bind(c, &in); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	m, err := h.mariages.Create(ctx, p, in)
	if err != nil {
		return err
	}
	return created(c, "Mariage créé avec succès", m)
}

func (h *MariageHandler) Update(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in service.MariageInput
	if err := bind(c, &in); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	m, err := h.mariages.Update(ctx, p, id, in)
	if err != nil {
		return notFound(err, msgMariageNonTrouve)
	}
	return respond(c, http.StatusOK, "Mariage modifié avec succès", m)
}

func (h *MariageHandler) Delete(c echo.Context) error {
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

	if err := h.mariages.Delete(ctx, p, id); err != nil {
		return notFound(err, msgMariageNonTrouve)
	}
	return respond(c, http.StatusOK, "Mariage supprimé avec succès", nil)
}

func (h *MariageHandler) Validate(c echo.Context) error {
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

	m, err := h.mariages.Validate(ctx, p, id)
	if err != nil {
		return notFound(err, msgMariageNonTrouve)
	}
	return respond(c, http.StatusOK, "Mariage validé avec succès", m)
}
