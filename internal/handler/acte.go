package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/civil-registry/internal/authz"
	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/repository"
	"github.com/iliyamo/civil-registry/internal/service"
)

const msgActeNonTrouve = "Acte non trouvé"

// ActeHandler serves /api/actes.
type ActeHandler struct {
	actes *service.ActeService
}

func NewActeHandler(actes *service.ActeService) *ActeHandler { return &ActeHandler{actes: actes} }

type generateReq struct {
	MariageID uint64 `json:"mariageId"`
}

func (h *ActeHandler) List(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	f := repository.ActeFilter{
		ListQuery: listQuery(c),
		MairieID:  queryUint(c, "mairie_id"),
		Annee:     queryInt(c, "annee"),
	}
	if s := model.StatutActe(c.QueryParam("statut")); s.Valid() {
		f.Statut = &s
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	page, err := h.actes.List(ctx, p, f)
	if err != nil {
		return err
	}
	return ok(c, page)
}

func (h *ActeHandler) Get(c echo.Context) error {
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

	a, err := h.actes.Get(ctx, p, id)
	if err != nil {
		return notFound(err, msgActeNonTrouve)
	}
	return ok(c, a)
}

// Generate issues the certificate of a validated mariage. When one already
// exists the 400 response carries it in data.
func (h *ActeHandler) Generate(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var req generateReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	a, err := h.actes.Generate(ctx, p, req.MariageID)
	switch {
	case errors.Is(err, model.ErrActeExiste) && a != nil:
		return c.JSON(http.StatusBadRequest, envelope{Message: model.ErrActeExiste.Msg, Data: a})
	case err != nil:
		return notFound(err, msgMariageNonTrouve)
	}
	return created(c, "Acte de mariage généré avec succès", a)
}

// transition runs one of the certificate status changes on :id.
func (h *ActeHandler) transition(c echo.Context, msg string,
	fn func(ctx context.Context, p authz.Principal, id uint64) (*model.ActeMariage, error),
) error {
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

	a, err := fn(ctx, p, id)
	if err != nil {
		return notFound(err, msgActeNonTrouve)
	}
	return respond(c, http.StatusOK, msg, a)
}

func (h *ActeHandler) Validate(c echo.Context) error {
	return h.transition(c, "Acte validé avec succès", h.actes.Validate)
}

func (h *ActeHandler) Print(c echo.Context) error {
	return h.transition(c, "Acte marqué comme imprimé", h.actes.Print)
}

func (h *ActeHandler) Cancel(c echo.Context) error {
	return h.transition(c, "Acte annulé avec succès", h.actes.Cancel)
}
