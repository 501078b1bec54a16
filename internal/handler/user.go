package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/repository"
	"github.com/iliyamo/civil-registry/internal/service"
)

const msgUtilisateurNonTrouve = "Utilisateur non trouvé"

// UserHandler serves /api/users.
type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler { return &UserHandler{users: users} }

func (h *UserHandler) List(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	f := repository.UserFilter{
		ListQuery: listQuery(c),
		IsActive:  queryBool(c, "is_active"),
		MairieID:  queryUint(c, "mairie_id"),
	}
	if r := model.Role(strings.TrimSpace(c.QueryParam("role"))); r.Valid() {
		f.Role = &r
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	page, err := h.users.List(ctx, p, f)
	if err != nil {
		return err
	}
	return ok(c, page)
}

func (h *UserHandler) Get(c echo.Context) error {
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

	u, err := h.users.Get(ctx, p, id)
	if err != nil {
		return notFound(err, msgUtilisateurNonTrouve)
	}
	return ok(c, u)
}

func (h *UserHandler) Create(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var in service.UserInput
	if err := bind(c, &in); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.users.Create(ctx, p, in)
	if err != nil {
		return err
	}
	return created(c, "Utilisateur créé avec succès", u)
}

func (h *UserHandler) Update(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var in service.UserPatch
	if err := bind(c, &in); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.users.Update(ctx, p, id, in)
	if err != nil {
		return notFound(err, msgUtilisateurNonTrouve)
	}
	return respond(c, http.StatusOK, "Utilisateur modifié avec succès", u)
}

func (h *UserHandler) Delete(c echo.Context) error {
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

	if err := h.users.Delete(ctx, p, id); err != nil {
		return notFound(err, msgUtilisateurNonTrouve)
	}
	return respond(c, http.StatusOK, "Utilisateur supprimé avec succès", nil)
}

func (h *UserHandler) ToggleStatus(c echo.Context) error {
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

	u, err := h.users.ToggleStatus(ctx, p, id)
	if err != nil {
		return notFound(err, msgUtilisateurNonTrouve)
	}
	msg := "Utilisateur désactivé avec succès"
	if u.IsActive {
		msg = "Utilisateur activé avec succès"
	}
	return respond(c, http.StatusOK, msg, u)
}
