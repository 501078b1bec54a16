// Package handler holds the Echo handlers of the /api routes. Handlers
// parse the request, call one service method and wrap the result in the
// {success, message, data} envelope. Errors are returned to Echo and
// rendered by ErrorHandler.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/civil-registry/internal/authz"
	"github.com/iliyamo/civil-registry/internal/middleware"
	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/repository"
	"github.com/iliyamo/civil-registry/internal/service"
)

const (
	msgAccesRefuse   = "Vous n'avez pas les permissions nécessaires pour accéder à cette ressource"
	msgNonTrouve     = "Ressource non trouvée"
	msgDonnees       = "Données invalides"
	msgErreurInterne = "Erreur interne du serveur"
	msgConflit       = "Cette opération entre en conflit avec des données existantes"
)

// requestTimeout bounds the store work of one request.
const requestTimeout = 5 * time.Second

// envelope is the body of every /api response.
type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func respond(c echo.Context, status int, msg string, data any) error {
	return c.JSON(status, envelope{Success: true, Message: msg, Data: data})
}

func ok(c echo.Context, data any) error { return respond(c, http.StatusOK, "", data) }

func created(c echo.Context, msg string, data any) error {
	return respond(c, http.StatusCreated, msg, data)
}

// ErrorHandler renders every error returned by a handler or middleware as
// an envelope. Unexpected errors are logged and answered with 500.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Request().Method, "path", c.Request().URL.Path, "err", err)
		}
		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, body)
		}
		if werr != nil {
			logger.Error("write error response", "err", werr)
		}
	}
}

// StatusOf returns the status ErrorHandler writes for err.
func StatusOf(err error) int {
	status, _ := errorResponse(err)
	return status
}

func errorResponse(err error) (int, envelope) {
	var (
		he *echo.HTTPError
		ve *service.ValidationError
		ae *service.AuthError
		fe *service.ForbiddenError
		re *model.RuleError
	)
	fail := func(status int, msg string) (int, envelope) {
		return status, envelope{Message: msg}
	}
	switch {
	case errors.As(err, &he):
		return fail(he.Code, fmt.Sprint(he.Message))
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, envelope{Message: msgDonnees, Errors: ve.Fields}
	case errors.As(err, &ae):
		return fail(http.StatusUnauthorized, ae.Msg)
	case errors.As(err, &fe):
		return fail(http.StatusForbidden, fe.Msg)
	case errors.Is(err, authz.ErrForbidden), errors.Is(err, repository.ErrForbidden):
		return fail(http.StatusForbidden, msgAccesRefuse)
	case errors.Is(err, repository.ErrNotFound):
		return fail(http.StatusNotFound, msgNonTrouve)
	case errors.As(err, &re):
		return fail(http.StatusBadRequest, re.Msg)
	case errors.Is(err, repository.ErrDuplicate), errors.Is(err, repository.ErrConflict), errors.Is(err, repository.ErrHasDependents):
		return fail(http.StatusBadRequest, msgConflit)
	}
	return fail(http.StatusInternalServerError, msgErreurInterne)
}

// notFound replaces a store miss with a 404 naming the resource.
func notFound(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, msg)
	}
	return err
}

// bind decodes the JSON body into v. A malformed body is a 422.
func bind(c echo.Context, v any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, v); err != nil {
		return &service.ValidationError{Fields: map[string]string{"body": "Corps de requête invalide"}}
	}
	return nil
}

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// caller returns the principal loaded by the auth middleware.
func caller(c echo.Context) (authz.Principal, error) {
	p, found := middleware.PrincipalFrom(c)
	if !found {
		return authz.Principal{}, service.ErrSessionInvalide
	}
	return p, nil
}

func idParam(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Identifiant invalide")
	}
	return id, nil
}

func listQuery(c echo.Context) repository.ListQuery {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return repository.ListQuery{
		Page:   page,
		Limit:  limit,
		Search: strings.TrimSpace(c.QueryParam("search")),
		All:    c.QueryParam("all") == "true",
	}
}

// queryUint parses an optional numeric filter; a malformed value is ignored.
func queryUint(c echo.Context, name string) *uint64 {
	v, err := strconv.ParseUint(c.QueryParam(name), 10, 64)
	if err != nil || v == 0 {
		return nil
	}
	return &v
}

func queryInt(c echo.Context, name string) *int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return nil
	}
	return &v
}

func queryBool(c echo.Context, name string) *bool {
	v, err := strconv.ParseBool(c.QueryParam(name))
	if err != nil {
		return nil
	}
	return &v
}

func queryDate(c echo.Context, name string) *model.Date {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		return nil
	}
	return &d
}
