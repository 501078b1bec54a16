package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/civil-registry/internal/authz"
	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/repository"
	"github.com/iliyamo/civil-registry/internal/service"
)

func TestErrorResponse(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"http error", echo.NewHTTPError(http.StatusNotFound, "Mariage non trouvé"), 404, "Mariage non trouvé"},
		{"validation", &service.ValidationError{Fields: map[string]string{"nom": "requis"}}, 422, msgDonnees},
		{"auth", service.ErrIdentifiants, 401, service.ErrIdentifiants.Msg},
		{"policy", fmt.Errorf("check: %w", authz.ErrForbidden), 403, msgAccesRefuse},
		{"store forbidden", repository.ErrForbidden, 403, msgAccesRefuse},
		{"not found", repository.ErrNotFound, 404, msgNonTrouve},
		{"rule", model.ErrMariageDejaValide, 400, "Ce mariage est déjà validé"},
		{"duplicate", repository.ErrDuplicate, 400, msgConflit},
		{"dependents", repository.ErrHasDependents, 400, msgConflit},
		{"unexpected", errors.New("connection reset"), 500, msgErreurInterne},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := errorResponse(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.msg, body.Message)
			assert.False(t, body.Success)
			assert.Equal(t, tc.status, StatusOf(tc.err))
		})
	}
}

func TestErrorHandlerWritesEnvelope(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	e.Match([]string{http.MethodGet, http.MethodHead}, "/boom", func(c echo.Context) error {
		return &service.ValidationError{Fields: map[string]string{"email": "Email invalide"}}
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Email invalide", body.Errors["email"])

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/boom", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestRequestHelpers(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?page=2&limit=5&search=+ngono+&all=true&mairie_id=x&annee=2024&is_active=false&date_debut=2024-02-30", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	q := listQuery(c)
	assert.Equal(t, repository.ListQuery{Page: 2, Limit: 5, Search: "ngono", All: true}, q)
	assert.Nil(t, queryUint(c, "mairie_id"))
	require.NotNil(t, queryInt(c, "annee"))
	assert.Equal(t, 2024, *queryInt(c, "annee"))
	require.NotNil(t, queryBool(c, "is_active"))
	assert.False(t, *queryBool(c, "is_active"))
	assert.Nil(t, queryDate(c, "date_debut"))

	c.SetParamNames("id")
	c.SetParamValues("0")
	_, err := idParam(c)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}

func TestBindRejectsMalformedBody(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("{oops"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	var v loginReq
	err := bind(c, &v)
	var ve *service.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "body")
}

func TestNotFoundNamesResource(t *testing.T) {
	err := notFound(repository.ErrNotFound, msgActeNonTrouve)
	status, body := errorResponse(err)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, msgActeNonTrouve, body.Message)

	other := model.ErrActeExiste
	assert.Same(t, other, notFound(other, msgActeNonTrouve))
}
