package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/civil-registry/internal/config"
	"github.com/iliyamo/civil-registry/internal/database"
	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/repository/memory"
	"github.com/iliyamo/civil-registry/internal/service"
)

const testSecret = "router-test-secret"

type apiResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

type RouterSuite struct {
	suite.Suite
	e     *echo.Echo
	store *memory.Store
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	ctx := context.Background()
	store := memory.New()
	s.Require().NoError(database.SeedMemory(ctx, store, bcrypt.MinCost))
	s.store = store

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	audit := service.NewRecorder(store.Audit(), service.WithRecorderLogger(logger))
	s.e = New(Deps{
		Auth: service.NewAuthService(service.AuthConfig{
			JWTSecret: testSecret, AccessTTLMin: 15, RefreshTTLDays: 7, BcryptCost: bcrypt.MinCost,
		}, store.Users(), store.Tokens(), audit, service.WithAuthLogger(logger)),
		Users:     service.NewUserService(store.Users(), store.Mairies(), store.Tokens(), audit, bcrypt.MinCost),
		Geography: service.NewGeographyService(store.Villes(), store.Arrondissements(), store.Mairies(), audit),
		Mariages:  service.NewMariageService(store.Mariages(), store.Mairies(), audit),
		Actes:     service.NewActeService(store.Actes(), audit),
		Dashboard: service.NewDashboardService(store.Dashboard(), store.Mariages(), store.Mairies(), audit),
		JWTSecret: testSecret,
		Cache:     config.CacheConfig{},
		RateLimit: config.RateLimitConfig{},
		Logger:    logger,
	})
}

func (s *RouterSuite) do(method, path, token string, body any) (int, apiResponse) {
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var out apiResponse
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec.Code, out
}

func (s *RouterSuite) login(email string) string {
	code, res := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": database.SeedPassword,
	})
	s.Require().Equal(http.StatusOK, code, res.Message)
	var sess struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refreshToken"`
	}
	s.Require().NoError(json.Unmarshal(res.Data, &sess))
	s.Require().NotEmpty(sess.Token)
	return sess.Token
}

func (s *RouterSuite) createMariage(token string) uint64 {
	code, res := s.do(http.MethodPost, "/api/mariages", token, map[string]any{
		"epoux": map[string]string{
			"nom": "Ngono", "prenom": "Paul", "dateNaissance": "1990-03-12", "lieuNaissance": "Douala",
		},
		"epouse": map[string]string{
			"nom": "Mbarga", "prenom": "Claire", "dateNaissance": "1993-07-01", "lieuNaissance": "Yaoundé",
		},
		"dateMariage": "2024-06-15",
	})
	s.Require().Equal(http.StatusCreated, code, res.Message)
	var m struct {
		ID uint64 `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(res.Data, &m))
	return m.ID
}

func (s *RouterSuite) TestOperationalEndpoints() {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("ok", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec = httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterSuite) TestLoginFailures() {
	code, res := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "agent.dla1@mariage.cm", "password": "wrong-password",
	})
	s.Equal(http.StatusUnauthorized, code)
	s.False(res.Success)
	s.Equal(service.ErrIdentifiants.Msg, res.Message)

	code, res = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "not-an-email"})
	s.Equal(http.StatusUnprocessableEntity, code)
	s.Contains(res.Errors, "email")
	s.Contains(res.Errors, "password")
}

func (s *RouterSuite) TestTokenRequired() {
	code, res := s.do(http.MethodGet, "/api/mariages", "", nil)
	s.Equal(http.StatusUnauthorized, code)
	s.Equal("Token d'authentification manquant", res.Message)

	code, res = s.do(http.MethodGet, "/api/mariages", "garbage", nil)
	s.Equal(http.StatusUnauthorized, code)
	s.Equal(service.ErrSessionInvalide.Msg, res.Message)
}

func (s *RouterSuite) TestMeAndLogout() {
	token := s.login("admin.dla1@mariage.cm")

	code, res := s.do(http.MethodGet, "/api/auth/me", token, nil)
	s.Require().Equal(http.StatusOK, code)
	var me struct {
		Email  string `json:"email"`
		Role   string `json:"role"`
		Mairie struct {
			Nom string `json:"nom"`
		} `json:"mairie"`
	}
	s.Require().NoError(json.Unmarshal(res.Data, &me))
	s.Equal("admin.dla1@mariage.cm", me.Email)
	s.Equal("admin_mairie", me.Role)
	s.Equal("Mairie de Douala 1er", me.Mairie.Nom)

	code, _ = s.do(http.MethodPost, "/api/auth/logout", token, nil)
	s.Require().Equal(http.StatusOK, code)

	code, _ = s.do(http.MethodGet, "/api/auth/me", token, nil)
	s.Equal(http.StatusUnauthorized, code)
}

func (s *RouterSuite) TestConsultationCannotWrite() {
	token := s.login("consult.dla1@mariage.cm")

	code, res := s.do(http.MethodPost, "/api/mariages", token, map[string]any{})
	s.Equal(http.StatusForbidden, code)
	s.Equal("Vous n'avez pas les permissions nécessaires pour accéder à cette ressource", res.Message)

	code, _ = s.do(http.MethodGet, "/api/mariages", token, nil)
	s.Equal(http.StatusOK, code)
}

func (s *RouterSuite) TestMalformedBody() {
	token := s.login("agent.dla1@mariage.cm")

	code, res := s.do(http.MethodPost, "/api/mariages", token, "{not json")
	s.Equal(http.StatusUnprocessableEntity, code)
	s.False(res.Success)
	s.Equal("Données invalides", res.Message)
	s.Contains(res.Errors, "body")

	code, res = s.do(http.MethodPost, "/api/mariages", token, map[string]any{})
	s.Equal(http.StatusUnprocessableEntity, code)
	s.Contains(res.Errors, "dateMariage")

	code, _ = s.do(http.MethodGet, "/api/mariages/abc", token, nil)
	s.Equal(http.StatusBadRequest, code)
}

func (s *RouterSuite) TestForeignTenantIsHidden() {
	id := s.createMariage(s.login("agent.dla1@mariage.cm"))

	code, res := s.do(http.MethodGet, fmt.Sprintf("/api/mariages/%d", id), s.login("agent.yde1@mariage.cm"), nil)
	s.Equal(http.StatusNotFound, code)
	s.Equal("Mariage non trouvé", res.Message)

	code, _ = s.do(http.MethodGet, fmt.Sprintf("/api/mariages/%d", id), s.login("superadmin@mariage.cm"), nil)
	s.Equal(http.StatusOK, code)
}

func (s *RouterSuite) TestMariageToActe() {
	agent := s.login("agent.dla1@mariage.cm")
	admin := s.login("admin.dla1@mariage.cm")
	id := s.createMariage(agent)

	code, _ := s.do(http.MethodPost, fmt.Sprintf("/api/mariages/%d/validate", id), agent, nil)
	s.Equal(http.StatusForbidden, code)
	m, err := s.store.Mariages().GetByID(context.Background(), id)
	s.Require().NoError(err)
	s.Equal(model.MariageBrouillon, m.Statut)
	logs, err := s.store.Audit().Latest(context.Background(), nil, 100)
	s.Require().NoError(err)
	for _, l := range logs {
		s.NotEqual(model.ActionValidate, l.Action)
	}

	code, res := s.do(http.MethodPost, "/api/actes/generate", agent, map[string]uint64{"mariageId": id})
	s.Equal(http.StatusBadRequest, code)
	s.Equal("Le mariage doit être validé avant de générer un acte", res.Message)

	code, _ = s.do(http.MethodPost, fmt.Sprintf("/api/mariages/%d/validate", id), admin, nil)
	s.Require().Equal(http.StatusOK, code)

	code, res = s.do(http.MethodPost, "/api/actes/generate", agent, map[string]uint64{"mariageId": id})
	s.Require().Equal(http.StatusCreated, code, res.Message)
	var acte struct {
		ID         uint64 `json:"id"`
		NumeroActe string `json:"numeroActe"`
		Statut     string `json:"statut"`
	}
	s.Require().NoError(json.Unmarshal(res.Data, &acte))
	s.NotEmpty(acte.NumeroActe)
	s.Equal("brouillon", acte.Statut)

	code, res = s.do(http.MethodPost, "/api/actes/generate", agent, map[string]uint64{"mariageId": id})
	s.Equal(http.StatusBadRequest, code)
	s.Equal("Un acte existe déjà pour ce mariage", res.Message)
	var existing struct {
		NumeroActe string `json:"numeroActe"`
	}
	s.Require().NoError(json.Unmarshal(res.Data, &existing))
	s.Equal(acte.NumeroActe, existing.NumeroActe)

	code, _ = s.do(http.MethodPost, "/api/actes/generate", agent, map[string]uint64{"mariageId": 9999})
	s.Equal(http.StatusNotFound, code)

	code, _ = s.do(http.MethodPost, fmt.Sprintf("/api/actes/%d/validate", acte.ID), admin, nil)
	s.Equal(http.StatusOK, code)
	code, res = s.do(http.MethodPost, fmt.Sprintf("/api/actes/%d/print", acte.ID), agent, nil)
	s.Equal(http.StatusOK, code)
	s.Equal("Acte marqué comme imprimé", res.Message)
}

func (s *RouterSuite) TestMariageRoundTrip() {
	token := s.login("agent.dla1@mariage.cm")
	epoux := map[string]any{
		"nom": "Ngono", "prenom": "Paul", "dateNaissance": "1990-03-12", "lieuNaissance": "Douala",
		"nationalite": "Camerounaise", "profession": "Enseignant", "adresse": "Akwa",
		"nomPere": "Ngono Jean", "nomMere": "Ebode Marie",
	}
	epouse := map[string]any{
		"nom": "Mbarga", "prenom": "Claire", "dateNaissance": "1993-07-01", "lieuNaissance": "Yaoundé",
		"nationalite": "Camerounaise", "profession": "Infirmière", "adresse": "Bonapriso",
		"nomPere": "Mbarga Luc", "nomMere": "Atangana Rose",
	}
	payload := map[string]any{
		"epoux": epoux, "epouse": epouse,
		"dateMariage": "2024-06-15", "heureMariage": "14h30", "lieuMariage": "Salle des fêtes",
		"regimeMatrimonial": "séparation de biens",
		"temoin1Nom": "Eto'o", "temoin1Prenom": "Samuel", "temoin2Nom": "Milla", "temoin2Prenom": "Roger",
		"officierNom": "Mme Ndzana", "officierFonction": "Maire adjoint", "observations": "RAS",
	}
	code, res := s.do(http.MethodPost, "/api/mariages", token, payload)
	s.Require().Equal(http.StatusCreated, code, res.Message)
	var created struct {
		ID uint64 `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(res.Data, &created))

	code, res = s.do(http.MethodGet, fmt.Sprintf("/api/mariages/%d", created.ID), token, nil)
	s.Require().Equal(http.StatusOK, code)
	var got map[string]any
	s.Require().NoError(json.Unmarshal(res.Data, &got))
	for k, v := range payload {
		if k == "epoux" || k == "epouse" {
			continue
		}
		s.Equal(v, got[k], k)
	}
	for _, side := range []string{"epoux", "epouse"} {
		want := payload[side].(map[string]any)
		have, ok := got[side].(map[string]any)
		s.Require().True(ok, side)
		for k, v := range want {
			s.Equal(v, have[k], side+"."+k)
		}
	}
	s.Equal("brouillon", got["statut"])
}

func (s *RouterSuite) TestGeographyAdministration() {
	super := s.login("superadmin@mariage.cm")

	code, res := s.do(http.MethodPost, "/api/villes", super, map[string]string{"nom": "Garoua", "code": "gra"})
	s.Require().Equal(http.StatusCreated, code, res.Message)

	code, res = s.do(http.MethodGet, "/api/villes?all=true", super, nil)
	s.Require().Equal(http.StatusOK, code)
	var villes []struct {
		Nom string `json:"nom"`
	}
	s.Require().NoError(json.Unmarshal(res.Data, &villes))
	s.Len(villes, 4)

	code, _ = s.do(http.MethodPost, "/api/villes", s.login("admin.dla1@mariage.cm"), map[string]string{"nom": "Maroua"})
	s.Equal(http.StatusForbidden, code)
}

func (s *RouterSuite) TestDashboardPerRole() {
	code, res := s.do(http.MethodGet, "/api/dashboard", s.login("superadmin@mariage.cm"), nil)
	s.Require().Equal(http.StatusOK, code)
	var dash struct {
		Statistiques map[string]int64 `json:"statistiques"`
	}
	s.Require().NoError(json.Unmarshal(res.Data, &dash))
	s.EqualValues(4, dash.Statistiques["totalMairies"])

	code, _ = s.do(http.MethodGet, "/api/dashboard/stats?periode=jour", s.login("consult.dla1@mariage.cm"), nil)
	s.Equal(http.StatusOK, code)
}
