package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/civil-registry/internal/middleware"
	"github.com/iliyamo/civil-registry/internal/service"
)

// AuthHandler serves /api/auth.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler { return &AuthHandler{auth: auth} }

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordReq struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type forgotPasswordReq struct {
	Email string `json:"email"`
}

// Login: POST /api/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	sess, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Connexion réussie", sess)
}

// Refresh rotates the refresh token: POST /api/auth/refresh.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	sess, err := h.auth.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return err
	}
	return ok(c, sess)
}

// ForgotPassword answers the same way whether or not the email exists.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.auth.ForgotPassword(ctx, req.Email); err != nil {
		return err
	}
	return respond(c, http.StatusOK, service.ForgotPasswordMessage, nil)
}

// Logout revokes the access token of the request and every refresh token
// of the caller.
func (h *AuthHandler) Logout(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	jti, exp := middleware.TokenFrom(c)
	if err := h.auth.Logout(ctx, p, jti, exp); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Déconnexion réussie", nil)
}

func (h *AuthHandler) Me(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	profile, err := h.auth.Me(ctx, p)
	if err != nil {
		return notFound(err, "Utilisateur non trouvé")
	}
	return ok(c, profile)
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	p, err := caller(c)
	if err != nil {
		return err
	}
	var req changePasswordReq
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.auth.ChangePassword(ctx, p, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Mot de passe modifié avec succès", nil)
}
