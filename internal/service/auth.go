package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/iliyamo/civil-registry/internal/authz"
	"github.com/iliyamo/civil-registry/internal/model"
	"github.com/iliyamo/civil-registry/internal/observability/metrics"
	"github.com/iliyamo/civil-registry/internal/repository"
	"github.com/iliyamo/civil-registry/internal/utils"
)

// AuthConfig is the token and hashing configuration of AuthService.
type AuthConfig struct {
	JWTSecret      string
	AccessTTLMin   int
	RefreshTTLDays int
	BcryptCost     int
}

// AuthService issues and revokes tokens and resolves the caller of a
// request.
type AuthService struct {
	cfg    AuthConfig
	users  UserStore
	tokens TokenStore
	audit  *Recorder
	logger *slog.Logger
	now    func() time.Time
}

type AuthOption func(s *AuthService)

func WithAuthLogger(logger *slog.Logger) AuthOption {
	return func(s *AuthService) { s.logger = logger }
}

func NewAuthService(cfg AuthConfig, users UserStore, tokens TokenStore, audit *Recorder, opts ...AuthOption) *AuthService {
	s := &AuthService{cfg: cfg, users: users, tokens: tokens, audit: audit, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SessionUser is the account summary returned with a token pair.
type SessionUser struct {
	ID       uint64           `json:"id"`
	FullName string           `json:"fullName"`
	Email    string           `json:"email"`
	Role     model.Role       `json:"role"`
	Mairie   *model.MairieRef `json:"mairie"`
}

// Session is the payload of a successful login or refresh.
type Session struct {
	User         SessionUser `json:"user"`
	Token        string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
	ExpiresAt    time.Time   `json:"expiresAt"`
}

// Profile is the payload of GET /auth/me.
type Profile struct {
	ID          uint64        `json:"id"`
	FullName    string        `json:"fullName"`
	Email       string        `json:"email"`
	Telephone   *string       `json:"telephone"`
	Role        model.Role    `json:"role"`
	Avatar      *string       `json:"avatar"`
	Mairie      *model.Mairie `json:"mairie"`
	LastLoginAt *time.Time    `json:"lastLoginAt"`
}

// Login verifies credentials and opens a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	c := checks{}
	c.email("email", email)
	c.required("password", password)
	if err := c.err(); err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.ObserveLogin("invalid")
			return nil, ErrIdentifiants
		}
		return nil, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		metrics.ObserveLogin("invalid")
		return nil, ErrIdentifiants
	}
	if !u.IsActive {
		metrics.ObserveLogin("disabled")
		return nil, ErrCompteDesactive
	}

	now := s.now().UTC()
	if err := s.users.TouchLogin(ctx, u.ID, now); err != nil {
		s.logger.Warn("last login update failed", slog.Uint64("user_id", u.ID), slog.Any("error", err))
	} else {
		u.LastLoginAt = &now
	}

	sess, err := s.issue(ctx, u)
	if err != nil {
		return nil, err
	}
	metrics.ObserveLogin("ok")

	p := principalOf(u)
	s.audit.Record(ctx, Entry{
		Actor:       &p,
		Action:      model.ActionLogin,
		EntityType:  model.EntityUser,
		EntityID:    u.ID,
		Description: "Connexion de l'utilisateur " + u.FullName,
	})
	return sess, nil
}

// Refresh validates a refresh token, revokes it and returns a new pair.
func (s *AuthService) Refresh(ctx context.Context, raw string) (*Session, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &ValidationError{Fields: map[string]string{"refreshToken": "Ce champ est requis"}}
	}
	hash := utils.HashRefreshRaw(raw)
	userID, err := s.tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionInvalide
		}
		return nil, err
	}
	if err := s.tokens.RevokeByHash(ctx, hash); err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionInvalide
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrCompteDesactive
	}
	return s.issue(ctx, u)
}

func (s *AuthService) issue(ctx context.Context, u *model.User) (*Session, error) {
	access, err := utils.NewAccessToken(s.cfg.JWTSecret, u.ID, string(u.Role), u.MairieID, s.cfg.AccessTTLMin)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := utils.NewRefreshToken(s.cfg.RefreshTTLDays)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	if err := s.tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	su := SessionUser{ID: u.ID, FullName: u.FullName, Email: u.Email, Role: u.Role}
	if u.Mairie != nil {
		su.Mairie = &model.MairieRef{ID: u.Mairie.ID, Nom: u.Mairie.Nom}
	}
	return &Session{User: su, Token: access.Token, RefreshToken: refresh.Raw, ExpiresAt: access.Exp}, nil
}

// Logout revokes the presented access token and every refresh token of
// the caller.
func (s *AuthService) Logout(ctx context.Context, p authz.Principal, jti string, exp time.Time) error {
	if jti != "" {
		if err := s.tokens.RevokeAccess(ctx, jti, p.UserID, exp); err != nil {
			return err
		}
	}
	if err := s.tokens.RevokeAllForUser(ctx, p.UserID); err != nil {
		return err
	}
	s.audit.Record(ctx, Entry{
		Actor:       &p,
		Action:      model.ActionLogout,
		EntityType:  model.EntityUser,
		EntityID:    p.UserID,
		Description: "Déconnexion de l'utilisateur " + p.FullName,
	})
	return nil
}

// Authenticate resolves the principal behind a verified access token. A
// revoked token, a deleted account or a disabled account is rejected.
func (s *AuthService) Authenticate(ctx context.Context, userID uint64, jti string) (*authz.Principal, error) {
	if jti != "" {
		revoked, err := s.tokens.IsRevoked(ctx, jti)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrSessionInvalide
		}
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionInvalide
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrCompteDesactive
	}
	p := principalOf(u)
	return &p, nil
}

// Me returns the caller's profile.
func (s *AuthService) Me(ctx context.Context, p authz.Principal) (*Profile, error) {
	u, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	return &Profile{
		ID: u.ID, FullName: u.FullName, Email: u.Email, Telephone: u.Telephone,
		Role: u.Role, Avatar: u.Avatar, Mairie: u.Mairie, LastLoginAt: u.LastLoginAt,
	}, nil
}

// ChangePassword replaces the caller's password after checking the
// current one, then signs out every other session.
func (s *AuthService) ChangePassword(ctx context.Context, p authz.Principal, current, next string) error {
	c := checks{}
	c.required("currentPassword", current)
	c.password("newPassword", next)
	if err := c.err(); err != nil {
		return err
	}
	u, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return err
	}
	if !utils.VerifyPassword(u.PasswordHash, current) {
		return model.ErrMotDePasseIncorrect
	}
	hash, err := utils.HashPassword(next, s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.SetPassword(ctx, u.ID, hash); err != nil {
		return err
	}
	if err := s.tokens.RevokeAllForUser(ctx, u.ID); err != nil {
		s.logger.Warn("refresh token revocation failed", slog.Uint64("user_id", u.ID), slog.Any("error", err))
	}
	s.audit.Record(ctx, Entry{
		Actor:       &p,
		Action:      model.ActionPasswordChange,
		EntityType:  model.EntityUser,
		EntityID:    u.ID,
		Description: "Changement de mot de passe",
	})
	return nil
}

// ForgotPasswordMessage is returned whether or not the email is known.
const ForgotPasswordMessage = "Si cet email existe, un lien de réinitialisation a été envoyé."

// ForgotPassword records a reset request for a known account. It never
// reveals whether the account exists; only malformed input is an error.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	c := checks{}
	c.email("email", email)
	if err := c.err(); err != nil {
		return err
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("password reset lookup failed", slog.Any("error", err))
		}
		return nil
	}
	s.audit.Record(ctx, Entry{
		Action:      model.ActionPasswordResetRequest,
		EntityType:  model.EntityUser,
		EntityID:    u.ID,
		MairieID:    u.MairieID,
		Description: "Demande de réinitialisation du mot de passe pour " + u.Email,
	})
	return nil
}

func principalOf(u *model.User) authz.Principal {
	return authz.Principal{UserID: u.ID, FullName: u.FullName, Role: u.Role, MairieID: u.MairieID}
}
