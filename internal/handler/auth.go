package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/gym-connect/internal/auth"
	"github.com/iliyamo/gym-connect/internal/config"
	"github.com/iliyamo/gym-connect/internal/middleware"
	"github.com/iliyamo/gym-connect/internal/model"
	"github.com/iliyamo/gym-connect/internal/queue"
	"github.com/iliyamo/gym-connect/internal/repository"
	queue_publisher "github.com/iliyamo/gym-connect/internal/service"
	"github.com/iliyamo/gym-connect/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.  The gate does the
// token work; the repositories resolve credentials to the account and
// profile ids that go into claims.
type AuthHandler struct {
	Cfg      config.Config
	Gate     *auth.Gate
	Users    *repository.UserRepo
	Profiles *repository.ProfileRepo
}

func NewAuthHandler(cfg config.Config, g *auth.Gate, u *repository.UserRepo, p *repository.ProfileRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Gate: g, Users: u, Profiles: p}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // gym | trainer | gym_seeker
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type authResp struct {
	UserID  string    `json:"user_id"`
	Role    string    `json:"user_type"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

// authFailure collapses every authentication error into one external signal.
// The internal kind (no credential, bad token, revoked session, store down)
// goes to the debug log only.
func authFailure(c echo.Context, err error) error {
	c.Logger().Debugf("auth failure: %v", err)
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
}

// Register creates the account row and its role profile, then queues the
// verification email.  Tokens are not issued until the email is verified and
// the user logs in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/email/password required"})
	}
	role, err := model.ParseRole(strings.TrimSpace(req.Role))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be gym, trainer or gym_seeker"})
	}

	verifyToken, err := utils.RandomHex(32)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue verification token failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Username, req.Email, req.Password, role, h.Cfg.BcryptCost, verifyToken)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		case errors.Is(err, repository.ErrUsernameExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	pid, err := h.Profiles.CreateForUser(ctx, role, uid, req.Username, "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create profile failed"})
	}

	// Mail delivery is best effort; the publisher logs its own failures and
	// the user can request a resend.
	_ = queue_publisher.PublishVerificationEmail(ctx, queue.VerificationEmailEvent{
		Username:    req.Username,
		Email:       req.Email,
		VerifyToken: verifyToken,
		VerifyURL:   h.Cfg.HostName + "/v1/auth/verify/" + verifyToken,
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"user_id":    strconv.FormatUint(uid, 10),
		"profile_id": strconv.FormatUint(pid, 10),
		"user_type":  role.String(),
		"message":    "verification email sent",
	})
}

// VerifyEmail flips the account behind the emailed token to verified.
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.VerifyByToken(ctx, token); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid verification token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verification failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "success"})
}

// Login verifies the credential, resolves the role profile that will own the
// session, and issues the token pair.  The profile id, not the account id,
// becomes the token subject.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if !u.Verified {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account not verified"})
	}

	pid, err := h.Profiles.IDByUser(ctx, u.Role, u.ID)
	if err != nil {
		// Every verified account owns a profile; a miss here is data damage.
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "profile lookup failed"})
	}

	pair, err := h.Gate.Login(ctx, strconv.FormatUint(pid, 10), strconv.FormatUint(u.ID, 10), u.Role)
	if err != nil {
		return authFailure(c, err)
	}

	setAuthCookies(c, pair, h.Gate.AccessTTL(), h.Gate.RefreshTTL())
	return c.JSON(http.StatusOK, authResp{
		UserID:  strconv.FormatUint(u.ID, 10),
		Role:    u.Role.String(),
		Access:  tokenPart{Token: pair.Access.Token, Expires: pair.Access.ExpiresAt},
		Refresh: tokenPart{Token: pair.Refresh.Token, Expires: pair.Refresh.ExpiresAt},
	})
}

// Refresh exchanges a live refresh token for a new access token without
// rotating the refresh token.  The token may arrive in the refresh_token
// cookie or the JSON body.
func (h *AuthHandler) Refresh(c echo.Context) error {
	raw := refreshTokenFromRequest(c)
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}

	access, err := h.Gate.Refresh(c.Request().Context(), raw)
	if err != nil {
		return authFailure(c, err)
	}

	c.SetCookie(newCookie("access_token", access.Token, h.Gate.AccessTTL(), true))
	c.SetCookie(newCookie("logged_in", "true", h.Gate.AccessTTL(), false))
	return c.JSON(http.StatusOK, echo.Map{
		"access": tokenPart{Token: access.Token, Expires: access.ExpiresAt},
	})
}

// Logout revokes the current session.  The route sits behind the auth
// middleware, so the access token identity is already vetted; the refresh
// token comes from its cookie or the body.  Calling logout twice with the
// same tokens succeeds both times.
func (h *AuthHandler) Logout(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return authFailure(c, auth.ErrNoCredential)
	}
	raw := refreshTokenFromRequest(c)
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}

	if err := h.Gate.Logout(c.Request().Context(), id.TokenID, raw); err != nil {
		return authFailure(c, err)
	}

	clearAuthCookies(c)
	return c.JSON(http.StatusOK, echo.Map{"status": "success"})
}

// Me is a simple protected endpoint exposing the authenticated identity.
func (h *AuthHandler) Me(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return authFailure(c, auth.ErrNoCredential)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"profile_id": id.RoleEntityID,
		"user_id":    id.MainUserID,
		"user_type":  id.Role.String(),
	})
}

// ----- cookie helpers -----

func refreshTokenFromRequest(c echo.Context) string {
	if ck, err := c.Cookie("refresh_token"); err == nil && ck.Value != "" {
		return ck.Value
	}
	var req refreshReq
	_ = c.Bind(&req)
	return strings.TrimSpace(req.RefreshToken)
}

// newCookie builds a cookie with the transport attributes the frontend
// relies on: path /, SameSite Lax, HttpOnly for the two credential cookies
// and a readable logged_in indicator.
func newCookie(name, value string, maxAge time.Duration, httpOnly bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: httpOnly,
		SameSite: http.SameSiteLaxMode,
	}
}

func setAuthCookies(c echo.Context, pair auth.TokenPair, accessTTL, refreshTTL time.Duration) {
	c.SetCookie(newCookie("access_token", pair.Access.Token, accessTTL, true))
	c.SetCookie(newCookie("refresh_token", pair.Refresh.Token, refreshTTL, true))
	c.SetCookie(newCookie("logged_in", "true", accessTTL, false))
}

func clearAuthCookies(c echo.Context) {
	c.SetCookie(newCookie("access_token", "", -time.Second, true))
	c.SetCookie(newCookie("refresh_token", "", -time.Second, true))
	c.SetCookie(newCookie("logged_in", "", -time.Second, false))
}
