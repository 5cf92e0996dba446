package user

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicmanager/clinicmanager/internal/platform/auth"
	"github.com/clinicmanager/clinicmanager/internal/platform/errs"
)

// AuthHandler serves login, logout and registration. Browser clients get the
// token in an httpOnly cookie, API clients can use the body token as a bearer
// credential instead.
type AuthHandler struct {
	svc    *Service
	issuer *auth.Issuer
}

func NewAuthHandler(svc *Service, issuer *auth.Issuer) *AuthHandler {
	return &AuthHandler{svc: svc, issuer: issuer}
}

// RegisterRoutes wires the auth endpoints. Login and logout are reachable
// without a token, register and me sit behind the JWT middleware.
func (h *AuthHandler) RegisterRoutes(public, protected *echo.Group) {
	public.POST("/auth/login", h.Login)
	public.POST("/auth/logout", h.Logout)
	protected.POST("/auth/register", h.Register, auth.RequireRole(RoleAdmin))
	protected.GET("/auth/me", h.Me)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	FullName    string `json:"fullName"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	u, err := h.svc.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return errs.HTTP(err)
	}

	token, expires, err := h.issuer.Issue(u.ID, u.Role, u.Email)
	if err != nil {
		return errs.HTTP(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Expires:  expires,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	return c.JSON(http.StatusOK, map[string]interface{}{
		"token":   token,
		"expires": expires,
		"user":    u,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out successfully"})
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	u := &User{
		FullName:    req.FullName,
		Username:    req.Username,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
	}
	if err := h.svc.Register(c.Request().Context(), u, req.Password); err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *AuthHandler) Me(c echo.Context) error {
	ctx := c.Request().Context()
	u, err := h.svc.Get(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, u)
}
