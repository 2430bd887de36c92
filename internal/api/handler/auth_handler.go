package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fitflow/fitflow-web/internal/core/domain"
	"github.com/fitflow/fitflow-web/internal/core/ports"
)

const (
	msgAdminLoginFailed  = "Login failed! Please check your credentials."
	msgClientLoginFailed = "Incorrect username or password!"
	msgAdminCreated      = "Admin created successfully! Please login."
	msgCreateAdminFailed = "Failed to create admin."
	msgResetFailed       = "Something went wrong. Please try again."
)

// loginScreen describes the two login entry points.
type loginScreen struct {
	Role      string
	Title     string
	Action    string
	Dashboard string
	Fallback  string
}

var (
	adminLogin = loginScreen{
		Role:      domain.RoleAdmin,
		Title:     "Admin Login",
		Action:    "/admin/login",
		Dashboard: "/dashboard/admin",
		Fallback:  msgAdminLoginFailed,
	}
	clientLogin = loginScreen{
		Role:      domain.RoleClient,
		Title:     "Client Login",
		Action:    "/client/login",
		Dashboard: "/dashboard/client",
		Fallback:  msgClientLoginFailed,
	}
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginForm struct {
	Email    string `form:"email" validate:"required,email" label:"Email"`
	Password string `form:"password" validate:"required" label:"Password"`
}

type forgotPasswordForm struct {
	Email string `form:"email" validate:"required,email" label:"Email"`
}

type createAdminForm struct {
	Name     string `form:"name" validate:"required" label:"Name"`
	Email    string `form:"email" validate:"required,email" label:"Email"`
	Password string `form:"password" validate:"required,min=6" label:"Password"`
}

func (h *AuthHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home", newPage(c, "FitFlow", nil))
}

func (h *AuthHandler) AdminLoginPage(c echo.Context) error {
	return h.loginPage(c, adminLogin)
}

func (h *AuthHandler) AdminLogin(c echo.Context) error {
	return h.login(c, adminLogin)
}

func (h *AuthHandler) ClientLoginPage(c echo.Context) error {
	return h.loginPage(c, clientLogin)
}

func (h *AuthHandler) ClientLogin(c echo.Context) error {
	return h.login(c, clientLogin)
}

func (h *AuthHandler) loginPage(c echo.Context, screen loginScreen) error {
	p := newPage(c, screen.Title, &loginForm{})
	p.Data = screen
	return c.Render(http.StatusOK, "login", p)
}

// login stores the issued credential and sends the browser to the role's
// dashboard. A 401 here means bad credentials, not an expired session, so it is
// rendered in place instead of going through the central redirect.
func (h *AuthHandler) login(c echo.Context, screen loginScreen) error {
	form := &loginForm{}
	p := newPage(c, screen.Title, form)
	p.Data = screen
	if err := c.Bind(form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if ok, err := validate(c, form, "login", "login", p, domain.MsgFixErrors); !ok {
		return err
	}

	_, err := h.authService.Login(c.Request().Context(), sessionID(c), screen.Role, form.Email, form.Password)
	if err != nil {
		if apiErr, ok := domain.AsAPIError(err); ok && apiErr.Kind == domain.KindUnauthorized {
			p.Fail(orDefault(apiErr.Message, screen.Fallback))
			return c.Render(http.StatusUnauthorized, "login", p)
		}
		return fail(c, "login", p, err, screen.Fallback)
	}
	return c.Redirect(http.StatusSeeOther, screen.Dashboard)
}

// Logout revokes the session and returns to the landing page.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), sessionID(c)); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) ForgotPasswordPage(c echo.Context) error {
	return c.Render(http.StatusOK, "forgot_password", newPage(c, "Forgot Password", &forgotPasswordForm{}))
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	form := &forgotPasswordForm{}
	p := newPage(c, "Forgot Password", form)
	if err := c.Bind(form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if ok, err := validate(c, form, "forgot_password", "forgot_password", p, domain.MsgFixErrors); !ok {
		return err
	}

	msg, err := h.authService.ForgotPassword(c.Request().Context(), form.Email)
	if err != nil {
		return fail(c, "forgot_password", p, err, msgResetFailed)
	}
	p.Form = &forgotPasswordForm{}
	p.Succeed(msg)
	return c.Render(http.StatusOK, "forgot_password", p)
}

func (h *AuthHandler) CreateAdminPage(c echo.Context) error {
	return c.Render(http.StatusOK, "admin_create", newPage(c, "Create Admin", &createAdminForm{}))
}

// CreateAdmin registers an administrator and shows the admin login with the
// confirmation.
func (h *AuthHandler) CreateAdmin(c echo.Context) error {
	form := &createAdminForm{}
	p := newPage(c, "Create Admin", form)
	if err := c.Bind(form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if ok, err := validate(c, form, "admin_create", "create_admin", p, domain.MsgFixErrors); !ok {
		return err
	}

	msg, err := h.authService.RegisterAdmin(c.Request().Context(), ports.RegisterAdminInput{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		return fail(c, "admin_create", p, err, msgCreateAdminFailed)
	}

	login := newPage(c, adminLogin.Title, &loginForm{Email: form.Email})
	login.Data = adminLogin
	login.Succeed(orDefault(msg, msgAdminCreated))
	return c.Render(http.StatusCreated, "login", login)
}
