package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fitflow/fitflow-web/internal/core/domain"
	"github.com/fitflow/fitflow-web/internal/core/ports"
)

const (
	msgProfileUpdated      = "Profile updated successfully."
	msgProfileUpdateFailed = "Failed to update profile."
	msgAdminUpdateFailed   = "Update failed!"
)

type ProfileHandler struct {
	profiles   ports.ProfileService
	dashboards ports.DashboardService
}

func NewProfileHandler(profiles ports.ProfileService, dashboards ports.DashboardService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, dashboards: dashboards}
}

type profileForm struct {
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Email     string `form:"email" validate:"omitempty,email" label:"Email"`
	Phone     string `form:"phone"`
}

type adminProfileForm struct {
	Name        string `form:"name"`
	Email       string `form:"email" validate:"omitempty,email" label:"Email"`
	OldPassword string `form:"old_password" validate:"required_with=NewPassword" label:"Current password"`
	NewPassword string `form:"new_password" validate:"omitempty,min=6" label:"New password"`
}

// ClientPage prefills the profile form with the client's current details.
func (h *ProfileHandler) ClientPage(c echo.Context) error {
	form := &profileForm{}
	p := newPage(c, "Update Profile", form)

	dash, err := h.dashboards.Client(c.Request().Context(), sessionID(c))
	if err != nil {
		return fail(c, "update_profile", p, err, msgProfileUpdateFailed)
	}
	form.FirstName = dash.Client.FirstName
	form.LastName = dash.Client.LastName
	form.Email = dash.Client.Email
	form.Phone = dash.Client.Phone
	return c.Render(http.StatusOK, "update_profile", p)
}

func (h *ProfileHandler) UpdateClient(c echo.Context) error {
	form := &profileForm{}
	p := newPage(c, "Update Profile", form)
	if err := c.Bind(form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if ok, err := validate(c, form, "update_profile", "update_profile", p, domain.MsgFixErrors); !ok {
		return err
	}

	msg, err := h.profiles.UpdateClient(c.Request().Context(), sessionID(c), ports.UpdateProfileInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Phone:     form.Phone,
	})
	if err != nil {
		return fail(c, "update_profile", p, err, msgProfileUpdateFailed)
	}
	p.Succeed(orDefault(msg, msgProfileUpdated))
	return c.Render(http.StatusOK, "update_profile", p)
}

func (h *ProfileHandler) AdminPage(c echo.Context) error {
	return c.Render(http.StatusOK, "update_admin", newPage(c, "Update Admin Profile", &adminProfileForm{}))
}

func (h *ProfileHandler) UpdateAdmin(c echo.Context) error {
	form := &adminProfileForm{}
	p := newPage(c, "Update Admin Profile", form)
	if err := c.Bind(form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if ok, err := validate(c, form, "update_admin", "update_admin", p, domain.MsgFixErrors); !ok {
		return err
	}

	msg, err := h.profiles.UpdateAdmin(c.Request().Context(), sessionID(c), ports.UpdateAdminInput{
		Name:        form.Name,
		Email:       form.Email,
		OldPassword: form.OldPassword,
		NewPassword: form.NewPassword,
	})
	if err != nil {
		return fail(c, "update_admin", p, err, msgAdminUpdateFailed)
	}
	p.Form = &adminProfileForm{Name: form.Name, Email: form.Email}
	p.Succeed(orDefault(msg, msgProfileUpdated))
	return c.Render(http.StatusOK, "update_admin", p)
}
