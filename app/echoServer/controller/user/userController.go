package user

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Tome326/MarketingAPI/app/echoServer/jwtx"
	usersvc "github.com/Tome326/MarketingAPI/service/user"
)

type Controller struct {
	Svc usersvc.Service
	Log *slog.Logger
}

// GET /api/users/me
func (ct *Controller) Me(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	u, err := ct.Svc.ByID(c.Request().Context(), uid)
	if err != nil {
		if errors.Is(err, usersvc.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "not found")
		}
		ct.Log.Error("get current user failed", "err", err, "uid", uid)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, u)
}

// GET /api/users
func (ct *Controller) List(c echo.Context) error {
	users, err := ct.Svc.List(c.Request().Context())
	if err != nil {
		ct.Log.Error("user list failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, users)
}

// GET /api/users/:id
func (ct *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	u, err := ct.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, usersvc.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "not found")
		}
		ct.Log.Error("user detail failed", "err", err, "id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, u)
}

// DELETE /api/users/:id
func (ct *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := ct.Svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, usersvc.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "not found")
		}
		ct.Log.Error("user delete failed", "err", err, "id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	ct.Log.Info("user deleted", "id", id)
	return c.NoContent(http.StatusNoContent)
}
