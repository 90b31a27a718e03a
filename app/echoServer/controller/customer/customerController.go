package customer

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	customersvc "github.com/Tome326/MarketingAPI/service/customer"
)

type Controller struct {
	Svc customersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /api/customers (anonymous signup)
func (ct *Controller) Add(c echo.Context) error {
	var req AddCustomerReq
	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		ct.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}
	birthday, ok := parseBirthday(req.Birthday)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid birthday")
	}

	cust, err := ct.Svc.Add(c.Request().Context(), customersvc.AddReq{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Birthday:    birthday,
		Interest:    req.Interest,
		AgreeToSms:  req.AgreeToSms,
	})
	if err != nil {
		switch {
		case errors.Is(err, customersvc.ErrEmailTaken),
			errors.Is(err, customersvc.ErrPhoneTaken),
			errors.Is(err, customersvc.ErrBadInput):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			ct.Log.Error("customer add failed", "err", err, "path", c.Path())
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	ct.Log.Info("customer registered", "name", cust.Name)

	return c.NoContent(http.StatusOK)
}

// GET /api/customers
func (ct *Controller) List(c echo.Context) error {
	customers, err := ct.Svc.List(c.Request().Context())
	if err != nil {
		ct.Log.Error("customer list failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	out := make([]CustomerResp, 0, len(customers))
	for i := range customers {
		out = append(out, toResp(&customers[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// GET /api/customers/:id
func (ct *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	cust, err := ct.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		return ct.mapReadErr(c, err, "customer detail failed")
	}
	return c.JSON(http.StatusOK, toResp(cust))
}

// GET /api/customers/by_email/:email
func (ct *Controller) DetailByEmail(c echo.Context) error {
	email := c.Param("email")
	cust, err := ct.Svc.ByEmail(c.Request().Context(), email)
	if err != nil {
		return ct.mapReadErr(c, err, "customer detail by email failed")
	}
	return c.JSON(http.StatusOK, toResp(cust))
}

// DELETE /api/customers/:id
func (ct *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := ct.Svc.DeleteByID(c.Request().Context(), id); err != nil {
		return ct.mapReadErr(c, err, "customer delete failed")
	}
	ct.Log.Info("customer deleted", "id", id)
	return c.NoContent(http.StatusNoContent)
}

// DELETE /api/customers/by_email/:email
func (ct *Controller) DeleteByEmail(c echo.Context) error {
	email := c.Param("email")
	if err := ct.Svc.DeleteByEmail(c.Request().Context(), email); err != nil {
		return ct.mapReadErr(c, err, "customer delete by email failed")
	}
	ct.Log.Info("customer deleted", "email", email)
	return c.NoContent(http.StatusNoContent)
}

// GET /api/customers/metrics
func (ct *Controller) Metrics(c echo.Context) error {
	m, err := ct.Svc.Metrics(c.Request().Context())
	if err != nil {
		ct.Log.Error("customer metrics failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, m)
}

// GET /api/customers/interests
func (ct *Controller) Interests(c echo.Context) error {
	interests, err := ct.Svc.Interests(c.Request().Context())
	if err != nil {
		ct.Log.Error("customer interests failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if interests == nil {
		interests = []string{}
	}
	return c.JSON(http.StatusOK, interests)
}

func (ct *Controller) mapReadErr(c echo.Context, err error, logMsg string) error {
	if errors.Is(err, customersvc.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	ct.Log.Error(logMsg, "err", err, "path", c.Path())
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}
