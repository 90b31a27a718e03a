package sms

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	smssvc "github.com/Tome326/MarketingAPI/service/sms"
)

type Controller struct {
	Svc smssvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type SendReq struct {
	Recipient string `json:"recipient" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

type BulkSendReq struct {
	MessageTemplate string `json:"messageTemplate" validate:"required"`
	RecipientTag    string `json:"recipientTag" validate:"required"`
}

// POST /api/sms/send
func (ct *Controller) Send(c echo.Context) error {
	var req SendReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	resp, err := ct.Svc.Send(c.Request().Context(), req.Recipient, req.Message)
	if err != nil {
		ct.Log.Error("sms send failed", "recipient", req.Recipient, "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	ct.Log.Info("sms sent", "sid", resp.MessageSID)

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"messageSid": resp.MessageSID,
		"status":     resp.Status,
	})
}

// POST /api/sms/bulk
func (ct *Controller) SendBulk(c echo.Context) error {
	var req BulkSendReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	res, err := ct.Svc.SendBulk(c.Request().Context(), req.MessageTemplate, req.RecipientTag)
	if err != nil {
		var noRecipients *smssvc.NoRecipientsError
		switch {
		case errors.Is(err, smssvc.ErrBadTag), errors.As(err, &noRecipients):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			ct.Log.Error("bulk sms failed", "tag", req.RecipientTag, "err", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	ct.Log.Info("bulk sms dispatched",
		"tag", req.RecipientTag,
		"total", res.TotalRecipients,
		"successful", res.Successful,
		"failed", res.Failed,
	)

	return c.JSON(http.StatusOK, res)
}

const emptyTwiML = `<?xml version="1.0" encoding="UTF-8"?><Response></Response>`

// POST /api/sms/sms — Twilio inbound message webhook. Replies with an empty
// TwiML document; the message body is not processed yet.
func (ct *Controller) Receive(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	params := make(map[string]string, len(form))
	for k := range form {
		params[k] = form.Get(k)
	}

	reqURL := c.Scheme() + "://" + c.Request().Host + c.Request().RequestURI
	sig := c.Request().Header.Get("X-Twilio-Signature")

	if err := ct.Svc.Receive(sig, reqURL, params); err != nil {
		ct.Log.Warn("webhook rejected", "err", err, "ip", c.RealIP())
		return echo.NewHTTPError(http.StatusForbidden, "invalid signature")
	}

	return c.Blob(http.StatusOK, "text/xml", []byte(emptyTwiML))
}
