package jwtx

import (
	"errors"

	"github.com/labstack/echo/v4"

	jwtutil "github.com/Tome326/MarketingAPI/util/jwt"
)

func claims(c echo.Context) (*jwtutil.Claims, error) {
	cl, ok := c.Get("user").(*jwtutil.Claims)
	if !ok || cl == nil {
		return nil, errors.New("no jwt claims in context")
	}
	return cl, nil
}

func UserIDFromContext(c echo.Context) (int64, error) {
	cl, err := claims(c)
	if err != nil {
		return 0, err
	}
	return cl.UserID()
}

func EmailFromContext(c echo.Context) (string, error) {
	cl, err := claims(c)
	if err != nil {
		return "", err
	}
	if cl.Email == "" {
		return "", errors.New("email missing in claims")
	}
	return cl.Email, nil
}
