// Package main MarketingAPI.
//
// @title           Marketing API
// @version         1.0
// @description     Marketing-data service (users, customers, SMS campaigns).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Tome326/MarketingAPI/app/echoServer"
	authctrl "github.com/Tome326/MarketingAPI/app/echoServer/controller/auth"
	customerctrl "github.com/Tome326/MarketingAPI/app/echoServer/controller/customer"
	smsctrl "github.com/Tome326/MarketingAPI/app/echoServer/controller/sms"
	userctrl "github.com/Tome326/MarketingAPI/app/echoServer/controller/user"
	"github.com/Tome326/MarketingAPI/app/echoServer/validation"
	"github.com/Tome326/MarketingAPI/config"
	customerrepo "github.com/Tome326/MarketingAPI/repository/customer"
	twiliorepo "github.com/Tome326/MarketingAPI/repository/twilio"
	userrepo "github.com/Tome326/MarketingAPI/repository/user"
	authsvc "github.com/Tome326/MarketingAPI/service/auth"
	customersvc "github.com/Tome326/MarketingAPI/service/customer"
	smssvc "github.com/Tome326/MarketingAPI/service/sms"
	usersvc "github.com/Tome326/MarketingAPI/service/user"
	"github.com/Tome326/MarketingAPI/util/database"
)

func main() {

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, relying on OS environment")
	}

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	cr := customerrepo.New(db)
	tw := twiliorepo.NewHTTP(cfg.Twilio)

	// services
	as := authsvc.New(ur, cfg.JWT)
	us := usersvc.New(ur)
	cs := customersvc.New(cr, cfg.Twilio.DefaultCountryCode)
	ss := smssvc.New(tw, cr, log)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	userC := &userctrl.Controller{Svc: us, Log: log}
	customerC := &customerctrl.Controller{Svc: cs, V: v, Log: log}
	smsC := &smsctrl.Controller{Svc: ss, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:     authC,
		User:     userC,
		Customer: customerC,
		Sms:      smsC,

		JWT: cfg.JWT,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
