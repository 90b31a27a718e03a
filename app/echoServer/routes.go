package echoServer

import (
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	authctrl "github.com/Tome326/MarketingAPI/app/echoServer/controller/auth"
	customerctrl "github.com/Tome326/MarketingAPI/app/echoServer/controller/customer"
	smsctrl "github.com/Tome326/MarketingAPI/app/echoServer/controller/sms"
	userctrl "github.com/Tome326/MarketingAPI/app/echoServer/controller/user"
	"github.com/Tome326/MarketingAPI/config"
	jwtutil "github.com/Tome326/MarketingAPI/util/jwt"
)

type C struct {
	Auth     *authctrl.Controller
	User     *userctrl.Controller
	Customer *customerctrl.Controller
	Sms      *smsctrl.Controller

	JWT config.JWT
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/api")
	pub.POST("/auth/register", c.Auth.Register)
	pub.POST("/auth/login", c.Auth.Login)

	// Anonymous customer signup
	pub.POST("/customers", c.Customer.Add)

	// Twilio inbound webhook, validated by provider signature instead of a
	// bearer token
	pub.POST("/sms/sms", c.Sms.Receive)

	// Auth
	auth := e.Group("/api")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWT.Secret),
		ParseTokenFunc: func(ctx echo.Context, token string) (interface{}, error) {
			return jwtutil.Parse(c.JWT.Secret, c.JWT.Issuer, c.JWT.Audience, token)
		},
	}))

	// Users
	auth.GET("/users/me", c.User.Me)
	auth.GET("/users", c.User.List)
	auth.GET("/users/:id", c.User.Detail)
	auth.DELETE("/users/:id", c.User.Delete)

	// Customers
	auth.GET("/customers", c.Customer.List)
	auth.GET("/customers/metrics", c.Customer.Metrics)
	auth.GET("/customers/interests", c.Customer.Interests)
	auth.GET("/customers/:id", c.Customer.Detail)
	auth.GET("/customers/by_email/:email", c.Customer.DetailByEmail)
	auth.DELETE("/customers/:id", c.Customer.Delete)
	auth.DELETE("/customers/by_email/:email", c.Customer.DeleteByEmail)

	// SMS
	auth.POST("/sms/send", c.Sms.Send)
	auth.POST("/sms/bulk", c.Sms.SendBulk)
}
