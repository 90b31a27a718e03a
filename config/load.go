package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

func Load() App {
	cfg := App{
		Port:        getenv("APP_PORT", "8080"),
		DatabaseURL: must("DATABASE_URL"),
		Env:         getenv("APP_ENV", "dev"),
		JWT: JWT{
			Secret:            must("JWT_SECRET"),
			Issuer:            getenv("JWT_ISSUER", "MarketingAPI"),
			Audience:          getenv("JWT_AUDIENCE", "MarketingAPIClients"),
			ExpirationMinutes: getint("JWT_EXPIRATION_MINUTES", 60),
		},
		Twilio: Twilio{
			AccountSID:          must("TWILIO_ACCOUNT_SID"),
			AuthToken:           must("TWILIO_AUTH_TOKEN"),
			PhoneNumber:         os.Getenv("TWILIO_PHONE_NUMBER"),
			MessagingServiceSID: os.Getenv("TWILIO_MESSAGING_SERVICE_SID"),
			ValidateRequests:    getbool("TWILIO_VALIDATE_REQUESTS", true),
			DefaultCountryCode:  getenv("DEFAULT_COUNTRY_CODE", "+1"),
		},
	}

	if !strings.HasPrefix(cfg.Twilio.AccountSID, "AC") {
		slog.Error("TWILIO_ACCOUNT_SID must start with AC")
		panic("invalid TWILIO_ACCOUNT_SID")
	}

	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("bad int env, using default", "key", k, "value", v)
		return def
	}
	return n
}

func getbool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("bad bool env, using default", "key", k, "value", v)
		return def
	}
	return b
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
