package config

type App struct {
	Port        string `env:"APP_PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	Env         string `env:"APP_ENV" default:"dev"`

	JWT    JWT
	Twilio Twilio
}

type JWT struct {
	Secret            string `env:"JWT_SECRET,required"`
	Issuer            string `env:"JWT_ISSUER" default:"MarketingAPI"`
	Audience          string `env:"JWT_AUDIENCE" default:"MarketingAPIClients"`
	ExpirationMinutes int    `env:"JWT_EXPIRATION_MINUTES" default:"60"`
}

type Twilio struct {
	AccountSID          string `env:"TWILIO_ACCOUNT_SID,required"`
	AuthToken           string `env:"TWILIO_AUTH_TOKEN,required"`
	PhoneNumber         string `env:"TWILIO_PHONE_NUMBER"`
	MessagingServiceSID string `env:"TWILIO_MESSAGING_SERVICE_SID"`
	ValidateRequests    bool   `env:"TWILIO_VALIDATE_REQUESTS" default:"true"`
	DefaultCountryCode  string `env:"DEFAULT_COUNTRY_CODE" default:"+1"`
}
