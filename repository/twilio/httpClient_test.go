package twiliorepo

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"testing"

	"github.com/Tome326/MarketingAPI/config"
)

func testRepo(validate bool) *httpRepo {
	return NewHTTP(config.Twilio{
		AccountSID:       "ACxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx",
		AuthToken:        "secret-token",
		ValidateRequests: validate,
	}).(*httpRepo)
}

func sign(token, url string, params map[string]string, order []string) string {
	s := url
	for _, k := range order {
		s += k + params[k]
	}
	mac := hmac.New(sha1.New, []byte(token))
	mac.Write([]byte(s))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestValidateSignature(t *testing.T) {
	r := testRepo(true)
	url := "https://example.com/api/sms/sms"
	params := map[string]string{"From": "+14155550100", "Body": "hi"}

	// Twilio signs with parameters concatenated in sorted key order
	good := sign("secret-token", url, params, []string{"Body", "From"})

	if !r.ValidateSignature(good, url, params) {
		t.Error("valid signature rejected")
	}
	if r.ValidateSignature("bogus", url, params) {
		t.Error("bogus signature accepted")
	}
	if r.ValidateSignature(good, "https://example.com/other", params) {
		t.Error("signature accepted for wrong URL")
	}
}

func TestValidateSignature_Disabled(t *testing.T) {
	r := testRepo(false)
	if !r.ValidateSignature("anything", "https://example.com", nil) {
		t.Error("validation disabled should accept any signature")
	}
}
