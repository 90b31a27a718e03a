package customer

import (
	"time"

	"github.com/Tome326/MarketingAPI/model"
)

type AddCustomerReq struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email,max=200"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Birthday    string `json:"birthday" validate:"required"`
	Interest    string `json:"interest"`
	AgreeToSms  bool   `json:"agree_to_sms"`
}

// CustomerResp is the public projection of a customer record.
type CustomerResp struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Birthday    time.Time `json:"birthday"`
	Interest    string    `json:"interest"`
	AgreeToSms  bool      `json:"agree_to_sms"`
}

func toResp(c *model.Customer) CustomerResp {
	return CustomerResp{
		Name:        c.Name,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Birthday:    c.Birthday,
		Interest:    c.Interest,
		AgreeToSms:  c.AgreeToSms,
	}
}

var birthdayLayouts = []string{"2006-01-02", time.RFC3339}

func parseBirthday(s string) (time.Time, bool) {
	for _, layout := range birthdayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
