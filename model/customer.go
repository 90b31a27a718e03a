package model

import "time"

type Customer struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Birthday    time.Time `json:"birthday"`
	Interest    string    `json:"interest"`
	AgreeToSms  bool      `json:"agree_to_sms"`
}
