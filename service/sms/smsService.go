package smssvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Tome326/MarketingAPI/model"
	customerrepo "github.com/Tome326/MarketingAPI/repository/customer"
	twiliorepo "github.com/Tome326/MarketingAPI/repository/twilio"
)

var (
	ErrBadTag       = errors.New("recipient tag must be of the form kind:selector")
	ErrBadSignature = errors.New("invalid webhook signature")
)

// NoRecipientsError means a tag resolved to zero customers. No sends are
// attempted.
type NoRecipientsError struct {
	Tag string
}

func (e *NoRecipientsError) Error() string {
	return fmt.Sprintf("there are no customers that match the tag %s", e.Tag)
}

// SendResult is the per-recipient outcome of one bulk dispatch. It lives only
// for the duration of the request.
type SendResult struct {
	PhoneNumber string `json:"phoneNumber"`
	MessageSID  string `json:"messageSid,omitempty"`
	Status      string `json:"status,omitempty"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

type BulkResult struct {
	TotalRecipients int          `json:"totalRecipients"`
	Successful      int          `json:"successful"`
	Failed          int          `json:"failed"`
	Results         []SendResult `json:"results"`
}

type Service interface {
	Send(ctx context.Context, recipient, message string) (*twiliorepo.SendResp, error)
	SendBulk(ctx context.Context, template, tag string) (*BulkResult, error)
	Receive(signature, url string, params map[string]string) error
}

type service struct {
	gw  twiliorepo.Repo
	cr  customerrepo.Repo
	log *slog.Logger

	// bound on each individual gateway call; a hung send fails that
	// recipient, not the batch
	sendTimeout time.Duration
}

func New(gw twiliorepo.Repo, cr customerrepo.Repo, log *slog.Logger) Service {
	return &service{gw: gw, cr: cr, log: log, sendTimeout: 10 * time.Second}
}

func (s *service) Send(ctx context.Context, recipient, message string) (*twiliorepo.SendResp, error) {
	if strings.TrimSpace(recipient) == "" || message == "" {
		return nil, errors.New("recipient and message are required")
	}
	ctx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()
	return s.gw.SendMessage(ctx, twiliorepo.SendReq{To: recipient, Body: message})
}

func (s *service) SendBulk(ctx context.Context, template, tag string) (*BulkResult, error) {
	customers, err := s.resolveTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, &NoRecipientsError{Tag: tag}
	}

	res := &BulkResult{
		TotalRecipients: len(customers),
		Results:         make([]SendResult, 0, len(customers)),
	}

	for _, c := range customers {
		body := RenderTemplate(template, c.Name)

		sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
		resp, err := s.gw.SendViaService(sendCtx, twiliorepo.SendReq{To: c.PhoneNumber, Body: body})
		cancel()

		if err != nil {
			res.Failed++
			res.Results = append(res.Results, SendResult{
				PhoneNumber: c.PhoneNumber,
				Error:       err.Error(),
			})
			s.log.Error("bulk send: recipient failed", "phone", c.PhoneNumber, "err", err)
			continue
		}

		res.Successful++
		res.Results = append(res.Results, SendResult{
			PhoneNumber: c.PhoneNumber,
			MessageSID:  resp.MessageSID,
			Status:      resp.Status,
			Success:     true,
		})
		s.log.Info("bulk send: message sent", "phone", c.PhoneNumber, "sid", resp.MessageSID)
	}

	return res, nil
}

// resolveTag maps a kind:selector tag to a customer segment. "event" selects
// by interest; "date" is reserved for date-based segmentation and resolves to
// an empty set; any other kind selects every customer.
func (s *service) resolveTag(ctx context.Context, tag string) ([]model.Customer, error) {
	kind, selector, ok := strings.Cut(tag, ":")
	if !ok {
		return nil, ErrBadTag
	}

	switch kind {
	case "event":
		return s.cr.ByInterest(ctx, selector)
	case "date":
		return nil, nil
	default:
		return s.cr.List(ctx)
	}
}

func (s *service) Receive(signature, url string, params map[string]string) error {
	if !s.gw.ValidateSignature(signature, url, params) {
		return ErrBadSignature
	}
	// Inbound content is acknowledged but not processed yet.
	return nil
}
