package twiliorepo

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/Tome326/MarketingAPI/config"
	"github.com/Tome326/MarketingAPI/util/httpx"
)

type httpRepo struct {
	cfg    config.Twilio
	client *http.Client
}

func NewHTTP(cfg config.Twilio) Repo {
	return &httpRepo{cfg: cfg, client: httpx.Client()}
}

func (r *httpRepo) SendMessage(ctx context.Context, req SendReq) (*SendResp, error) {
	if r.cfg.PhoneNumber == "" {
		return nil, errors.New("twilio: no sending phone number configured")
	}
	form := url.Values{}
	form.Set("To", req.To)
	form.Set("From", r.cfg.PhoneNumber)
	form.Set("Body", req.Body)
	return r.post(ctx, form)
}

func (r *httpRepo) SendViaService(ctx context.Context, req SendReq) (*SendResp, error) {
	if r.cfg.MessagingServiceSID == "" {
		return r.SendMessage(ctx, req)
	}
	form := url.Values{}
	form.Set("To", req.To)
	form.Set("MessagingServiceSid", r.cfg.MessagingServiceSID)
	form.Set("Body", req.Body)
	return r.post(ctx, form)
}

func (r *httpRepo) post(ctx context.Context, form url.Values) (*SendResp, error) {
	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", r.cfg.AccountSID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.SetBasicAuth(r.cfg.AccountSID, r.cfg.AuthToken)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out struct {
		Sid     string `json:"sid"`
		Status  string `json:"status"`
		Message string `json:"message"`
		Code    int    `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("twilio: bad response: %w", err)
	}
	if resp.StatusCode >= 300 {
		if out.Message != "" {
			return nil, fmt.Errorf("twilio: %s (code %d)", out.Message, out.Code)
		}
		return nil, fmt.Errorf("twilio send failed: %s", resp.Status)
	}
	if out.Sid == "" {
		return nil, errors.New("twilio: empty message sid")
	}
	return &SendResp{MessageSID: out.Sid, Status: out.Status}, nil
}

// ValidateSignature checks the X-Twilio-Signature header: HMAC-SHA1 over the
// full request URL followed by the form parameters sorted by key, keyed with
// the auth token, base64 encoded.
func (r *httpRepo) ValidateSignature(signature, reqURL string, params map[string]string) bool {
	if !r.cfg.ValidateRequests {
		return true
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(reqURL)
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(params[k])
	}

	mac := hmac.New(sha1.New, []byte(r.cfg.AuthToken))
	mac.Write([]byte(b.String()))
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
