package smssvc

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Tome326/MarketingAPI/model"
	customerrepo "github.com/Tome326/MarketingAPI/repository/customer"
	twiliorepo "github.com/Tome326/MarketingAPI/repository/twilio"
)

type fakeGateway struct {
	calls     int
	sentTo    []string
	sentBody  []string
	failFor   map[string]error
	validSig  bool
	lastSig   string
	sidPrefix string
}

var _ twiliorepo.Repo = (*fakeGateway)(nil)

func (g *fakeGateway) SendMessage(ctx context.Context, req twiliorepo.SendReq) (*twiliorepo.SendResp, error) {
	return g.send(req)
}

func (g *fakeGateway) SendViaService(ctx context.Context, req twiliorepo.SendReq) (*twiliorepo.SendResp, error) {
	return g.send(req)
}

func (g *fakeGateway) send(req twiliorepo.SendReq) (*twiliorepo.SendResp, error) {
	g.calls++
	if err := g.failFor[req.To]; err != nil {
		return nil, err
	}
	g.sentTo = append(g.sentTo, req.To)
	g.sentBody = append(g.sentBody, req.Body)
	return &twiliorepo.SendResp{MessageSID: g.sidPrefix + req.To, Status: "queued"}, nil
}

func (g *fakeGateway) ValidateSignature(signature, url string, params map[string]string) bool {
	g.lastSig = signature
	return g.validSig
}

type stubCustomers struct {
	customerrepo.Repo
	byInterest map[string][]model.Customer
	all        []model.Customer
}

func (s *stubCustomers) ByInterest(ctx context.Context, interest string) ([]model.Customer, error) {
	return s.byInterest[interest], nil
}

func (s *stubCustomers) List(ctx context.Context) ([]model.Customer, error) {
	return s.all, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func vipCustomers() *stubCustomers {
	return &stubCustomers{
		byInterest: map[string][]model.Customer{
			"vip": {
				{Name: "Ada", PhoneNumber: "+14155550100", Interest: "vip"},
				{Name: "Grace", PhoneNumber: "+14155550101", Interest: "vip"},
			},
		},
		all: []model.Customer{
			{Name: "Ada", PhoneNumber: "+14155550100", Interest: "vip"},
			{Name: "Grace", PhoneNumber: "+14155550101", Interest: "vip"},
			{Name: "Linus", PhoneNumber: "+14155550102", Interest: "music"},
		},
	}
}

func TestSendBulk_EventTag(t *testing.T) {
	gw := &fakeGateway{sidPrefix: "SM"}
	svc := New(gw, vipCustomers(), testLogger())

	res, err := svc.SendBulk(context.Background(), "Hi {name}!", "event:vip")
	require.NoError(t, err)
	require.Equal(t, 2, res.TotalRecipients)
	require.Equal(t, 2, res.Successful)
	require.Equal(t, 0, res.Failed)
	require.Equal(t, []string{"Hi Ada!", "Hi Grace!"}, gw.sentBody)
}

func TestSendBulk_PartialFailure(t *testing.T) {
	gw := &fakeGateway{
		sidPrefix: "SM",
		failFor:   map[string]error{"+14155550100": errors.New("unreachable carrier")},
	}
	svc := New(gw, vipCustomers(), testLogger())

	res, err := svc.SendBulk(context.Background(), "Hi {name}!", "event:vip")
	require.NoError(t, err)
	require.Equal(t, 2, res.TotalRecipients)
	require.Equal(t, 1, res.Successful)
	require.Equal(t, 1, res.Failed)
	require.Len(t, res.Results, 2)

	require.False(t, res.Results[0].Success)
	require.Equal(t, "+14155550100", res.Results[0].PhoneNumber)
	require.Contains(t, res.Results[0].Error, "unreachable carrier")

	require.True(t, res.Results[1].Success)
	require.Equal(t, "+14155550101", res.Results[1].PhoneNumber)
	require.NotEmpty(t, res.Results[1].MessageSID)
}

func TestSendBulk_DateTagResolvesEmpty(t *testing.T) {
	gw := &fakeGateway{}
	svc := New(gw, vipCustomers(), testLogger())

	_, err := svc.SendBulk(context.Background(), "Hi {name}!", "date:birthday")
	var noRecipients *NoRecipientsError
	require.ErrorAs(t, err, &noRecipients)
	require.Equal(t, "date:birthday", noRecipients.Tag)
	require.Contains(t, err.Error(), "date:birthday")
	require.Zero(t, gw.calls)
}

func TestSendBulk_UnknownKindSelectsAll(t *testing.T) {
	gw := &fakeGateway{sidPrefix: "SM"}
	svc := New(gw, vipCustomers(), testLogger())

	res, err := svc.SendBulk(context.Background(), "Hi {name}!", "segment:everyone")
	require.NoError(t, err)
	require.Equal(t, 3, res.TotalRecipients)
	require.Equal(t, 3, gw.calls)
}

func TestSendBulk_MalformedTag(t *testing.T) {
	gw := &fakeGateway{}
	svc := New(gw, vipCustomers(), testLogger())

	_, err := svc.SendBulk(context.Background(), "Hi {name}!", "no-separator")
	require.ErrorIs(t, err, ErrBadTag)
	require.Zero(t, gw.calls)
}

func TestSendBulk_EmptySegment(t *testing.T) {
	gw := &fakeGateway{}
	svc := New(gw, vipCustomers(), testLogger())

	_, err := svc.SendBulk(context.Background(), "Hi {name}!", "event:nobody")
	var noRecipients *NoRecipientsError
	require.ErrorAs(t, err, &noRecipients)
	require.Zero(t, gw.calls)
}

func TestSend_PassesGatewayErrorThrough(t *testing.T) {
	gw := &fakeGateway{failFor: map[string]error{"+15550001111": errors.New("invalid number")}}
	svc := New(gw, vipCustomers(), testLogger())

	_, err := svc.Send(context.Background(), "+15550001111", "hello")
	require.ErrorContains(t, err, "invalid number")
}

func TestReceive_SignatureCheck(t *testing.T) {
	gw := &fakeGateway{validSig: false}
	svc := New(gw, vipCustomers(), testLogger())

	err := svc.Receive("sig", "https://example.com/api/sms/sms", map[string]string{"Body": "hi"})
	require.ErrorIs(t, err, ErrBadSignature)

	gw.validSig = true
	require.NoError(t, svc.Receive("sig", "https://example.com/api/sms/sms", nil))
}

func TestRenderTemplate(t *testing.T) {
	if got := RenderTemplate("Hi {name}!", "Ada"); got != "Hi Ada!" {
		t.Errorf("got %q", got)
	}
	if got := RenderTemplate("{name}, hello {name}", "Ada"); got != "Ada, hello Ada" {
		t.Errorf("multiple occurrences: got %q", got)
	}
	if got := RenderTemplate("no placeholder", "Ada"); got != "no placeholder" {
		t.Errorf("got %q", got)
	}
}
