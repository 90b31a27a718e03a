package twiliorepo

import "context"

type SendReq struct {
	To   string
	Body string
}

type SendResp struct {
	MessageSID string
	Status     string
}

// Repo is the seam between campaign dispatch and the Twilio REST API.
// SendMessage sends from the configured phone number, SendViaService routes
// through the messaging service.
type Repo interface {
	SendMessage(ctx context.Context, req SendReq) (*SendResp, error)
	SendViaService(ctx context.Context, req SendReq) (*SendResp, error)
	ValidateSignature(signature, url string, params map[string]string) bool
}
