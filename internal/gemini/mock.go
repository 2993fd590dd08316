package gemini

import "context"

// MockClient is a test double that records the last request and
// returns a fixed reply or error.
type MockClient struct {
	Err      error
	LastReq  *Request
	Reply    string
	Requests int
}

// Generate implements Client.
func (m *MockClient) Generate(_ context.Context, req Request) (string, error) {
	m.Requests++
	reqCopy := req
	m.LastReq = &reqCopy
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}
