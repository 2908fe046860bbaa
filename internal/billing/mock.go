package billing

import "context"

// MockClient implements the Client interface with canned responses for
// local development and tests.
type MockClient struct {
	Portal       *PortalSession
	Sub          *Subscription
	Err          error
	PortalCalls  int
	VerifyCalls  int
	LastCustomer string
}

func NewMockClient() *MockClient {
	return &MockClient{
		Portal: &PortalSession{URL: "https://billing.example.com/portal/mock"},
		Sub:    &Subscription{Active: true, Plan: "monthly"},
	}
}

func (m *MockClient) CreatePortalSession(ctx context.Context, customerID, returnURL string) (*PortalSession, error) {
	m.PortalCalls++
	m.LastCustomer = customerID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Portal, nil
}

func (m *MockClient) VerifySubscription(ctx context.Context, customerID string) (*Subscription, error) {
	m.VerifyCalls++
	m.LastCustomer = customerID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Sub, nil
}
