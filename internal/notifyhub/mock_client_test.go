package notifyhub_test

import "samadhan/backend/internal/models"

// MockClient records delivered notifications through RecvChannel.
type MockClient struct {
	userID      string
	RecvChannel chan models.Notification
	Closed      chan struct{}
}

func newMockClient(userID string) *MockClient {
	return &MockClient{
		userID:      userID,
		RecvChannel: make(chan models.Notification, 10),
		Closed:      make(chan struct{}),
	}
}

// newStalledClient has no buffer, so any delivery attempt finds it busy.
func newStalledClient(userID string) *MockClient {
	return &MockClient{
		userID:      userID,
		RecvChannel: make(chan models.Notification),
		Closed:      make(chan struct{}),
	}
}

func (c *MockClient) GetUserID() string {
	return c.userID
}

func (c *MockClient) GetSendChannel() chan<- models.Notification {
	return c.RecvChannel
}

func (c *MockClient) Run() {
	// Not needed for testing
}

func (c *MockClient) Close() {
	select {
	case <-c.Closed:
	default:
		close(c.Closed)
	}
}
