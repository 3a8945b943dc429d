package email

import "sync"

// MockSender запоминает письма вместо отправки.
// Используется в тестах и когда email.enabled = false.
type MockSender struct {
	mu   sync.Mutex
	sent []Email
}

func NewMockSender() *MockSender {
	return &MockSender{}
}

func (m *MockSender) Send(email *Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, *email)
	return nil
}

// Sent возвращает копию отправленных писем
func (m *MockSender) Sent() []Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Email, len(m.sent))
	copy(out, m.sent)
	return out
}
