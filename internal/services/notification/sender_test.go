package notification

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/magabrotheeeer/catering-backend/internal/lib/smtp"
	"github.com/magabrotheeeer/catering-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

type MockSMTPWriter struct {
	mock.Mock
	written []byte
}

func (m *MockSMTPWriter) Write(p []byte) (int, error) {
	m.written = append(m.written, p...)
	args := m.Called(p)
	return len(p), args.Error(1)
}

func (m *MockSMTPWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func welcomeBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(models.WelcomeMessage{
		Email:    "jane@example.com",
		FullName: "Jane Doe",
	})
	require.NoError(t, err)
	return body
}

func TestSenderService_SendWelcomeEmail(t *testing.T) {
	transport := new(MockTransport)
	client := new(MockSMTPClient)
	writer := new(MockSMTPWriter)

	transport.On("GetSMTPUser").Return("noreply@seacatering.example")
	transport.On("Connect").Return(client, nil).Once()
	client.On("Mail", "noreply@seacatering.example").Return(nil).Once()
	client.On("Rcpt", "jane@example.com").Return(nil).Once()
	client.On("Data").Return(writer, nil).Once()
	writer.On("Write", mock.Anything).Return(0, nil)
	writer.On("Close").Return(nil).Once()
	client.On("Quit").Return(nil).Once()
	client.On("Close").Return(nil).Once()

	svc := NewSenderService(transport, slog.New(slog.DiscardHandler))
	err := svc.SendWelcomeEmail(welcomeBody(t))

	require.NoError(t, err)
	assert.Contains(t, string(writer.written), "Jane Doe")
	assert.Contains(t, string(writer.written), "To: jane@example.com")
	transport.AssertExpectations(t)
	client.AssertExpectations(t)
}

func TestSenderService_SendWelcomeEmail_BadPayload(t *testing.T) {
	svc := NewSenderService(new(MockTransport), slog.New(slog.DiscardHandler))
	err := svc.SendWelcomeEmail([]byte("{not json"))
	assert.Error(t, err)
}

func TestSenderService_SendWelcomeEmail_ConnectError(t *testing.T) {
	transport := new(MockTransport)
	transport.On("GetSMTPUser").Return("noreply@seacatering.example")
	transport.On("Connect").Return(nil, errors.New("dial error")).Once()

	svc := NewSenderService(transport, slog.New(slog.DiscardHandler))
	err := svc.SendWelcomeEmail(welcomeBody(t))
	assert.Error(t, err)
}
