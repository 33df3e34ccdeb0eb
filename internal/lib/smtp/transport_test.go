package smtp

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/catering-backend/internal/config"
)

func TestNewTransport(t *testing.T) {
	cfg := config.SMTPConnection{
		SMTPHost: "smtp.example.com",
		SMTPPort: "587",
		SMTPUser: "noreply@example.com",
		SMTPPass: "secret",
	}

	tr := NewTransport(cfg, slog.New(slog.DiscardHandler))

	assert.Equal(t, "noreply@example.com", tr.GetSMTPUser())
	assert.Equal(t, "smtp.example.com", tr.cfg.SMTPHost)
}
