package api

import (
	"bytes"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuditLoggerRedactsPII(t *testing.T) {
	var buf bytes.Buffer
	al := newAuditLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	r := httptest.NewRequest("POST", "/api/v1/auth_session/login", nil)
	al.log(AuditLoginSuccess, r,
		slog.String("email", "alice@example.com"),
		slog.String("user_id", "u-1"),
	)

	out := buf.String()
	assert.NotContains(t, out, "alice@example.com")
	assert.Contains(t, out, `"email":"***"`)
	assert.Contains(t, out, "login_success")
	assert.Contains(t, out, `"user_id":"u-1"`)
	assert.Contains(t, out, `"component":"audit"`)
}

func TestAuditLoggerBaseAttrs(t *testing.T) {
	var buf bytes.Buffer
	al := newAuditLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	r := httptest.NewRequest("GET", "/api/v1/users/me", nil)
	al.logFailure(AuditGateForbidden, r, "no principal")

	out := buf.String()
	assert.Contains(t, out, `"event":"gate_forbidden"`)
	assert.Contains(t, out, `"path":"/api/v1/users/me"`)
	assert.Contains(t, out, `"reason":"no principal"`)
}
