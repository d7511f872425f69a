package security_test

import (
	"context"
	"testing"

	"jobmatch-backend/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogLevelsAndMasking(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sl := security.NewWithLogger(zap.New(core), "jobmatch", "test")
	ctx := context.Background()

	sl.LogAccessDenied(ctx, "user-42", "delete_job", "job-1")
	sl.LogTokenRejected(ctx, "10.0.0.1", "req-1", "expired")
	sl.LogChange(ctx, security.EventRoleChanged, "user-42", map[string]interface{}{"role": "EMPLOYER"})
	sl.Log(ctx, security.SecurityEvent{Event: security.EventUserSynced, Email: "ana@example.com"})

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)

	assert.Equal(t, "access_denied", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, security.HashValue("user-42"), fields["user"])
	assert.NotContains(t, fields["user"], "user-42")

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "10.0.0.1", entries[1].ContextMap()["ip"])

	assert.Equal(t, zapcore.InfoLevel, entries[2].Level)
	assert.Equal(t, "a***@example.com", entries[3].ContextMap()["email"])
}

func TestNilLoggerIsSafe(t *testing.T) {
	var sl *security.SecurityLogger
	assert.NotPanics(t, func() {
		sl.LogAccessDenied(context.Background(), "u", "a", "r")
		_ = sl.Sync()
	})
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "***", security.MaskEmail("ab"))
	assert.Equal(t, "***@x.ro", security.MaskEmail("a@x.ro"))
	assert.Equal(t, "j***@example.com", security.MaskEmail("jane@example.com"))
}
