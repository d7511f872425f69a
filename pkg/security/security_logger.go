// Package security writes the audit trail of access decisions and
// privileged changes through a dedicated zap logger.
package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventTokenRejected      EventType = "token_rejected"
	EventAccessDenied       EventType = "access_denied"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventUserSynced         EventType = "user_synced"
	EventRoleChanged        EventType = "role_changed"
	EventJobDeleted         EventType = "job_deleted"
	EventApplicationDecided EventType = "application_decided"
)

// SecurityEvent represents a security-related event to be logged
type SecurityEvent struct {
	Event     EventType
	UserID    string // hashed before it is written
	Email     string // masked before it is written
	IP        string
	RequestID string
	Details   map[string]interface{}
}

type SecurityLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// NewSecurityLogger builds the production audit logger writing JSON to stdout.
func NewSecurityLogger(serviceName, environment string) *SecurityLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "event"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	return NewWithLogger(logger, serviceName, environment)
}

func NewWithLogger(logger *zap.Logger, serviceName, environment string) *SecurityLogger {
	return &SecurityLogger{
		zapLogger:   logger,
		serviceName: serviceName,
		environment: environment,
	}
}

// Log writes event. Calls on a nil logger are dropped.
func (sl *SecurityLogger) Log(_ context.Context, event SecurityEvent) {
	if sl == nil {
		return
	}

	level := zapcore.InfoLevel
	switch event.Event {
	case EventTokenRejected, EventRateLimitTriggered:
		level = zapcore.WarnLevel
	case EventAccessDenied:
		level = zapcore.ErrorLevel
	}

	fields := []zap.Field{
		zap.String("service", sl.serviceName),
		zap.String("env", sl.environment),
	}
	if event.UserID != "" {
		fields = append(fields, zap.String("user", HashValue(event.UserID)))
	}
	if event.Email != "" {
		fields = append(fields, zap.String("email", MaskEmail(event.Email)))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}

	sl.zapLogger.Log(level, string(event.Event), fields...)
}

func (sl *SecurityLogger) LogTokenRejected(ctx context.Context, ip, requestID, reason string) {
	sl.Log(ctx, SecurityEvent{
		Event:     EventTokenRejected,
		IP:        ip,
		RequestID: requestID,
		Details:   map[string]interface{}{"reason": reason},
	})
}

func (sl *SecurityLogger) LogRateLimitTriggered(ctx context.Context, ip, requestID, scope string) {
	sl.Log(ctx, SecurityEvent{
		Event:     EventRateLimitTriggered,
		IP:        ip,
		RequestID: requestID,
		Details:   map[string]interface{}{"scope": scope},
	})
}

// LogAccessDenied records a signed-in user acting outside their role or on
// someone else's resource.
func (sl *SecurityLogger) LogAccessDenied(ctx context.Context, userID, action, resourceID string) {
	sl.Log(ctx, SecurityEvent{
		Event:   EventAccessDenied,
		UserID:  userID,
		Details: map[string]interface{}{"action": action, "resource_id": resourceID},
	})
}

func (sl *SecurityLogger) LogChange(ctx context.Context, event EventType, userID string, details map[string]interface{}) {
	sl.Log(ctx, SecurityEvent{
		Event:   event,
		UserID:  userID,
		Details: details,
	})
}

// Sync flushes any buffered log entries
func (sl *SecurityLogger) Sync() error {
	if sl == nil {
		return nil
	}
	return sl.zapLogger.Sync()
}

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	if len(email) < 3 {
		return "***"
	}
	atIndex := strings.IndexByte(email, '@')
	if atIndex <= 1 {
		return "***" + email[1:]
	}
	return string(email[0]) + "***" + email[atIndex:]
}

// HashValue creates a SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}
