package util

import (
	"encoding/json"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/ariebrainware/medical-staff/model"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SecurityEventType represents different types of security events
type SecurityEventType string

const (
	EventSignupSuccess      SecurityEventType = "SIGNUP_SUCCESS"
	EventSigninSuccess      SecurityEventType = "SIGNIN_SUCCESS"
	EventSigninFailure      SecurityEventType = "SIGNIN_FAILURE"
	EventAccountUpdated     SecurityEventType = "ACCOUNT_UPDATED"
	EventAccountDeleted     SecurityEventType = "ACCOUNT_DELETED"
	EventUnauthorizedAccess SecurityEventType = "UNAUTHORIZED_ACCESS"
	EventRateLimitExceeded  SecurityEventType = "RATE_LIMIT_EXCEEDED"
	EventSuspiciousActivity SecurityEventType = "SUSPICIOUS_ACTIVITY"
	EventEndpointCall       SecurityEventType = "ENDPOINT_CALL"
)

// SecurityEvent represents a security event to be logged
type SecurityEvent struct {
	EventType SecurityEventType
	AccountID string
	Kind      string
	CPF       string
	IP        string
	UserAgent string
	Message   string
	Details   map[string]interface{}
}

var (
	securityMu     sync.RWMutex
	securityLogger *zerolog.Logger
	securityDB     *gorm.DB
)

// SetSecurityLoggerDB sets the gorm DB security events are persisted to.
// Call it at startup after the database is connected; nil disables persistence.
func SetSecurityLoggerDB(db *gorm.DB) {
	securityMu.Lock()
	defer securityMu.Unlock()
	securityDB = db
}

// SetSecurityLoggerForTest overrides the zerolog logger used for security events.
// Passing nil restores the process logger.
func SetSecurityLoggerForTest(l *zerolog.Logger) {
	securityMu.Lock()
	defer securityMu.Unlock()
	securityLogger = l
}

func securitySinks() (zerolog.Logger, *gorm.DB) {
	securityMu.RLock()
	defer securityMu.RUnlock()
	if securityLogger != nil {
		return *securityLogger, securityDB
	}
	return *Logger(), securityDB
}

const maxLogValueLen = 200

// sanitizeLogValue removes newlines and other characters that could break log parsing.
// Long values are cut to at most maxLogValueLen bytes on a rune boundary.
func sanitizeLogValue(value string) string {
	value = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(value)
	if len(value) > maxLogValueLen {
		cut := maxLogValueLen
		for cut > 0 && !utf8.RuneStart(value[cut]) {
			cut--
		}
		value = value[:cut] + "..."
	}
	return value
}

// LogSecurityEvent writes the event to the log and, when a database has been set,
// persists it to security_logs. Persistence is best effort.
func LogSecurityEvent(event SecurityEvent) {
	logger, db := securitySinks()

	logger.Info().
		Str("channel", "security").
		Str("event", sanitizeLogValue(string(event.EventType))).
		Str("account_id", sanitizeLogValue(event.AccountID)).
		Str("kind", sanitizeLogValue(event.Kind)).
		Str("cpf", sanitizeLogValue(event.CPF)).
		Str("ip", sanitizeLogValue(event.IP)).
		Str("user_agent", sanitizeLogValue(event.UserAgent)).
		Int("details_count", len(event.Details)).
		Msg(sanitizeLogValue(event.Message))

	if db == nil {
		return
	}

	var details datatypes.JSON
	if event.Details != nil {
		if b, err := json.Marshal(event.Details); err == nil {
			details = datatypes.JSON(b)
		}
	}

	entry := model.SecurityLog{
		EventType: string(event.EventType),
		AccountID: sanitizeLogValue(event.AccountID),
		Kind:      sanitizeLogValue(event.Kind),
		CPF:       sanitizeLogValue(event.CPF),
		IP:        sanitizeLogValue(event.IP),
		Location:  sanitizeLogValue(GetIPLocation(event.IP).String()),
		UserAgent: sanitizeLogValue(event.UserAgent),
		Message:   sanitizeLogValue(event.Message),
		Details:   details,
	}
	if err := db.Create(&entry).Error; err != nil {
		logger.Warn().Err(err).Str("event", string(event.EventType)).Msg("failed to persist security event")
	}
}

// AccountEventParams identifies the account and client behind an account event.
type AccountEventParams struct {
	AccountID string
	Kind      string
	CPF       string
	IP        string
	UserAgent string
	Reason    string
}

// LogSignupSuccess logs the creation of an account
func LogSignupSuccess(p AccountEventParams) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventSignupSuccess,
		AccountID: p.AccountID,
		Kind:      p.Kind,
		CPF:       p.CPF,
		IP:        p.IP,
		UserAgent: p.UserAgent,
		Message:   "Account created",
	})
}

// LogSigninSuccess logs a successful sign-in
func LogSigninSuccess(p AccountEventParams) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventSigninSuccess,
		AccountID: p.AccountID,
		Kind:      p.Kind,
		CPF:       p.CPF,
		IP:        p.IP,
		UserAgent: p.UserAgent,
		Message:   "Account signed in",
	})
}

// LogSigninFailure logs a rejected sign-in attempt
func LogSigninFailure(p AccountEventParams) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventSigninFailure,
		Kind:      p.Kind,
		CPF:       p.CPF,
		IP:        p.IP,
		UserAgent: p.UserAgent,
		Message:   "Sign-in failed: " + p.Reason,
	})
}

// LogAccountUpdated logs a replaced account
func LogAccountUpdated(p AccountEventParams) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventAccountUpdated,
		AccountID: p.AccountID,
		Kind:      p.Kind,
		CPF:       p.CPF,
		IP:        p.IP,
		UserAgent: p.UserAgent,
		Message:   "Account updated",
	})
}

// LogAccountDeleted logs a removed account
func LogAccountDeleted(p AccountEventParams) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventAccountDeleted,
		AccountID: p.AccountID,
		Kind:      p.Kind,
		CPF:       p.CPF,
		IP:        p.IP,
		UserAgent: p.UserAgent,
		Message:   "Account deleted",
	})
}

// LogUnauthorizedAccess logs a request carrying a missing or invalid token
func LogUnauthorizedAccess(ip, resource, reason string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventUnauthorizedAccess,
		IP:        ip,
		Message:   "Unauthorized access to " + resource + ": " + reason,
	})
}

// LogRateLimitExceeded logs when rate limit is exceeded
func LogRateLimitExceeded(ip, endpoint string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventRateLimitExceeded,
		IP:        ip,
		Message:   "Rate limit exceeded for endpoint: " + endpoint,
	})
}
