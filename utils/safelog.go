// utils/safelog.go
// ============================================================================
// SAFE LOGGING - masks personal and financial data in production
// ============================================================================
// Mobile numbers double as login handles here, so they are treated as PII
// alongside login identifiers, rupee amounts and full UUIDs.
// ============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// ============================================================================
// CONFIGURATION
// ============================================================================

var (
	// IsProduction switches masking on.
	IsProduction = os.Getenv("GIN_MODE") == "release" ||
		os.Getenv("ENVIRONMENT") == "production" ||
		os.Getenv("ENV") == "production"

	// Logger is the process-wide structured logger.
	Logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "nevta-api").Logger().Level(parseLevel(os.Getenv("LOG_LEVEL")))
)

// ConfigureLogging resets the logger once configuration is loaded.
func ConfigureLogging(out io.Writer, level string, production bool) {
	IsProduction = production
	Logger = zerolog.New(out).With().Timestamp().Str("component", "nevta-api").Logger().Level(parseLevel(level))
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ============================================================================
// MASKING PATTERNS
// ============================================================================

var (
	// login identifiers are email-shaped: <mobile>@<domain>
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// UPI virtual payment addresses: handle@bank
	vpaRegex = regexp.MustCompile(`\b[a-zA-Z0-9._-]{2,}@[a-zA-Z]{2,}\b`)

	amountWithCurrencyRegex = regexp.MustCompile(`(₹|Rs\.?|INR)\s*\d[\d,]*(\.\d{1,2})?`)

	// Indian mobile numbers, optionally prefixed with +91 or 0
	phoneRegex = regexp.MustCompile(`(\+91[\s-]?|\b0)?\b[6-9]\d{9}\b`)

	uuidRegex = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
)

// ============================================================================
// MASKING FUNCTIONS
// ============================================================================

// MaskString masks sensitive data inside a free-form string.
func MaskString(input string) string {
	if !IsProduction {
		return input
	}

	result := input
	result = emailRegex.ReplaceAllString(result, "***@***")
	result = vpaRegex.ReplaceAllString(result, "***@***")
	result = amountWithCurrencyRegex.ReplaceAllString(result, "₹***")
	result = phoneRegex.ReplaceAllStringFunc(result, MaskMobile)
	result = uuidRegex.ReplaceAllStringFunc(result, shortenUUID)

	return result
}

func shortenUUID(uuid string) string {
	if len(uuid) > 8 {
		return uuid[:8] + "..."
	}
	return "***"
}

// MaskID keeps the first 8 characters of an ID.
func MaskID(id string) string {
	if !IsProduction {
		return id
	}
	if len(id) <= 8 {
		return "***"
	}
	return id[:8] + "..."
}

// MaskMobile keeps the last two digits of a mobile number.
func MaskMobile(mobile string) string {
	if !IsProduction {
		return mobile
	}
	digits := strings.TrimSpace(mobile)
	if len(digits) <= 2 {
		return "**"
	}
	return strings.Repeat("*", len(digits)-2) + digits[len(digits)-2:]
}

// ============================================================================
// SAFE LOGGING FUNCTIONS
// ============================================================================

func SafeDebug(format string, args ...interface{}) {
	Logger.Debug().Msg(MaskString(fmt.Sprintf(format, args...)))
}

func SafeInfo(format string, args ...interface{}) {
	Logger.Info().Msg(MaskString(fmt.Sprintf(format, args...)))
}

func SafeWarn(format string, args ...interface{}) {
	Logger.Warn().Msg(MaskString(fmt.Sprintf(format, args...)))
}

func SafeError(format string, args ...interface{}) {
	Logger.Error().Msg(MaskString(fmt.Sprintf(format, args...)))
}

// ============================================================================
// DOMAIN LOGGING
// ============================================================================

// LogOccasionAction logs an action on an occasion without exposing amounts.
func LogOccasionAction(action string, occasionID string, userID string) {
	Logger.Info().
		Str("scope", "occasion").
		Str("action", action).
		Str("occasion_id", MaskID(occasionID)).
		Str("user_id", MaskID(userID)).
		Send()
}

// LogAIAnalysis logs an insights request without contribution details.
func LogAIAnalysis(action string, occasionID string, language string, contributionCount int) {
	Logger.Info().
		Str("scope", "ai").
		Str("action", action).
		Str("occasion_id", MaskID(occasionID)).
		Str("language", language).
		Int("contributions", contributionCount).
		Send()
}

func LogAuthAction(action string, mobile string, success bool) {
	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	Logger.Info().
		Str("scope", "auth").
		Str("action", action).
		Str("mobile", MaskMobile(mobile)).
		Str("status", status).
		Send()
}

// LogAPIRequest logs a request line. UUIDs in the path are shortened in production.
func LogAPIRequest(method string, path string, userID string, statusCode int, duration string) {
	if IsProduction {
		path = uuidRegex.ReplaceAllStringFunc(path, shortenUUID)
	}
	event := Logger.Info()
	if statusCode >= 500 {
		event = Logger.Error()
	} else if statusCode >= 400 {
		event = Logger.Warn()
	}
	event.
		Str("scope", "api").
		Str("method", method).
		Str("path", path).
		Str("user_id", MaskID(userID)).
		Int("status", statusCode).
		Str("duration", duration).
		Send()
}

func LogWebSocket(action string, occasionID string, userID string) {
	Logger.Info().
		Str("scope", "ws").
		Str("action", action).
		Str("occasion_id", MaskID(occasionID)).
		Str("user_id", MaskID(userID)).
		Send()
}

// ============================================================================
// UTILITIES
// ============================================================================

func GetEnvMode() string {
	if IsProduction {
		return "production"
	}
	return "development"
}

func LogStartup(appName string, version string, port string) {
	Logger.Info().
		Str("app", appName).
		Str("version", version).
		Str("mode", GetEnvMode()).
		Str("port", port).
		Str("level", Logger.GetLevel().String()).
		Msg("🚀 starting")
	if IsProduction {
		Logger.Warn().Msg("⚠️  Production mode: sensitive data will be masked in logs")
	}
}
