package security

import (
	"time"
	"unicode/utf8"
)

// Category classifies a security event.
type Category string

const (
	CategorySuspiciousPattern   Category = "suspicious_pattern"
	CategorySQLInjection        Category = "sql_injection_attempt"
	CategoryXSS                 Category = "xss_attempt"
	CategorySuspiciousUserAgent Category = "suspicious_user_agent"
	CategoryEmptyUserAgent      Category = "empty_user_agent"
	CategoryCSRFTokenMissing    Category = "csrf_token_missing"
)

// MaxValueLength bounds the offending value carried by an event, in runes.
const MaxValueLength = 100

// Event records one detected signature. It is informational only.
type Event struct {
	Category  Category
	Pattern   string
	Key       string
	Value     string
	URL       string
	Method    string
	IP        string
	UserAgent string
	Timestamp time.Time
}

// Truncate shortens s to at most MaxValueLength runes.
func Truncate(s string) string {
	if utf8.RuneCountInString(s) <= MaxValueLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:MaxValueLength])
}
