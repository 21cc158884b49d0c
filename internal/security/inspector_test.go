package security

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func newTestInspector(csrf bool) *Inspector {
	return NewInspector(Options{
		Patterns:  DefaultPatterns(),
		CSRFCheck: csrf,
		Now:       func() time.Time { return fixedNow },
	})
}

func browserRequest(method string) Request {
	return Request{
		Method:    method,
		URL:       "https://example.com/api/contact",
		UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36",
		IP:        "203.0.113.7",
		Body:      map[string]any{},
		Query:     map[string][]string{},
		Headers: map[string][]string{
			"Accept":          {"application/json"},
			"Accept-Language": {"en-US,en;q=0.9"},
		},
	}
}

func categories(events []Event) []Category {
	out := make([]Category, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Category)
	}
	return out
}

func eventFor(t *testing.T, events []Event, category Category) Event {
	t.Helper()
	for _, ev := range events {
		if ev.Category == category {
			return ev
		}
	}
	t.Fatalf("no %s event in %v", category, categories(events))
	return Event{}
}

func TestInspect_BenignInputProducesNoEvents(t *testing.T) {
	insp := newTestInspector(true)
	req := browserRequest("POST")
	req.Body = map[string]any{
		"_token":  "abc123",
		"name":    "Ada Lovelace",
		"email":   "ada@example.com",
		"message": "Hello I really liked your portfolio and would love to chat about a project",
	}
	req.Query = map[string][]string{"page": {"2"}, "sort": {"newest"}}

	assert.Empty(t, insp.Inspect(req))
}

func TestInspect_SQLInjectionInBody(t *testing.T) {
	insp := newTestInspector(false)
	req := browserRequest("POST")
	req.Body = map[string]any{"search": "' UNION SELECT password FROM users--"}

	events := insp.Inspect(req)

	ev := eventFor(t, events, CategorySQLInjection)
	assert.Equal(t, "union_select", ev.Pattern)
	assert.Equal(t, "search", ev.Key)
	assert.Equal(t, "' UNION SELECT password FROM users--", ev.Value)
	assert.Equal(t, "POST", ev.Method)
	assert.Equal(t, "https://example.com/api/contact", ev.URL)
	assert.Equal(t, fixedNow, ev.Timestamp)

	count := 0
	for _, e := range events {
		if e.Category == CategorySQLInjection {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestInspect_OneEventPerCategory(t *testing.T) {
	insp := newTestInspector(false)
	req := browserRequest("GET")
	req.Query = map[string][]string{
		"a": {"1; DROP TABLE users"},
		"b": {"DELETE FROM contacts"},
		"c": {"INSERT INTO admins VALUES (1)", "UNION SELECT 1"},
	}

	events := insp.Inspect(req)
	assert.Equal(t, []Category{CategorySQLInjection}, categories(events))
}

func TestInspect_FirstPatternWinsAcrossInputs(t *testing.T) {
	insp := newTestInspector(false)
	req := browserRequest("GET")
	// "a" only matches drop_table; "z" matches union_select which is earlier in the library.
	req.Query = map[string][]string{
		"a": {"drop table x"},
		"z": {"union select 1"},
	}

	ev := eventFor(t, insp.Inspect(req), CategorySQLInjection)
	assert.Equal(t, "union_select", ev.Pattern)
	assert.Equal(t, "z", ev.Key)
}

func TestInspect_ValueTruncated(t *testing.T) {
	insp := newTestInspector(false)
	req := browserRequest("POST")
	payload := "' UNION SELECT " + strings.Repeat("col, ", 60) + "password FROM users--"
	req.Body = map[string]any{"q": payload}

	ev := eventFor(t, insp.Inspect(req), CategorySQLInjection)
	assert.Len(t, []rune(ev.Value), MaxValueLength)
	assert.True(t, strings.HasPrefix(payload, ev.Value))
}

func TestInspect_XSSInBodyField(t *testing.T) {
	insp := newTestInspector(false)
	req := browserRequest("POST")
	req.Body = map[string]any{"comment": "<script>alert(1)</script>"}

	events := insp.Inspect(req)
	ev := eventFor(t, events, CategoryXSS)
	assert.Equal(t, "comment", ev.Key)
	assert.Equal(t, "tag_script", ev.Pattern)
}

func TestInspect_XSSEventHandler(t *testing.T) {
	insp := newTestInspector(false)
	req := browserRequest("GET")
	req.Query = map[string][]string{"img": {`x" OnError = "steal()`}}

	ev := eventFor(t, insp.Inspect(req), CategoryXSS)
	assert.Equal(t, "handler_onerror", ev.Pattern)
}

func TestInspect_HeadersOnlyScannedForSuspiciousPatterns(t *testing.T) {
	insp := newTestInspector(false)
	req := browserRequest("GET")
	req.Headers["X-Forwarded-Path"] = []string{"../../etc/passwd"}
	req.Headers["X-Note"] = []string{"<script>alert(1)</script> UNION SELECT 1"}

	events := insp.Inspect(req)

	ev := eventFor(t, events, CategorySuspiciousPattern)
	assert.Equal(t, "path_traversal", ev.Pattern)
	assert.Equal(t, "X-Forwarded-Path", ev.Key)
	assert.NotContains(t, categories(events), CategorySQLInjection)
	assert.NotContains(t, categories(events), CategoryXSS)
}

func TestInspect_SuspiciousFunctionCall(t *testing.T) {
	insp := newTestInspector(false)
	req := browserRequest("POST")
	req.Body = map[string]any{"code": "<?php base64_decode ('ZXZpbA==');"}

	ev := eventFor(t, insp.Inspect(req), CategorySuspiciousPattern)
	assert.Equal(t, "base64_decode_call", ev.Pattern)
}

func TestInspect_EmptyUserAgent(t *testing.T) {
	insp := newTestInspector(false)
	req := browserRequest("GET")
	req.UserAgent = ""

	events := insp.Inspect(req)
	assert.Equal(t, []Category{CategoryEmptyUserAgent}, categories(events))
}

func TestInspect_ScannerUserAgent(t *testing.T) {
	tests := []struct {
		ua      string
		wantSig string
	}{
		{"sqlmap/1.7.2#stable (https://sqlmap.org)", "sqlmap"},
		{"curl/8.4.0", "curl"},
		{"Python-urllib/3.11", "python"},
		{"Mozilla/5.0 (compatible; Googlebot/2.1)", "bot"},
	}
	insp := newTestInspector(false)
	for _, tt := range tests {
		t.Run(tt.wantSig, func(t *testing.T) {
			req := browserRequest("GET")
			req.UserAgent = tt.ua

			events := insp.Inspect(req)
			require.Equal(t, []Category{CategorySuspiciousUserAgent}, categories(events))
			assert.Equal(t, tt.wantSig, events[0].Pattern)
			assert.Equal(t, tt.ua, events[0].Value)
		})
	}
}

func TestInspect_CSRFOnlyForStateChangingMethods(t *testing.T) {
	insp := newTestInspector(true)

	for _, method := range []string{"POST", "PUT", "PATCH", "DELETE", "post"} {
		req := browserRequest(method)
		events := insp.Inspect(req)
		assert.Equal(t, []Category{CategoryCSRFTokenMissing}, categories(events), method)
	}

	for _, method := range []string{"GET", "HEAD", "OPTIONS"} {
		req := browserRequest(method)
		assert.Empty(t, insp.Inspect(req), method)

		req.Body = map[string]any{"_token": "abc"}
		assert.Empty(t, insp.Inspect(req), method)
	}
}

func TestInspect_CSRFTokenPresent(t *testing.T) {
	insp := newTestInspector(true)
	req := browserRequest("POST")
	req.Body = map[string]any{"_token": ""}

	assert.Empty(t, insp.Inspect(req))
}

func TestInspect_CustomCSRFField(t *testing.T) {
	insp := NewInspector(Options{Patterns: DefaultPatterns(), CSRFCheck: true, CSRFField: "csrf"})
	req := browserRequest("POST")
	req.Body = map[string]any{"_token": "abc"}

	ev := eventFor(t, insp.Inspect(req), CategoryCSRFTokenMissing)
	assert.Equal(t, "csrf", ev.Key)
}

func TestInspect_NonStringValuesSkipped(t *testing.T) {
	insp := newTestInspector(false)
	req := browserRequest("POST")
	req.Body = map[string]any{
		"count":  42,
		"nested": map[string]any{"q": "UNION SELECT 1"},
		"flag":   true,
		"tags":   []any{"ok", 7, "<iframe src=x>"},
	}

	events := insp.Inspect(req)
	assert.Equal(t, []Category{CategoryXSS}, categories(events))
	assert.Equal(t, "tags", events[0].Key)
}

func TestInspect_BrokenPatternDegradesToNoMatch(t *testing.T) {
	patterns := DefaultPatterns()
	patterns.SQLInjection = append([]Pattern{{ID: "broken"}}, patterns.SQLInjection...)

	insp := NewInspector(Options{Patterns: patterns})
	req := browserRequest("GET")
	req.Query = map[string][]string{"q": {"union select 1"}}

	var events []Event
	assert.NotPanics(t, func() { events = insp.Inspect(req) })
	ev := eventFor(t, events, CategorySQLInjection)
	assert.Equal(t, "union_select", ev.Pattern)
}

func TestInspect_InjectedPatterns(t *testing.T) {
	custom, err := CompilePatterns([]PatternSource{{ID: "forbidden_word", Expr: `hunter2`}})
	require.NoError(t, err)

	insp := NewInspector(Options{Patterns: Patterns{SQLInjection: custom}})
	req := browserRequest("GET")
	req.Query = map[string][]string{"q": {"my password is HUNTER2"}}

	ev := eventFor(t, insp.Inspect(req), CategorySQLInjection)
	assert.Equal(t, "forbidden_word", ev.Pattern)
}

func TestInspect_MultipleCategoriesTogether(t *testing.T) {
	insp := newTestInspector(true)
	req := browserRequest("POST")
	req.UserAgent = "sqlmap/1.7"
	req.Body = map[string]any{"comment": "<script>eval(1)</script>' UNION SELECT 1--"}

	events := insp.Inspect(req)
	assert.Equal(t, []Category{
		CategorySuspiciousPattern,
		CategorySQLInjection,
		CategoryXSS,
		CategorySuspiciousUserAgent,
		CategoryCSRFTokenMissing,
	}, categories(events))
}

func TestCompilePatterns_InvalidExpression(t *testing.T) {
	_, err := CompilePatterns([]PatternSource{{ID: "bad", Expr: `(`}})
	assert.ErrorContains(t, err, "bad")
}

func TestDefaultPatterns_ReturnsFreshCopy(t *testing.T) {
	a := DefaultPatterns()
	a.UserAgentSignatures[0] = "changed"
	a.Suspicious = nil

	b := DefaultPatterns()
	assert.Equal(t, "sqlmap", b.UserAgentSignatures[0])
	assert.NotEmpty(t, b.Suspicious)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short"))
	long := strings.Repeat("é", 150)
	assert.Equal(t, strings.Repeat("é", 100), Truncate(long))
}
