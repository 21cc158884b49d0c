package security

import (
	"sort"
	"strings"
	"time"
)

// DefaultCSRFField is the body field carrying the anti-forgery token.
const DefaultCSRFField = "_token"

// Request is a read-only snapshot of the inputs the inspector looks at.
// Body values other than string, []string or []any of strings are skipped.
type Request struct {
	Method    string
	URL       string
	UserAgent string
	IP        string
	Body      map[string]any
	Query     map[string][]string
	Headers   map[string][]string
}

// Options configures an Inspector.
type Options struct {
	Patterns  Patterns
	CSRFCheck bool
	CSRFField string
	Now       func() time.Time
}

// Inspector scans requests for attack signatures. It never blocks a request;
// callers hand the returned events to a Sink. Safe for concurrent use.
type Inspector struct {
	patterns  Patterns
	csrfCheck bool
	csrfField string
	now       func() time.Time
}

// NewInspector builds an inspector from opts.
func NewInspector(opts Options) *Inspector {
	field := opts.CSRFField
	if field == "" {
		field = DefaultCSRFField
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Inspector{
		patterns:  opts.Patterns,
		csrfCheck: opts.CSRFCheck,
		csrfField: field,
		now:       now,
	}
}

type input struct {
	key   string
	value string
}

// Inspect returns at most one event per category.
func (i *Inspector) Inspect(req Request) []Event {
	params := append(flattenBody(req.Body), flattenValues(req.Query)...)
	withHeaders := append(append([]input(nil), params...), flattenValues(req.Headers)...)

	var events []Event
	if ev, ok := i.scan(req, CategorySuspiciousPattern, i.patterns.Suspicious, withHeaders); ok {
		events = append(events, ev)
	}
	if ev, ok := i.scan(req, CategorySQLInjection, i.patterns.SQLInjection, params); ok {
		events = append(events, ev)
	}
	if ev, ok := i.scan(req, CategoryXSS, i.patterns.XSS, params); ok {
		events = append(events, ev)
	}
	if ev, ok := i.checkUserAgent(req); ok {
		events = append(events, ev)
	}
	if ev, ok := i.checkCSRF(req); ok {
		events = append(events, ev)
	}
	return events
}

func (i *Inspector) scan(req Request, category Category, patterns []Pattern, inputs []input) (Event, bool) {
	for _, p := range patterns {
		for _, in := range inputs {
			if !safeMatch(p, in.value) {
				continue
			}
			return i.newEvent(req, category, p.ID, in.key, in.value), true
		}
	}
	return Event{}, false
}

func (i *Inspector) checkUserAgent(req Request) (Event, bool) {
	ua := strings.TrimSpace(req.UserAgent)
	if ua == "" {
		return i.newEvent(req, CategoryEmptyUserAgent, "", "User-Agent", ""), true
	}
	lowered := strings.ToLower(ua)
	for _, sig := range i.patterns.UserAgentSignatures {
		if sig == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(sig)) {
			return i.newEvent(req, CategorySuspiciousUserAgent, sig, "User-Agent", ua), true
		}
	}
	return Event{}, false
}

func (i *Inspector) checkCSRF(req Request) (Event, bool) {
	if !i.csrfCheck || !isStateChanging(req.Method) {
		return Event{}, false
	}
	if _, ok := req.Body[i.csrfField]; ok {
		return Event{}, false
	}
	return i.newEvent(req, CategoryCSRFTokenMissing, "", i.csrfField, ""), true
}

func (i *Inspector) newEvent(req Request, category Category, pattern, key, value string) Event {
	return Event{
		Category:  category,
		Pattern:   pattern,
		Key:       key,
		Value:     Truncate(value),
		URL:       req.URL,
		Method:    strings.ToUpper(req.Method),
		IP:        req.IP,
		UserAgent: Truncate(req.UserAgent),
		Timestamp: i.now(),
	}
}

// safeMatch treats any failure while matching as "no match".
func safeMatch(p Pattern, value string) (matched bool) {
	defer func() {
		if recover() != nil {
			matched = false
		}
	}()
	if p.Expr == nil || value == "" {
		return false
	}
	return p.Expr.MatchString(value)
}

func isStateChanging(method string) bool {
	switch strings.ToUpper(method) {
	case "POST", "PUT", "PATCH", "DELETE":
		return true
	default:
		return false
	}
}

func flattenBody(body map[string]any) []input {
	out := make([]input, 0, len(body))
	for _, key := range sortedKeys(body) {
		switch v := body[key].(type) {
		case string:
			out = append(out, input{key: key, value: v})
		case []string:
			for _, s := range v {
				out = append(out, input{key: key, value: s})
			}
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok {
					out = append(out, input{key: key, value: s})
				}
			}
		}
	}
	return out
}

func flattenValues(values map[string][]string) []input {
	out := make([]input, 0, len(values))
	for _, key := range sortedKeys(values) {
		for _, v := range values[key] {
			out = append(out, input{key: key, value: v})
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
