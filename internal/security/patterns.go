package security

import (
	"fmt"
	"regexp"
)

// Pattern is one compiled signature in a pattern library.
type Pattern struct {
	ID   string
	Expr *regexp.Regexp
}

// PatternSource is the uncompiled form of a Pattern.
type PatternSource struct {
	ID   string
	Expr string
}

// Patterns holds the independent libraries the inspector matches against.
// Order matters: the first pattern that matches wins for its category.
type Patterns struct {
	Suspicious          []Pattern
	SQLInjection        []Pattern
	XSS                 []Pattern
	UserAgentSignatures []string
}

// CompilePatterns compiles sources into case-insensitive expressions.
func CompilePatterns(sources []PatternSource) ([]Pattern, error) {
	out := make([]Pattern, 0, len(sources))
	for _, src := range sources {
		expr, err := regexp.Compile("(?i)" + src.Expr)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", src.ID, err)
		}
		out = append(out, Pattern{ID: src.ID, Expr: expr})
	}
	return out, nil
}

// MustCompilePatterns is like CompilePatterns but panics on a bad expression.
func MustCompilePatterns(sources []PatternSource) []Pattern {
	out, err := CompilePatterns(sources)
	if err != nil {
		panic(err)
	}
	return out
}

// DefaultPatterns returns a fresh copy of the built-in libraries.
func DefaultPatterns() Patterns {
	return Patterns{
		Suspicious:          MustCompilePatterns(suspiciousSources),
		SQLInjection:        MustCompilePatterns(sqlInjectionSources),
		XSS:                 MustCompilePatterns(xssSources()),
		UserAgentSignatures: append([]string(nil), userAgentSignatures...),
	}
}

var suspiciousSources = []PatternSource{
	{ID: "path_traversal", Expr: `\.\./`},
	{ID: "script_tag", Expr: `<script`},
	{ID: "javascript_uri", Expr: `javascript:`},
	{ID: "vbscript_uri", Expr: `vbscript:`},
	{ID: "data_html_uri", Expr: `data:text/html`},
	{ID: "data_base64_uri", Expr: `data:[a-z]+/[a-z0-9.+-]+;base64,`},
	{ID: "eval_call", Expr: `\beval\s*\(`},
	{ID: "exec_call", Expr: `\bexec\s*\(`},
	{ID: "system_call", Expr: `\bsystem\s*\(`},
	{ID: "shell_exec_call", Expr: `\bshell_exec\s*\(`},
	{ID: "passthru_call", Expr: `\bpassthru\s*\(`},
	{ID: "file_get_contents_call", Expr: `\bfile_get_contents\s*\(`},
	{ID: "fopen_call", Expr: `\bfopen\s*\(`},
	{ID: "fwrite_call", Expr: `\bfwrite\s*\(`},
	{ID: "base64_decode_call", Expr: `\bbase64_decode\s*\(`},
	{ID: "gzinflate_call", Expr: `\bgzinflate\s*\(`},
	{ID: "str_rot13_call", Expr: `\bstr_rot13\s*\(`},
}

var sqlInjectionSources = []PatternSource{
	{ID: "union_select", Expr: `\bunion\s+(all\s+)?select\b`},
	{ID: "select_from", Expr: `\bselect\b.+\bfrom\b`},
	{ID: "insert_into", Expr: `\binsert\s+into\b`},
	{ID: "update_set", Expr: `\bupdate\s+\S+\s+set\b`},
	{ID: "delete_from", Expr: `\bdelete\s+from\b`},
	{ID: "drop_table", Expr: `\bdrop\s+(table|database)\b`},
	{ID: "truncate_table", Expr: `\btruncate\s+table\b`},
	{ID: "alter_table", Expr: `\balter\s+table\b`},
	{ID: "create_table", Expr: `\bcreate\s+table\b`},
	{ID: "exec_statement", Expr: `\bexec(ute)?\s*\(|\bexec(ute)?\s+(sp|xp)_\w+`},
	{ID: "stored_procedure", Expr: `\bsp_\w+`},
	{ID: "extended_procedure", Expr: `\bxp_\w+`},
	{ID: "load_file", Expr: `\bload_file\s*\(`},
	{ID: "into_outfile", Expr: `\binto\s+(out|dump)file\b`},
}

var xssTags = []string{
	"script", "iframe", "object", "embed", "applet", "form", "input",
	"textarea", "select", "option", "link", "meta", "style",
}

var xssEventHandlers = []string{
	"onload", "onerror", "onclick", "onmouseover", "onfocus", "onblur",
	"onchange", "onsubmit", "onreset", "onselect", "onunload",
}

func xssSources() []PatternSource {
	out := make([]PatternSource, 0, len(xssTags)+len(xssEventHandlers)+2)
	for _, tag := range xssTags {
		out = append(out, PatternSource{ID: "tag_" + tag, Expr: `<\s*` + tag + `\b`})
	}
	for _, handler := range xssEventHandlers {
		out = append(out, PatternSource{ID: "handler_" + handler, Expr: `\b` + handler + `\s*=`})
	}
	out = append(out,
		PatternSource{ID: "javascript_uri", Expr: `javascript:`},
		PatternSource{ID: "vbscript_uri", Expr: `vbscript:`},
	)
	return out
}

var userAgentSignatures = []string{
	"sqlmap", "nikto", "nmap", "masscan", "zap", "burp", "wget", "curl",
	"python", "perl", "php", "java", "scanner", "bot", "crawler", "spider",
}
