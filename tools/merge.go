package tools

import (
	"fmt"
	"regexp"
	"time"
)

// Render substitutes merge variables into a template. Keys of vars are the
// literal tokens ("{{property.address}}"), not parsed paths. Tokens missing
// from vars stay in the output verbatim, so a partially populated
// transaction still renders a usable draft.
//
// Tokens are located by pattern search over the whole template; the token
// string is quoted first because its braces are regexp metacharacters.
func Render(template string, vars map[string]string) string {
	out := template
	for token, value := range vars {
		re := regexp.MustCompile(regexp.QuoteMeta(token))
		out = re.ReplaceAllLiteralString(out, value)
	}
	return out
}

// RenderEmail applies the same variable map to subject and body so the two
// stay consistent.
func RenderEmail(subject, body string, vars map[string]string) (string, string) {
	return Render(subject, vars), Render(body, vars)
}

// FormatDate renders a calendar date as MM/DD/YYYY, empty when absent.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("01/02/2006")
}

// FormatCents renders a cents amount as a dollar string, empty when zero.
func FormatCents(cents int64) string {
	if cents == 0 {
		return ""
	}
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}
