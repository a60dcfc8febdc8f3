package tools

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderReplacesKnownTokens(t *testing.T) {
	vars := map[string]string{
		"{{property.address}}": "12 Oak St, Boston, MA 02101",
		"{{agent.name}}":       "Dana Reeve",
	}
	out := Render("Inspection at {{property.address}} requested by {{agent.name}}.", vars)
	assert.Equal(t, "Inspection at 12 Oak St, Boston, MA 02101 requested by Dana Reeve.", out)
}

func TestRenderLeavesUnknownTokensVerbatim(t *testing.T) {
	vars := map[string]string{"{{agent.name}}": "Dana Reeve"}
	out := Render("{{agent.name}} / {{buyer.name}} / {{lender.company}}", vars)
	assert.Equal(t, "Dana Reeve / {{buyer.name}} / {{lender.company}}", out)
}

func TestRenderReplacesRepeatedTokens(t *testing.T) {
	// Adjacent occurrences must both match; the braces in the token are
	// regexp metacharacters and have to be escaped when the pattern is built.
	vars := map[string]string{"{{a.b}}": "X"}
	assert.Equal(t, "XX", Render("{{a.b}}{{a.b}}", vars))
}

func TestRenderEmptyValue(t *testing.T) {
	vars := map[string]string{"{{transaction.closing_date}}": ""}
	assert.Equal(t, "Closing: ", Render("Closing: {{transaction.closing_date}}", vars))
}

func TestRenderEmailUsesSameVariablesForSubjectAndBody(t *testing.T) {
	vars := map[string]string{"{{property.address}}": "44 Elm St"}
	subject, body := RenderEmail(
		"Inspection - {{property.address}}",
		"<p>Property: {{property.address}}</p>",
		vars,
	)
	assert.Equal(t, "Inspection - 44 Elm St", subject)
	assert.Equal(t, "<p>Property: 44 Elm St</p>", body)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", FormatDate(nil))

	d := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "03/09/2026", FormatDate(&d))
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "", FormatCents(0))
	assert.Equal(t, "$450000.00", FormatCents(45000000))
	assert.Equal(t, "$1250.50", FormatCents(125050))
}
