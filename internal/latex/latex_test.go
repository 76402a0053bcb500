package latex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "hello", "hello"},
		{"ampersand", "A & B", `A \& B`},
		{"percent", "50%", `50\%`},
		{"dollar", "$5", `\$5`},
		{"hash", "#1", `\#1`},
		{"underscore", "a_b", `a\_b`},
		{"braces", "{x}", `\{x\}`},
		{"tilde", "~x", `\textasciitilde{}x`},
		{"caret", "x^2", `x\textasciicircum{}2`},
		{"backslash", `a\b`, `a\textbackslash{}b`},
		{"pipe", "a|b", `a\text{\textbar}b`},
		{"single space kept", "a b", "a b"},
		{"double space to nbsp", "a  b", "a~~b"},
		{"triple space to nbsp", "a   b", "a~~~b"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Escape(tc.input))
		})
	}
}

// unescape applies the inverse mapping of Escape. Escaping must be a
// deterministic, reversible encoding of the special characters.
func unescape(s string) string {
	for _, pair := range [][2]string{
		{`\textbackslash{}`, "\\"},
		// non-breaking spaces first, then the named tilde escape; the
		// escape sequences themselves contain no bare "~"
		{"~", " "},
		{`\textasciitilde{}`, "~"},
		{`\textasciicircum{}`, "^"},
		{`\text{\textbar}`, "|"},
		{`\&`, "&"},
		{`\%`, "%"},
		{`\$`, "$"},
		{`\#`, "#"},
		{`\_`, "_"},
		{`\{`, "{"},
		{`\}`, "}"},
	} {
		s = strings.ReplaceAll(s, pair[0], pair[1])
	}
	return s
}

func TestEscapeRoundTrip(t *testing.T) {
	inputs := []string{
		`100% of $5 & #1`,
		`a_b {c} d\e`,
		`x ~ y ^ z | w`,
		"columns  aligned   wide",
		`SELECT * FROM t WHERE a = 'b&c'`,
	}
	for _, in := range inputs {
		assert.Equal(t, in, unescape(Escape(in)), "input %q", in)
	}
}

func tableOutput(t *testing.T, columns []string, rows [][]any) string {
	t.Helper()
	var out strings.Builder
	lw := NewWriter(&out)
	lw.Table(columns, rows)
	assert.NoError(t, lw.Err())
	return out.String()
}

func TestTableShape(t *testing.T) {
	out := tableOutput(t,
		[]string{"ID", "NAME", "CITY"},
		[][]any{
			{1, "Alice", "Oslo"},
			{2, "Bob", "Lima"},
		},
	)

	assert.Contains(t, out, `\begin{tabularx}{\textwidth}{|X|X|X|}`)

	var bodyRows int
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasSuffix(line, `\\`) {
			continue
		}
		if strings.Contains(line, `\multicolumn`) {
			// header line has one bold cell per column
			assert.Equal(t, 3, strings.Count(line, `\textbf`))
			continue
		}
		bodyRows++
		assert.Equal(t, 2, strings.Count(line, " & "), "line %q", line)
	}
	assert.Equal(t, 2, bodyRows)

	// one rule above the header, one after it, one after every row
	assert.Equal(t, 4, strings.Count(out, `\hline`))
}

func TestTableEmptyResultSet(t *testing.T) {
	out := tableOutput(t, []string{"A", "B"}, nil)

	assert.Contains(t, out, `\begin{center}`)
	assert.Contains(t, out, `\begin{tabularx}{\textwidth}{|X|X|}`)
	assert.Contains(t, out, `\end{tabularx}`)
	assert.Contains(t, out, `\end{center}`)

	// header only, no body rows
	assert.Equal(t, 1, strings.Count(out, `\\`+"\n"))
	assert.Equal(t, 2, strings.Count(out, `\hline`))
}

func TestTableCellValues(t *testing.T) {
	out := tableOutput(t,
		[]string{"NAME", "NOTE"},
		[][]any{
			{"A & B", nil},
			{[]byte("bytes_here"), 42},
		},
	)

	assert.Contains(t, out, `A \& B &  \\`)
	assert.Contains(t, out, `bytes\_here & 42 \\`)
}

func TestHeaderEscapesAuthorAndTitle(t *testing.T) {
	var out strings.Builder
	lw := NewWriter(&out)
	lw.Header("J. Smith", "Q&A Report")
	assert.NoError(t, lw.Err())

	assert.Contains(t, out.String(), `\documentclass{article}`)
	assert.Contains(t, out.String(), `\author{J. Smith}`)
	assert.Contains(t, out.String(), `\title{\vspace{-2cm} Q\&A Report}`)
	assert.Contains(t, out.String(), `\date{}`)
}

func TestRowsAffected(t *testing.T) {
	var out strings.Builder
	lw := NewWriter(&out)
	lw.RowsAffected(1)
	lw.RowsAffected(3)
	lw.StatementExecuted()
	assert.NoError(t, lw.Err())

	assert.Contains(t, out.String(), `\textbf{1} row affected.`)
	assert.Contains(t, out.String(), `\textbf{3} rows affected.`)
	assert.Contains(t, out.String(), "Statement executed.")
}

func TestCodeBlockIsVerbatim(t *testing.T) {
	var out strings.Builder
	lw := NewWriter(&out)
	lw.CodeBlock("SELECT a_b FROM t WHERE x = 'y&z'")
	assert.NoError(t, lw.Err())

	assert.Contains(t, out.String(), "\\begin{minted}[breaklines]{sql}\nSELECT a_b FROM t WHERE x = 'y&z'\n\\end{minted}")
}
