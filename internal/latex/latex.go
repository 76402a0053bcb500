// Package latex turns query results into LaTeX source.
package latex

import (
	"fmt"
	"io"
	"strings"
)

// Escape rewrites a string so it can appear literally in LaTeX text. Pipes
// need \text{} to survive inside tabularx cells, and runs of two or more
// spaces become the same number of non-breaking ones so aligned query output
// keeps its shape.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)

	spaces := 0
	flushSpaces := func() {
		if spaces >= 2 {
			b.WriteString(strings.Repeat("~", spaces))
		} else if spaces == 1 {
			b.WriteByte(' ')
		}
		spaces = 0
	}

	for _, r := range s {
		if r == ' ' {
			spaces++
			continue
		}
		flushSpaces()
		switch r {
		case '\\':
			b.WriteString(`\textbackslash{}`)
		case '&', '%', '$', '#', '_', '{', '}':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '~':
			b.WriteString(`\textasciitilde{}`)
		case '^':
			b.WriteString(`\textasciicircum{}`)
		case '|':
			b.WriteString(`\text{\textbar}`)
		default:
			b.WriteRune(r)
		}
	}
	flushSpaces()
	return b.String()
}

const preamble = `\documentclass{article}
\usepackage{minted}
\usepackage{geometry}
\usepackage{amsmath}
\usepackage{tabularx}

\geometry{a4paper,left=1cm,right=1cm,top=2cm,bottom=2cm}
`

// Writer emits LaTeX to an underlying stream. Write errors are sticky: the
// first one is kept and every later call becomes a no-op.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (lw *Writer) Err() error { return lw.err }

func (lw *Writer) printf(format string, args ...any) {
	if lw.err != nil {
		return
	}
	_, lw.err = fmt.Fprintf(lw.w, format, args...)
}

func (lw *Writer) Header(author, title string) {
	lw.printf("%s", preamble)
	lw.printf("\\author{%s}\n", Escape(author))
	lw.printf("\\title{\\vspace{-2cm} %s}\n", Escape(title))
	lw.printf("\\date{}\n")
}

func (lw *Writer) BeginDocument() {
	lw.printf("\\begin{document}\n")
	lw.printf("\\maketitle\n")
}

func (lw *Writer) EndDocument() {
	lw.printf("\\end{document}\n")
}

func (lw *Writer) Section(num int) {
	lw.printf("\\section*{Task %d}\n", num)
}

func (lw *Writer) PageBreak() {
	lw.printf("\\pagebreak\n")
}

// CodeBlock echoes a statement verbatim; minted is a verbatim environment, so
// no escaping here.
func (lw *Writer) CodeBlock(sql string) {
	lw.printf("\\begin{minted}[breaklines]{sql}\n%s\n\\end{minted}\n", sql)
}

// Table renders a result set as a full-width tabularx with bold headers and a
// rule after every row. An empty result set yields a header-only table.
func (lw *Writer) Table(columns []string, rows [][]any) {
	lw.printf("\\begin{center}\n")
	lw.printf("\\begin{tabularx}{\\textwidth}{|%s}\n", strings.Repeat("X|", len(columns)))
	lw.printf("\\hline\n")

	head := make([]string, len(columns))
	for i, col := range columns {
		head[i] = fmt.Sprintf("\\multicolumn{1}{|c|}{\\textbf{%s}}", Escape(col))
	}
	lw.printf("%s \\\\\n", strings.Join(head, " & "))
	lw.printf("\\hline\n")

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatCell(v)
		}
		lw.printf("%s \\\\\n", strings.Join(cells, " & "))
		lw.printf("\\hline\n")
	}

	lw.printf("\\end{tabularx}\n")
	lw.printf("\\end{center}\n")
}

func (lw *Writer) RowsAffected(n int64) {
	noun := "rows"
	if n == 1 {
		noun = "row"
	}
	lw.printf("\\textbf{%d} %s affected.\n", n, noun)
}

func (lw *Writer) StatementExecuted() {
	lw.printf("Statement executed.\n")
}

// NULL renders as an empty cell.
func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return Escape(x)
	case []byte:
		return Escape(string(x))
	default:
		return Escape(fmt.Sprintf("%v", x))
	}
}
