package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/SAP/go-hdb/sqlscript"

	"sql2latex/helper"
)

const taskPrefix = "-- Task "

// Scanner buffer cap for long script lines.
const maxLineSize = 1 << 20

// Task is one section of a query file. Num is 0 for content that precedes the
// first "-- Task <n>" header, or for files without headers at all; such tasks
// are rendered without a section heading.
type Task struct {
	Num  int
	Body string
}

// ParseTasks splits a query file on "-- Task <n>" header lines.
func ParseTasks(r io.Reader) ([]Task, error) {
	var (
		tasks []Task
		body  strings.Builder
		num   int
		open  bool
	)

	flush := func() {
		if open || strings.TrimSpace(body.String()) != "" {
			tasks = append(tasks, Task{Num: num, Body: body.String()})
		}
		body.Reset()
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, taskPrefix) {
			n, err := strconv.Atoi(strings.TrimSpace(line[len(taskPrefix):]))
			if err != nil {
				return nil, fmt.Errorf("malformed task header %q", line)
			}
			flush()
			num, open = n, true
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()

	if len(tasks) == 0 {
		return nil, errors.New("query file contains no statements")
	}
	return tasks, nil
}

// Statement is one executable unit of a task body. Text is the statement as
// written in the script, separator included, for echoing into the document;
// Exec is the form handed to the driver, which rejects a trailing separator.
type Statement struct {
	Text string
	Exec string
}

// SplitStatements breaks a task body into individual SQL statements. Comments
// stay attached to the statement that follows them.
func SplitStatements(body string) ([]Statement, error) {
	sc := bufio.NewScanner(strings.NewReader(body))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	sc.Split(sqlscript.ScanFunc(sqlscript.DefaultSeparator, true))

	var stmts []Statement
	for sc.Scan() {
		raw := strings.TrimSpace(sc.Text())
		exec := strings.TrimSpace(strings.TrimSuffix(raw, ";"))
		if exec == "" {
			continue
		}
		stmts = append(stmts, Statement{Text: exec + ";", Exec: exec})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	// only the final statement can legitimately lack a separator
	if len(stmts) > 0 && !strings.HasSuffix(strings.TrimSpace(body), ";") {
		stmts[len(stmts)-1].Text = stmts[len(stmts)-1].Exec
	}
	return stmts, nil
}

// Placeholders returns the distinct :name bind parameters of a statement in
// order of first appearance. String literals, quoted identifiers and comments
// are skipped; "::" casts and ":=" assignments are not binds.
func Placeholders(stmt string) []string {
	var names []string
	seen := map[string]bool{}

	i := 0
	for i < len(stmt) {
		switch c := stmt[i]; {
		case c == '\'':
			i = skipQuoted(stmt, i, '\'')
		case c == '"':
			i = skipQuoted(stmt, i, '"')
		case c == '-' && i+1 < len(stmt) && stmt[i+1] == '-':
			for i < len(stmt) && stmt[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(stmt) && stmt[i+1] == '*':
			end := strings.Index(stmt[i+2:], "*/")
			if end < 0 {
				return names
			}
			i += end + 4
		case c == ':':
			if i+1 < len(stmt) && (stmt[i+1] == ':' || stmt[i+1] == '=') {
				i += 2
				continue
			}
			j := i + 1
			for j < len(stmt) && isIdentChar(stmt[j]) {
				j++
			}
			name := stmt[i+1 : j]
			if helper.IsValidBindName(name) && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
			i = j
		default:
			i++
		}
	}
	return names
}

// IsQuery reports whether a statement yields a result set.
func IsQuery(stmt string) bool {
	kw := leadingKeyword(stmt)
	return kw == "SELECT" || kw == "WITH"
}

func leadingKeyword(stmt string) string {
	i := 0
	for i < len(stmt) {
		switch {
		case stmt[i] == ' ' || stmt[i] == '\t' || stmt[i] == '\n' || stmt[i] == '\r':
			i++
		case strings.HasPrefix(stmt[i:], "--"):
			for i < len(stmt) && stmt[i] != '\n' {
				i++
			}
		case strings.HasPrefix(stmt[i:], "/*"):
			end := strings.Index(stmt[i+2:], "*/")
			if end < 0 {
				return ""
			}
			i += end + 4
		default:
			j := i
			for j < len(stmt) && isIdentChar(stmt[j]) {
				j++
			}
			return strings.ToUpper(stmt[i:j])
		}
	}
	return ""
}

func skipQuoted(s string, start int, q byte) int {
	for i := start + 1; i < len(s); i++ {
		if s[i] == q {
			// a doubled quote escapes itself
			if i+1 < len(s) && s[i+1] == q {
				i++
				continue
			}
			return i + 1
		}
	}
	return len(s)
}

func isIdentChar(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
