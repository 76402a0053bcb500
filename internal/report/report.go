// Package report drives the query-file-to-LaTeX pipeline: parse the script,
// connect once, run every statement, render, close.
package report

import (
	"bufio"
	"database/sql"
	"fmt"
	"io"

	"sql2latex/internal/latex"
	"sql2latex/internal/model"
	"sql2latex/internal/script"
	"sql2latex/internal/service"
)

// PromptFunc supplies the value for a named bind parameter.
type PromptFunc func(name string) (string, error)

type Runner struct {
	DB     service.DBClient
	Out    io.Writer // LaTeX document
	Diag   io.Writer // progress and errors, usually stderr
	Prompt PromptFunc
}

// Run executes every statement of the query file against one connection and
// writes the rendered document to Out. The connection is closed on both the
// success and the failure path; output already written stays as-is.
func (r *Runner) Run(cfg *model.Config, queryFile io.Reader, author, title string) error {
	tasks, err := script.ParseTasks(queryFile)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.Diag, "Scripts found: %d\n", len(tasks))

	fmt.Fprintf(r.Diag, "Connecting to the database... ")
	if err := r.DB.Connect(cfg); err != nil {
		fmt.Fprintln(r.Diag)
		return fmt.Errorf("connect: %w", err)
	}
	fmt.Fprintln(r.Diag, "connected!")
	defer func() {
		if err := r.DB.Disconnect(); err == nil {
			fmt.Fprintln(r.Diag, "Connection closed.")
		}
	}()

	lw := latex.NewWriter(r.Out)
	lw.Header(author, title)
	lw.BeginDocument()

	for _, task := range tasks {
		if task.Num > 0 {
			fmt.Fprintf(r.Diag, "Running task %d...\t", task.Num)
			lw.Section(task.Num)
		}
		if err := r.runTask(lw, task); err != nil {
			return err
		}
		if task.Num > 0 {
			lw.PageBreak()
			fmt.Fprintln(r.Diag, "done")
		}
	}

	lw.EndDocument()
	return lw.Err()
}

func (r *Runner) runTask(lw *latex.Writer, task script.Task) error {
	stmts, err := script.SplitStatements(task.Body)
	if err != nil {
		return err
	}

	for _, stmt := range stmts {
		lw.CodeBlock(stmt.Text)

		binds, err := r.collectBinds(stmt.Exec)
		if err != nil {
			return err
		}

		if script.IsQuery(stmt.Exec) {
			res, err := r.DB.Query(stmt.Exec, binds)
			if err != nil {
				return fmt.Errorf("query: %w", err)
			}
			lw.Table(res.Columns, res.Rows)
			continue
		}

		n, err := r.DB.Exec(stmt.Exec, binds)
		if err != nil {
			return fmt.Errorf("exec: %w", err)
		}
		if n > 0 {
			lw.RowsAffected(n)
		} else {
			lw.StatementExecuted()
		}
	}
	return nil
}

func (r *Runner) collectBinds(stmt string) ([]any, error) {
	names := script.Placeholders(stmt)
	if len(names) == 0 {
		return nil, nil
	}
	if r.Prompt == nil {
		return nil, fmt.Errorf("statement uses bind parameters %v but no value source is available", names)
	}

	binds := make([]any, 0, len(names))
	for _, name := range names {
		value, err := r.Prompt(name)
		if err != nil {
			return nil, fmt.Errorf("read value for :%s: %w", name, err)
		}
		binds = append(binds, sql.Named(name, value))
	}
	return binds, nil
}

// StdinPrompt writes ":name=" prompts to w and reads values line by line
// from rd.
func StdinPrompt(rd io.Reader, w io.Writer) PromptFunc {
	sc := bufio.NewScanner(rd)
	return func(name string) (string, error) {
		fmt.Fprintf(w, ":%s=", name)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return sc.Text(), nil
	}
}
