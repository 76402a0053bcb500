package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sql2latex/internal/latex"
	"sql2latex/internal/model"
	"sql2latex/internal/script"
	"sql2latex/internal/service"
)

var activeDB service.DBClient

// SetClient installs the connected database client used by the render
// handlers.
func SetClient(db service.DBClient) {
	activeDB = db
}

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}

// RenderHandler runs the statements of a RenderRequest and responds with the
// rendered LaTeX. With author or title set, the response is a complete
// document; otherwise a fragment.
func RenderHandler(c *gin.Context) {
	var req model.RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if activeDB == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No active database connection"})
		return
	}

	stmts, err := script.SplitStatements(req.SQL)
	if err != nil || len(stmts) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No statements found"})
		return
	}

	var out strings.Builder
	lw := latex.NewWriter(&out)

	fullDoc := req.Author != "" || req.Title != ""
	if fullDoc {
		lw.Header(req.Author, req.Title)
		lw.BeginDocument()
	}

	for _, stmt := range stmts {
		lw.CodeBlock(stmt.Text)

		binds, missing := namedBinds(stmt.Exec, req.Params)
		if missing != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing value for bind parameter :" + missing})
			return
		}

		if script.IsQuery(stmt.Exec) {
			res, err := activeDB.Query(stmt.Exec, binds)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			lw.Table(res.Columns, res.Rows)
			continue
		}

		n, err := activeDB.Exec(stmt.Exec, binds)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if n > 0 {
			lw.RowsAffected(n)
		} else {
			lw.StatementExecuted()
		}
	}

	if fullDoc {
		lw.EndDocument()
	}
	if err := lw.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(out.String()))
}

func namedBinds(stmt string, params map[string]any) (binds []any, missing string) {
	for _, name := range script.Placeholders(stmt) {
		v, ok := params[name]
		if !ok {
			return nil, name
		}
		binds = append(binds, sql.Named(name, v))
	}
	return binds, ""
}
