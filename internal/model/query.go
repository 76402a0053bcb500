package model

// Result is the output of a single query: ordered column names and rows.
// Every row has exactly len(Columns) values.
type Result struct {
	Columns []string
	Rows    [][]any
}
