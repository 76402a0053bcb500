package service

import (
	"database/sql"

	"sql2latex/internal/model"
)

func queryRows(db *sql.DB, query string, binds []any) (*model.Result, error) {
	rows, err := db.Query(query, binds...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &model.Result{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		pointers := make([]any, len(cols))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		result.Rows = append(result.Rows, values)
	}

	return result, rows.Err()
}

func execStatement(db *sql.DB, query string, binds []any) (int64, error) {
	res, err := db.Exec(query, binds...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
