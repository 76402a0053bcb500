package service

import (
	"fmt"

	"sql2latex/internal/model"
)

type DBClient interface {
	Connect(cfg *model.Config) error
	Disconnect() error
	// Query runs a statement that yields rows. Binds may contain sql.Named
	// values for :name placeholders.
	Query(query string, binds []any) (*model.Result, error)
	// Exec runs a statement without a result set and reports rows affected.
	Exec(query string, binds []any) (int64, error)
}

// NewClient returns the client for a configured driver name.
func NewClient(driver string) (DBClient, error) {
	switch driver {
	case "oracle":
		return NewOracleClient(), nil
	case "postgres":
		return NewPostgresClient(), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}
