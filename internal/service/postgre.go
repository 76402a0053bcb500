package service

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"sql2latex/internal/model"
)

type PostgresClient struct {
	db *sql.DB
}

func NewPostgresClient() *PostgresClient {
	return &PostgresClient{}
}

// PostgresDSN merges the configured credentials into the DSN. URL-style DSNs
// are expected to already carry them and pass through untouched.
func PostgresDSN(cfg *model.Config) string {
	if strings.Contains(cfg.DSN, "://") {
		return cfg.DSN
	}
	return fmt.Sprintf("%s user=%s password=%s", cfg.DSN, cfg.User, cfg.Password)
}

func (p *PostgresClient) Connect(cfg *model.Config) error {
	db, err := sql.Open("postgres", PostgresDSN(cfg))
	if err != nil {
		return err
	}
	p.db = db
	return db.Ping()
}

func (p *PostgresClient) Disconnect() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

func (p *PostgresClient) Query(query string, binds []any) (*model.Result, error) {
	return queryRows(p.db, query, binds)
}

func (p *PostgresClient) Exec(query string, binds []any) (int64, error) {
	return execStatement(p.db, query, binds)
}
