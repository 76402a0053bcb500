package service

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/sijms/go-ora/v2"

	"sql2latex/internal/model"
)

type OracleClient struct {
	db *sql.DB
}

func NewOracleClient() *OracleClient {
	return &OracleClient{}
}

// ConnectionURL builds the go-ora connection string. DB_DSN is either a full
// oracle:// URL or a host:port/service_name triple; credentials and the
// wallet location are merged in either way.
func ConnectionURL(cfg *model.Config) string {
	connStr := cfg.DSN
	if !strings.HasPrefix(connStr, "oracle://") {
		connStr = fmt.Sprintf("oracle://%s@%s",
			url.UserPassword(cfg.User, cfg.Password).String(), cfg.DSN)
	}
	if cfg.WalletDir != "" {
		sep := "?"
		if strings.Contains(connStr, "?") {
			sep = "&"
		}
		connStr += sep + "SSL=enable&SSL Verify=false&WALLET=" + url.QueryEscape(cfg.WalletDir)
	}
	return connStr
}

func (o *OracleClient) Connect(cfg *model.Config) error {
	db, err := sql.Open("oracle", ConnectionURL(cfg))
	if err != nil {
		return err
	}
	o.db = db
	return db.Ping()
}

func (o *OracleClient) Disconnect() error {
	if o.db != nil {
		return o.db.Close()
	}
	return nil
}

func (o *OracleClient) Query(query string, binds []any) (*model.Result, error) {
	return queryRows(o.db, query, binds)
}

func (o *OracleClient) Exec(query string, binds []any) (int64, error) {
	return execStatement(o.db, query, binds)
}
