package model

// Config holds the database connection settings, read once at startup and
// immutable afterwards.
type Config struct {
	Driver    string // "oracle" or "postgres"
	DSN       string
	User      string
	Password  string
	WalletDir string // Oracle wallet directory, optional
}
