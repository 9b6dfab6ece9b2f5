package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database.
// It runs on startup to ensure the table exists.
const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// bootstrap executes the schema setup.
func bootstrap(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
