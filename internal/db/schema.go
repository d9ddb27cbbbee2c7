package db

// SchemaSQL is the complete schema for fresh installs. It reflects the state
// after all migrations have run.
//
// Tests load it through GetSchemaSQL() rather than declaring tables of their
// own, so a repository that references a missing column fails immediately
// with "no such column".
//
// When adding columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Key-value records: one JSON document per calendar year, plus the onboarding profile
CREATE TABLE IF NOT EXISTS kv_store (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Activity log (append-only history of writes)
CREATE TABLE IF NOT EXISTS activity_log (
	id TEXT PRIMARY KEY,
	timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	actor_id TEXT,
	action TEXT NOT NULL CHECK(action IN ('log_symptoms', 'log_period', 'onboarding')),
	date_key TEXT,
	detail TEXT
);

CREATE INDEX IF NOT EXISTS idx_activity_log_timestamp ON activity_log(timestamp);
CREATE INDEX IF NOT EXISTS idx_activity_log_action ON activity_log(action);
CREATE INDEX IF NOT EXISTS idx_activity_log_date_key ON activity_log(date_key);
`

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
