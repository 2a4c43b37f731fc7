package store

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS history (
	id TEXT PRIMARY KEY,
	workshop_id TEXT NOT NULL,
	resource TEXT NOT NULL,
	kind TEXT NOT NULL,
	serial TEXT NOT NULL,
	action TEXT NOT NULL,
	operator TEXT NOT NULL,
	operation_number TEXT NOT NULL DEFAULT '',
	station TEXT NOT NULL DEFAULT '',
	task_id TEXT NOT NULL DEFAULT '',
	task_name TEXT NOT NULL DEFAULT '',
	occurred_at TEXT NOT NULL,
	created_at TEXT NOT NULL DEFAULT (datetime('now','localtime'))
);
CREATE INDEX IF NOT EXISTS idx_history_serial ON history(serial);
CREATE INDEX IF NOT EXISTS idx_history_operator ON history(operator);

CREATE TABLE IF NOT EXISTS snapshots (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	workshop_id TEXT NOT NULL,
	document TEXT NOT NULL,
	created_at TEXT NOT NULL DEFAULT (datetime('now','localtime'))
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS history (
	id TEXT PRIMARY KEY,
	workshop_id TEXT NOT NULL,
	resource TEXT NOT NULL,
	kind TEXT NOT NULL,
	serial TEXT NOT NULL,
	action TEXT NOT NULL,
	operator TEXT NOT NULL,
	operation_number TEXT NOT NULL DEFAULT '',
	station TEXT NOT NULL DEFAULT '',
	task_id TEXT NOT NULL DEFAULT '',
	task_name TEXT NOT NULL DEFAULT '',
	occurred_at TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_history_serial ON history(serial);
CREATE INDEX IF NOT EXISTS idx_history_operator ON history(operator);

CREATE TABLE IF NOT EXISTS snapshots (
	id BIGSERIAL PRIMARY KEY,
	workshop_id TEXT NOT NULL,
	document TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
