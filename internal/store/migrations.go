package store

// migration is one schema change applied in version order.
type migration struct {
	version int
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		sql: `
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY
			);

			CREATE TABLE IF NOT EXISTS tasks (
				id             TEXT PRIMARY KEY,
				user_id        TEXT NOT NULL DEFAULT '',
				title          TEXT NOT NULL,
				description    TEXT NOT NULL DEFAULT '',
				status         TEXT NOT NULL DEFAULT '',
				language       TEXT NOT NULL DEFAULT '',
				framework      TEXT NOT NULL DEFAULT '',
				db_engine      TEXT NOT NULL DEFAULT '',
				priority       INTEGER NOT NULL DEFAULT 2,
				branch_name    TEXT NOT NULL DEFAULT '',
				generated_code TEXT NOT NULL DEFAULT '',
				test_url       TEXT NOT NULL DEFAULT '',
				admin_comment  TEXT NOT NULL DEFAULT '',
				created_at     TIMESTAMP,
				updated_at     TIMESTAMP,
				fetched_at     TIMESTAMP
			);

			CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
			CREATE INDEX IF NOT EXISTS idx_tasks_updated_at ON tasks(updated_at);

			INSERT INTO schema_version (version) VALUES (1);
		`,
	},
	{
		version: 2,
		sql: `
			CREATE TABLE IF NOT EXISTS wizard_steps (
				task_id      TEXT NOT NULL,
				step_id      TEXT NOT NULL,
				completed    INTEGER NOT NULL DEFAULT 0,
				completed_at TIMESTAMP,
				PRIMARY KEY (task_id, step_id)
			);

			INSERT INTO schema_version (version) VALUES (2);
		`,
	},
	{
		version: 3,
		sql: `
			CREATE TABLE IF NOT EXISTS read_notifications (
				notification_id TEXT PRIMARY KEY,
				read_at         TIMESTAMP
			);

			INSERT INTO schema_version (version) VALUES (3);
		`,
	},
}
