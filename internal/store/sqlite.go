package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/lwang/apiforge/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite
// database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// UpsertTasks inserts or replaces a batch of task snapshots.
func (s *SQLiteStore) UpsertTasks(ctx context.Context, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO tasks (
			id, user_id, title, description, status,
			language, framework, db_engine, priority,
			branch_name, generated_code, test_url, admin_comment,
			created_at, updated_at, fetched_at
		) VALUES (
			?, ?, ?, ?, ?,
			?, ?, ?, ?,
			?, ?, ?, ?,
			?, ?, ?
		)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, t := range tasks {
		_, err := stmt.ExecContext(ctx,
			t.ID, t.UserID, t.Title, t.Description, t.Status,
			t.Language, t.Framework, t.Database, t.Priority,
			t.BranchName, t.GeneratedCode, t.TestURL, t.AdminComment,
			t.CreatedAt, t.UpdatedAt, t.FetchedAt,
		)
		if err != nil {
			return fmt.Errorf("upserting task %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// GetTasks queries the snapshot cache with the given filter.
func (s *SQLiteStore) GetTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	var clauses []string
	var args []interface{}

	if filter.Status != nil {
		clauses = append(clauses, "status = ?")
		args = append(args, *filter.Status)
	}
	if filter.Query != nil {
		clauses = append(clauses, "(title LIKE ? OR description LIKE ?)")
		pattern := "%" + *filter.Query + "%"
		args = append(args, pattern, pattern)
	}

	query := "SELECT * FROM tasks"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY " + sortColumn(filter.SortBy)
	if filter.SortDesc {
		query += " DESC"
	}

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	}

	var tasks []model.Task
	if err := s.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	return tasks, nil
}

// sortColumn whitelists the sortable columns; anything else falls back
// to updated_at.
func sortColumn(name string) string {
	switch name {
	case "created_at", "title", "status", "priority", "updated_at":
		return name
	default:
		return "updated_at"
	}
}

// GetTaskByID returns one cached task, or nil when absent.
func (s *SQLiteStore) GetTaskByID(ctx context.Context, id string) (*model.Task, error) {
	var t model.Task
	err := s.db.GetContext(ctx, &t, "SELECT * FROM tasks WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying task %s: %w", id, err)
	}
	return &t, nil
}

// PatchTaskStatus updates the cached status of one task. Used by the
// realtime channel's optimistic local patch; the next full fetch
// reconciles any divergence.
func (s *SQLiteStore) PatchTaskStatus(ctx context.Context, id, taskStatus string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?",
		taskStatus, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("patching task %s status: %w", id, err)
	}
	return nil
}

// SetStepCompleted records the manual attestation flag for one wizard
// step of one task.
func (s *SQLiteStore) SetStepCompleted(ctx context.Context, taskID, stepID string, completed bool) error {
	var completedAt interface{}
	if completed {
		completedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO wizard_steps (task_id, step_id, completed, completed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (task_id, step_id)
		DO UPDATE SET completed = excluded.completed, completed_at = excluded.completed_at`,
		taskID, stepID, boolInt(completed), completedAt,
	)
	if err != nil {
		return fmt.Errorf("saving wizard step %s/%s: %w", taskID, stepID, err)
	}
	return nil
}

// GetCompletedSteps returns the set of completed step IDs for a task.
func (s *SQLiteStore) GetCompletedSteps(ctx context.Context, taskID string) (map[string]bool, error) {
	var stepIDs []string
	err := s.db.SelectContext(ctx, &stepIDs,
		"SELECT step_id FROM wizard_steps WHERE task_id = ? AND completed = 1",
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying wizard steps for task %s: %w", taskID, err)
	}

	completed := make(map[string]bool, len(stepIDs))
	for _, id := range stepIDs {
		completed[id] = true
	}
	return completed, nil
}

// ClearWizardProgress drops all wizard attestation for a task.
func (s *SQLiteStore) ClearWizardProgress(ctx context.Context, taskID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM wizard_steps WHERE task_id = ?", taskID,
	)
	if err != nil {
		return fmt.Errorf("clearing wizard progress for task %s: %w", taskID, err)
	}
	return nil
}

// TombstoneNotification records that a notification was marked read.
func (s *SQLiteStore) TombstoneNotification(ctx context.Context, notificationID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO read_notifications (notification_id, read_at)
		VALUES (?, ?)
		ON CONFLICT (notification_id) DO NOTHING`,
		notificationID, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("tombstoning notification %s: %w", notificationID, err)
	}
	return nil
}

// ReadNotificationIDs returns the set of tombstoned notification IDs.
func (s *SQLiteStore) ReadNotificationIDs(ctx context.Context) (map[string]bool, error) {
	var ids []string
	err := s.db.SelectContext(ctx, &ids,
		"SELECT notification_id FROM read_notifications",
	)
	if err != nil {
		return nil, fmt.Errorf("querying read notifications: %w", err)
	}

	read := make(map[string]bool, len(ids))
	for _, id := range ids {
		read[id] = true
	}
	return read, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// DefaultDBPath returns the default location of the local cache
// database.
func DefaultDBPath() string {
	return model.ConfigDir() + "/cache.db"
}
