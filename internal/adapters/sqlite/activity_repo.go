package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/tpp/internal/ports/secondary"
)

// ActivityRepository implements secondary.ActivityRepository with SQLite.
type ActivityRepository struct {
	db *sql.DB
}

// NewActivityRepository creates a new SQLite activity repository.
func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

const activityColumns = "id, timestamp, actor_id, action, date_key, detail"

// Create persists a new activity entry. An empty Timestamp takes the current time.
func (r *ActivityRepository) Create(ctx context.Context, record *secondary.ActivityRecord) error {
	ts := time.Now().UTC()
	if record.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, record.Timestamp)
		if err != nil {
			return fmt.Errorf("invalid activity timestamp %q: %w", record.Timestamp, err)
		}
		ts = parsed.UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO activity_log (`+activityColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID,
		// Same layout as CURRENT_TIMESTAMP so datetime() comparisons hold.
		ts.Format(time.DateTime),
		nullString(record.ActorID),
		record.Action,
		nullString(record.DateKey),
		nullString(record.Detail),
	)
	if err != nil {
		return fmt.Errorf("failed to create activity entry: %w", err)
	}

	return nil
}

// GetByID retrieves an entry by its ID.
func (r *ActivityRepository) GetByID(ctx context.Context, id string) (*secondary.ActivityRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+activityColumns+` FROM activity_log WHERE id = ?`, id)
	record, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("activity entry %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity entry: %w", err)
	}
	return record, nil
}

// List retrieves entries matching the given filters, newest first.
func (r *ActivityRepository) List(ctx context.Context, filters secondary.ActivityFilters) ([]*secondary.ActivityRecord, error) {
	query := `SELECT ` + activityColumns + ` FROM activity_log WHERE 1=1`
	args := []any{}

	if filters.Action != "" {
		query += " AND action = ?"
		args = append(args, filters.Action)
	}

	if filters.DateKey != "" {
		query += " AND date_key = ?"
		args = append(args, filters.DateKey)
	}

	if filters.ActorID != "" {
		query += " AND actor_id = ?"
		args = append(args, filters.ActorID)
	}

	query += " ORDER BY timestamp DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ActivityRecord
	for rows.Next() {
		record, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// PruneOlderThan deletes entries older than the given number of days.
func (r *ActivityRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM activity_log WHERE timestamp < datetime('now', ?)",
		fmt.Sprintf("-%d days", days),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune activity: %w", err)
	}

	count, _ := result.RowsAffected()
	return int(count), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanActivity(s scanner) (*secondary.ActivityRecord, error) {
	var (
		actorID   sql.NullString
		dateKey   sql.NullString
		detail    sql.NullString
		timestamp time.Time
	)

	record := &secondary.ActivityRecord{}
	if err := s.Scan(&record.ID, &timestamp, &actorID, &record.Action, &dateKey, &detail); err != nil {
		return nil, err
	}
	record.Timestamp = timestamp.UTC().Format(time.RFC3339)
	record.ActorID = actorID.String
	record.DateKey = dateKey.String
	record.Detail = detail.String

	return record, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Ensure ActivityRepository implements the interface
var _ secondary.ActivityRepository = (*ActivityRepository)(nil)
