package sensor

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/calewin/sensornet/internal/protocol"
)

// Repository defines the interface for sensor persistence operations.
// This abstraction allows for different implementations (SQLite, mock,
// etc.) and enables unit testing without database dependencies.
type Repository interface {
	// GetByID retrieves a sensor record by node id.
	// Returns ErrSensorNotFound if the node does not exist.
	GetByID(ctx context.Context, id int) (*Record, error)

	// List retrieves all sensor records, ordered by node id.
	List(ctx context.Context) ([]Record, error)

	// Save inserts or replaces a sensor record.
	Save(ctx context.Context, rec *Record) error

	// Delete removes a sensor record by node id.
	// Returns ErrSensorNotFound if the node does not exist.
	Delete(ctx context.Context, id int) error
}

// SQLiteRepository implements Repository using SQLite. Children are
// stored as a JSON column; the scalar columns exist so operators can
// query fleet state with plain SQL.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
// The db parameter should be an open SQLite connection.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// GetByID retrieves a sensor record by node id.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int) (*Record, error) {
	query := `
		SELECT id, type, sketch_name, sketch_version, battery_level,
			heartbeat, protocol_version, children, created_at, updated_at
		FROM sensors
		WHERE id = ?`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSensorNotFound
		}
		return nil, fmt.Errorf("querying sensor by id: %w", err)
	}
	return rec, nil
}

// List retrieves all sensor records, ordered by node id.
func (r *SQLiteRepository) List(ctx context.Context) ([]Record, error) {
	query := `
		SELECT id, type, sketch_name, sketch_version, battery_level,
			heartbeat, protocol_version, children, created_at, updated_at
		FROM sensors
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying sensors: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sensor: %w", err)
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sensors: %w", err)
	}

	return records, nil
}

// Save inserts or replaces a sensor record.
func (r *SQLiteRepository) Save(ctx context.Context, rec *Record) error {
	childrenJSON, err := json.Marshal(rec.Children)
	if err != nil {
		return fmt.Errorf("marshalling children: %w", err)
	}

	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	query := `
		INSERT INTO sensors (
			id, type, sketch_name, sketch_version, battery_level,
			heartbeat, protocol_version, children, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			sketch_name = excluded.sketch_name,
			sketch_version = excluded.sketch_version,
			battery_level = excluded.battery_level,
			heartbeat = excluded.heartbeat,
			protocol_version = excluded.protocol_version,
			children = excluded.children,
			updated_at = excluded.updated_at`

	_, err = r.db.ExecContext(ctx, query,
		rec.ID,
		int(rec.Type),
		rec.SketchName,
		rec.SketchVersion,
		rec.BatteryLevel,
		rec.Heartbeat,
		rec.ProtocolVersion,
		string(childrenJSON),
		rec.CreatedAt.Format(time.RFC3339),
		rec.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving sensor: %w", err)
	}

	return nil
}

// Delete removes a sensor record by node id.
func (r *SQLiteRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sensors WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting sensor: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrSensorNotFound
	}

	return nil
}

// rowScanner is an interface that sql.Row and sql.Rows both implement.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord scans a row or rows result into a Record.
func scanRecord(scanner rowScanner) (*Record, error) {
	var rec Record
	var sensorType int
	var childrenJSON string
	var createdAt, updatedAt string

	err := scanner.Scan(
		&rec.ID,
		&sensorType,
		&rec.SketchName,
		&rec.SketchVersion,
		&rec.BatteryLevel,
		&rec.Heartbeat,
		&rec.ProtocolVersion,
		&childrenJSON,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Type = protocol.Presentation(sensorType)

	if err := json.Unmarshal([]byte(childrenJSON), &rec.Children); err != nil {
		return nil, fmt.Errorf("unmarshalling children: %w", err)
	}

	rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	rec.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &rec, nil
}
