package store

import (
	"time"

	"toolcrib/document"
)

// AppendHistory archives one ledger entry. Inserts are idempotent on the
// entry id so replaying a document after reconnect cannot duplicate rows.
func (db *DB) AppendHistory(workshopID string, e *document.HistoryEntry) error {
	query := `INSERT INTO history (id, workshop_id, resource, kind, serial, action, operator, operation_number, station, task_id, task_name, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) ON CONFLICT (id) DO NOTHING`
	_, err := db.Exec(db.Q(query),
		e.ID, workshopID, e.Resource, e.Kind, e.Serial, e.Action,
		e.Operator, e.OperationNumber, e.Station, e.TaskID, e.TaskName,
		e.Time.Format(time.RFC3339))
	return err
}

// ListHistory returns the newest archived entries first.
func (db *DB) ListHistory(workshopID string, limit int) ([]*document.HistoryEntry, error) {
	query := `SELECT id, resource, kind, serial, action, operator, operation_number, station, task_id, task_name, occurred_at
		FROM history WHERE workshop_id = ? ORDER BY occurred_at DESC LIMIT ?`
	rows, err := db.Query(db.Q(query), workshopID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHistory(rows)
}

// ListHistoryBySerial returns the newest archived entries for one tool
// serial or material code.
func (db *DB) ListHistoryBySerial(workshopID, serial string, limit int) ([]*document.HistoryEntry, error) {
	query := `SELECT id, resource, kind, serial, action, operator, operation_number, station, task_id, task_name, occurred_at
		FROM history WHERE workshop_id = ? AND serial = ? ORDER BY occurred_at DESC LIMIT ?`
	rows, err := db.Query(db.Q(query), workshopID, serial, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHistory(rows)
}

func (db *DB) CountHistory(workshopID string) (int64, error) {
	var n int64
	err := db.QueryRow(db.Q(`SELECT COUNT(*) FROM history WHERE workshop_id = ?`), workshopID).Scan(&n)
	return n, err
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanHistory(rows rowScanner) ([]*document.HistoryEntry, error) {
	var entries []*document.HistoryEntry
	for rows.Next() {
		var e document.HistoryEntry
		var occurredAt string
		if err := rows.Scan(&e.ID, &e.Resource, &e.Kind, &e.Serial, &e.Action,
			&e.Operator, &e.OperationNumber, &e.Station, &e.TaskID, &e.TaskName, &occurredAt); err != nil {
			return nil, err
		}
		e.Time, _ = time.Parse(time.RFC3339, occurredAt)
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
