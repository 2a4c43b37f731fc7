package store

import (
	"database/sql"
	"time"

	"toolcrib/document"
)

// SaveSnapshot archives the full document JSON. Snapshots are append-only;
// pruning is an operator concern.
func (db *DB) SaveSnapshot(workshopID string, doc *document.Document) error {
	data, err := doc.Encode()
	if err != nil {
		return err
	}
	_, err = db.Exec(db.Q(`INSERT INTO snapshots (workshop_id, document) VALUES (?, ?)`),
		workshopID, string(data))
	return err
}

// LatestSnapshot returns the most recent archived document, or (nil, nil)
// when none has been taken yet.
func (db *DB) LatestSnapshot(workshopID string) (*document.Document, error) {
	var data string
	err := db.QueryRow(db.Q(`SELECT document FROM snapshots WHERE workshop_id = ? ORDER BY id DESC LIMIT 1`),
		workshopID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return document.Decode([]byte(data))
}

// CountSnapshots reports how many snapshots are archived for a workshop.
func (db *DB) CountSnapshots(workshopID string) (int64, error) {
	var n int64
	err := db.QueryRow(db.Q(`SELECT COUNT(*) FROM snapshots WHERE workshop_id = ?`), workshopID).Scan(&n)
	return n, err
}

// SnapshotEvery runs a snapshot loop until stop is closed. Errors are
// reported through report and do not stop the loop.
func (db *DB) SnapshotEvery(interval time.Duration, workshopID string, load func() *document.Document, report func(error), stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if doc := load(); doc != nil {
				if err := db.SaveSnapshot(workshopID, doc); err != nil && report != nil {
					report(err)
				}
			}
		}
	}
}
