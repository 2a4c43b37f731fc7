// Package ledger maintains the append-only history of take/return events.
// Entries are prepended: index 0 is the most recent. There is no mutation
// or deletion API.
package ledger

import (
	"strings"

	"toolcrib/document"
)

// Record inserts an entry at the front of the document's history.
func Record(doc *document.Document, entry document.HistoryEntry) {
	doc.History = append([]document.HistoryEntry{entry}, doc.History...)
}

// Recent returns up to limit entries in recency order.
func Recent(doc *document.Document, limit int) []document.HistoryEntry {
	if limit <= 0 || limit > len(doc.History) {
		limit = len(doc.History)
	}
	return append([]document.HistoryEntry(nil), doc.History[:limit]...)
}

// RecentFor returns up to limit entries whose serial matches the given
// tool serial or material code, newest first.
func RecentFor(doc *document.Document, serialOrCode string, limit int) []document.HistoryEntry {
	if serialOrCode == "" || limit <= 0 {
		return nil
	}
	var out []document.HistoryEntry
	for _, e := range doc.History {
		if e.Serial == serialOrCode {
			out = append(out, e)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// ForOperator returns up to limit entries recorded by an operator,
// newest first. The match is case-insensitive.
func ForOperator(doc *document.Document, operator string, limit int) []document.HistoryEntry {
	if operator == "" || limit <= 0 {
		return nil
	}
	var out []document.HistoryEntry
	for _, e := range doc.History {
		if strings.EqualFold(e.Operator, operator) {
			out = append(out, e)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// ForKind returns up to limit entries of one resource kind, newest first.
func ForKind(doc *document.Document, kind string, limit int) []document.HistoryEntry {
	if limit <= 0 {
		return nil
	}
	var out []document.HistoryEntry
	for _, e := range doc.History {
		if e.Kind == kind {
			out = append(out, e)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
