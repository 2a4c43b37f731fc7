// Package docstore is the sync gateway: whole-document load, save and
// change subscription against a remote store. The engine treats the
// workshop document as one blob; there is no field-level merge, the last
// writer wins at document granularity.
package docstore

import (
	"context"
	"errors"

	"toolcrib/document"
)

// ErrSync wraps transport failures so callers can classify them without
// caring which backend produced them.
var ErrSync = errors.New("sync gateway failure")

// ChangeFunc receives the freshly loaded document after a remote change,
// or an error when the notification could not be resolved into a load.
type ChangeFunc func(doc *document.Document, err error)

// Unsubscribe stops change delivery.
type Unsubscribe func()

// Gateway is the contract the engine consumes. Load returns (nil, nil)
// when no document exists yet.
type Gateway interface {
	Load(ctx context.Context) (*document.Document, error)
	Save(ctx context.Context, doc *document.Document) error
	Subscribe(ctx context.Context, fn ChangeFunc) (Unsubscribe, error)
	Close() error
}
